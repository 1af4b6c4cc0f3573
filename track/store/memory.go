// Package store provides an in-memory Store implementation for tests
// and development. Collections round-trip through JSON so behavior
// matches the persistent stores exactly, including decode recovery.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/tomsp05/worktracker/track"
)

type Memory struct {
	mu       sync.RWMutex
	payloads map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{payloads: make(map[string][]byte)}
}

func (m *Memory) save(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads[key] = b
	return nil
}

// load decodes the stored payload for key. A missing key or a payload
// that no longer decodes resolves to fallback; decoding happens into a
// local copy, so a half-decoded value is never returned.
func load[T any](m *Memory, key string, fallback T) T {
	m.mu.RLock()
	b, ok := m.payloads[key]
	m.mu.RUnlock()
	if !ok {
		return fallback
	}
	decoded := fallback
	if err := json.Unmarshal(b, &decoded); err != nil {
		return fallback
	}
	return decoded
}

func (m *Memory) LoadJobs(_ context.Context) ([]track.Job, error) {
	return load[[]track.Job](m, track.KeyJobs, nil), nil
}

func (m *Memory) SaveJobs(_ context.Context, jobs []track.Job) error {
	return m.save(track.KeyJobs, jobs)
}

func (m *Memory) LoadShifts(_ context.Context) ([]track.WorkShift, error) {
	return load[[]track.WorkShift](m, track.KeyShifts, nil), nil
}

func (m *Memory) SaveShifts(_ context.Context, shifts []track.WorkShift) error {
	return m.save(track.KeyShifts, shifts)
}

func (m *Memory) LoadSchedules(_ context.Context) ([]track.PaySchedule, error) {
	return load[[]track.PaySchedule](m, track.KeySchedules, nil), nil
}

func (m *Memory) SaveSchedules(_ context.Context, schedules []track.PaySchedule) error {
	return m.save(track.KeySchedules, schedules)
}

func (m *Memory) LoadPayslips(_ context.Context) ([]track.Payslip, error) {
	return load[[]track.Payslip](m, track.KeyPayslips, nil), nil
}

func (m *Memory) SavePayslips(_ context.Context, payslips []track.Payslip) error {
	return m.save(track.KeyPayslips, payslips)
}

func (m *Memory) LoadSettings(_ context.Context) (track.Settings, error) {
	return load(m, track.KeySettings, track.DefaultSettings()), nil
}

func (m *Memory) SaveSettings(_ context.Context, s track.Settings) error {
	return m.save(track.KeySettings, s)
}
