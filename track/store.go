/*
store.go - Persistence collaborator interface

The engine persists whole typed collections under stable string keys
plus one scalar settings value. Saves are write-through and wholesale:
every mutation replaces the full collection, so there are no partial
commits to reason about. Implementations must treat a missing or
undecodable payload as an empty collection, never as a fatal error.

IMPLEMENTATIONS:
  - track/store:  in-memory (tests, dev)
  - store/sqlite: SQLite-backed key-value table with JSON payloads
*/
package track

import "context"

// Collection keys. Stable identifiers shared by every Store implementation.
const (
	KeyJobs      = "jobs"
	KeyShifts    = "workShifts"
	KeySchedules = "paySchedules"
	KeyPayslips  = "payslips"
	KeySettings  = "settings"
)

// Store is the persistence collaborator: key-value load/save of typed
// collections and the settings scalar.
type Store interface {
	LoadJobs(ctx context.Context) ([]Job, error)
	SaveJobs(ctx context.Context, jobs []Job) error

	LoadShifts(ctx context.Context) ([]WorkShift, error)
	SaveShifts(ctx context.Context, shifts []WorkShift) error

	LoadSchedules(ctx context.Context) ([]PaySchedule, error)
	SaveSchedules(ctx context.Context, schedules []PaySchedule) error

	LoadPayslips(ctx context.Context) ([]Payslip, error)
	SavePayslips(ctx context.Context, payslips []Payslip) error

	LoadSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) error
}
