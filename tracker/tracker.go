/*
Package tracker is the orchestration point for the work tracker.

All collections load wholesale at Open and live in memory for the
session. Every mutation runs through one serialized path and is
immediately followed by a write-through of the touched collection to
the store - no write-behind, no partial commits. The calculators in
track are pure, so queries always recompute from current state; there
is no cache to invalidate.

Validation happens before any mutation: a rejected change leaves both
memory and store untouched.
*/
package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tomsp05/worktracker/track"
)

type Tracker struct {
	mu    sync.Mutex
	store track.Store

	now   func() time.Time
	newID func() string

	jobs      []track.Job
	shifts    []track.WorkShift
	schedules []track.PaySchedule
	payslips  []track.Payslip
	settings  track.Settings
}

// Option tweaks a Tracker at Open time. Used by tests to pin the clock
// and the id source.
type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithIDSource(newID func() string) Option {
	return func(t *Tracker) { t.newID = newID }
}

// Open loads every collection from the store. Missing or undecodable
// collections come back empty per the store contract, so Open only fails
// on real store errors.
func Open(ctx context.Context, store track.Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}

	var err error
	if t.jobs, err = store.LoadJobs(ctx); err != nil {
		return nil, err
	}
	if t.shifts, err = store.LoadShifts(ctx); err != nil {
		return nil, err
	}
	if t.schedules, err = store.LoadSchedules(ctx); err != nil {
		return nil, err
	}
	if t.payslips, err = store.LoadPayslips(ctx); err != nil {
		return nil, err
	}
	if t.settings, err = store.LoadSettings(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// =============================================================================
// JOBS
// =============================================================================

func (t *Tracker) Jobs() []track.Job {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]track.Job, len(t.jobs))
	copy(out, t.jobs)
	return out
}

func (t *Tracker) Job(id track.JobID) (track.Job, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.jobLocked(id)
}

func (t *Tracker) jobLocked(id track.JobID) (track.Job, error) {
	for _, j := range t.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return track.Job{}, track.ErrJobNotFound
}

func (t *Tracker) AddJob(ctx context.Context, j track.Job) (track.Job, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if j.ID == "" {
		j.ID = track.JobID(t.newID())
	}
	j.Active = true
	for i := range j.Presets {
		if j.Presets[i].ID == "" {
			j.Presets[i].ID = t.newID()
		}
	}
	if err := j.Validate(); err != nil {
		return track.Job{}, err
	}

	jobs := append(append([]track.Job{}, t.jobs...), j)
	if err := t.store.SaveJobs(ctx, jobs); err != nil {
		return track.Job{}, err
	}
	t.jobs = jobs
	return j, nil
}

func (t *Tracker) UpdateJob(ctx context.Context, j track.Job) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := j.Validate(); err != nil {
		return err
	}
	jobs := make([]track.Job, len(t.jobs))
	copy(jobs, t.jobs)
	found := false
	for i, existing := range jobs {
		if existing.ID == j.ID {
			jobs[i] = j
			found = true
			break
		}
	}
	if !found {
		return track.ErrJobNotFound
	}
	if err := t.store.SaveJobs(ctx, jobs); err != nil {
		return err
	}
	t.jobs = jobs
	return nil
}

// DeleteJob removes a job, unless shifts still reference it, in which
// case the job is deactivated instead. Referential integrity by
// deactivation: the shifts stay valid and keep their history.
func (t *Tracker) DeleteJob(ctx context.Context, id track.JobID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.jobLocked(id); err != nil {
		return err
	}

	referenced := false
	for _, s := range t.shifts {
		if s.JobID == id {
			referenced = true
			break
		}
	}

	jobs := make([]track.Job, 0, len(t.jobs))
	for _, j := range t.jobs {
		if j.ID != id {
			jobs = append(jobs, j)
			continue
		}
		if referenced {
			j.Active = false
			jobs = append(jobs, j)
		}
	}
	if err := t.store.SaveJobs(ctx, jobs); err != nil {
		return err
	}
	t.jobs = jobs
	return nil
}

// =============================================================================
// SHIFTS
// =============================================================================

func (t *Tracker) Shifts() []track.WorkShift {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]track.WorkShift, len(t.shifts))
	copy(out, t.shifts)
	return out
}

func (t *Tracker) Shift(id track.ShiftID) (track.WorkShift, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := track.NewShiftIndex(t.shifts)[id]; ok {
		return s, nil
	}
	return track.WorkShift{}, track.ErrShiftNotFound
}

// AddShift validates and stores a shift. A recurring root expands its
// whole series eagerly here, and the batch persists in a single save.
// Returns every shift created (root first).
func (t *Tracker) AddShift(ctx context.Context, s track.WorkShift) ([]track.WorkShift, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s.ID == "" {
		s.ID = track.ShiftID(t.newID())
	}
	if s.Date.IsZero() {
		s.Date = track.DayOf(s.Start)
	}
	s.NormalizeTimes()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if _, err := t.jobLocked(s.JobID); err != nil {
		return nil, err
	}

	created := []track.WorkShift{s}
	if s.Recurring && s.Recurrence != track.RecurNone {
		children := track.Expand(s, s.Recurrence, s.RecurrenceEnd, track.MaxGeneratedOccurrences,
			func() track.ShiftID { return track.ShiftID(t.newID()) })
		created = append(created, children...)
	} else {
		s.Recurring = false
		created[0] = s
	}

	shifts := append(append([]track.WorkShift{}, t.shifts...), created...)
	if err := t.store.SaveShifts(ctx, shifts); err != nil {
		return nil, err
	}
	t.shifts = shifts
	return created, nil
}

// ApplyPreset creates a shift for a date from one of the job's templates.
func (t *Tracker) ApplyPreset(ctx context.Context, jobID track.JobID, presetID string, date track.Day) ([]track.WorkShift, error) {
	t.mu.Lock()
	j, err := t.jobLocked(jobID)
	t.mu.Unlock()
	if err != nil {
		return nil, err
	}
	p, ok := j.Preset(presetID)
	if !ok {
		return nil, &track.ValidationError{Field: "presetId", Reason: "unknown preset template", Err: track.ErrInvalidInput}
	}
	return t.AddShift(ctx, p.Materialize(jobID, date))
}

// UpdateShift applies a patch under an edit scope. Series-wide scopes
// reject schedule changes with ErrCascadeDateChange.
func (t *Tracker) UpdateShift(ctx context.Context, id track.ShiftID, scope track.EditScope, patch track.ShiftPatch) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	shifts, err := track.ApplyEdit(t.shifts, id, scope, patch)
	if err != nil {
		return err
	}
	if err := t.store.SaveShifts(ctx, shifts); err != nil {
		return err
	}
	t.shifts = shifts
	return nil
}

// DeleteShift removes one shift, or a whole series when deleteFuture is
// set on the series root.
func (t *Tracker) DeleteShift(ctx context.Context, id track.ShiftID, deleteFuture bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	shifts, err := track.DeleteShift(t.shifts, id, deleteFuture)
	if err != nil {
		return err
	}
	if err := t.store.SaveShifts(ctx, shifts); err != nil {
		return err
	}
	t.shifts = shifts
	return nil
}

// MarkPaid flags every shift for the job inside the inclusive range as
// paid. Returns how many shifts changed.
func (t *Tracker) MarkPaid(ctx context.Context, jobID track.JobID, r track.DateRange) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !r.Valid() {
		return 0, track.ErrInvalidPeriodRange
	}
	shifts := make([]track.WorkShift, len(t.shifts))
	copy(shifts, t.shifts)
	changed := 0
	for i, s := range shifts {
		if s.JobID == jobID && r.Contains(s.Date) && !s.Paid {
			shifts[i].Paid = true
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := t.store.SaveShifts(ctx, shifts); err != nil {
		return 0, err
	}
	t.shifts = shifts
	return changed, nil
}

// =============================================================================
// PAY SCHEDULES
// =============================================================================

func (t *Tracker) Schedules() []track.PaySchedule {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]track.PaySchedule, len(t.schedules))
	copy(out, t.schedules)
	return out
}

func (t *Tracker) AddSchedule(ctx context.Context, s track.PaySchedule) (track.PaySchedule, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s.ID == "" {
		s.ID = track.ScheduleID(t.newID())
	}
	s.Active = true
	if err := s.Validate(); err != nil {
		return track.PaySchedule{}, err
	}
	if _, err := t.jobLocked(s.JobID); err != nil {
		return track.PaySchedule{}, err
	}

	// One active schedule per job is convention, not enforced by the
	// generator; the orchestrator keeps it true by retiring the old one.
	schedules := make([]track.PaySchedule, len(t.schedules))
	copy(schedules, t.schedules)
	for i, existing := range schedules {
		if existing.JobID == s.JobID && existing.Active {
			schedules[i].Active = false
		}
	}
	schedules = append(schedules, s)
	if err := t.store.SaveSchedules(ctx, schedules); err != nil {
		return track.PaySchedule{}, err
	}
	t.schedules = schedules
	return s, nil
}

func (t *Tracker) DeleteSchedule(ctx context.Context, id track.ScheduleID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	schedules := make([]track.PaySchedule, 0, len(t.schedules))
	found := false
	for _, s := range t.schedules {
		if s.ID == id {
			found = true
			continue
		}
		schedules = append(schedules, s)
	}
	if !found {
		return track.ErrScheduleNotFound
	}
	if err := t.store.SaveSchedules(ctx, schedules); err != nil {
		return err
	}
	t.schedules = schedules
	return nil
}

// SchedulePeriods enumerates a schedule's pay periods overlapping the
// inclusive range.
func (t *Tracker) SchedulePeriods(id track.ScheduleID, rangeStart, rangeEnd track.Day) ([]track.PayPeriod, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range t.schedules {
		if s.ID == id {
			return track.PeriodsInRange(s, rangeStart, rangeEnd)
		}
	}
	return nil, track.ErrScheduleNotFound
}

// =============================================================================
// PAYSLIPS
// =============================================================================

func (t *Tracker) Payslips() []track.Payslip {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]track.Payslip, len(t.payslips))
	copy(out, t.payslips)
	return out
}

func (t *Tracker) AddPayslip(ctx context.Context, p track.Payslip) (track.Payslip, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if p.ID == "" {
		p.ID = track.PayslipID(t.newID())
	}
	if err := p.Validate(); err != nil {
		return track.Payslip{}, err
	}
	payslips := append(append([]track.Payslip{}, t.payslips...), p)
	if err := t.store.SavePayslips(ctx, payslips); err != nil {
		return track.Payslip{}, err
	}
	t.payslips = payslips
	return p, nil
}

func (t *Tracker) DeletePayslip(ctx context.Context, id track.PayslipID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	payslips := make([]track.Payslip, 0, len(t.payslips))
	found := false
	for _, p := range t.payslips {
		if p.ID == id {
			found = true
			continue
		}
		payslips = append(payslips, p)
	}
	if !found {
		return track.ErrPayslipNotFound
	}
	if err := t.store.SavePayslips(ctx, payslips); err != nil {
		return err
	}
	t.payslips = payslips
	return nil
}

// ComparePayslip reconciles a stored payslip against the shifts in its
// period for the same job. A deleted job degrades to a zero rate, so
// override-carrying shifts still reconcile.
func (t *Tracker) ComparePayslip(id track.PayslipID) (track.PayComparison, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var payslip track.Payslip
	found := false
	for _, p := range t.payslips {
		if p.ID == id {
			payslip = p
			found = true
			break
		}
	}
	if !found {
		return track.PayComparison{}, track.ErrPayslipNotFound
	}

	rate := decimal.Zero
	if j, err := t.jobLocked(payslip.JobID); err == nil {
		rate = j.HourlyRate
	}
	relevant := track.ShiftsInDateRange(t.shifts, payslip.Period(), payslip.JobID)
	return track.Compare(payslip, relevant, rate), nil
}

// =============================================================================
// SETTINGS
// =============================================================================

func (t *Tracker) Settings() track.Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings
}

func (t *Tracker) UpdateSettings(ctx context.Context, s track.Settings) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.SaveSettings(ctx, s); err != nil {
		return err
	}
	t.settings = s
	return nil
}
