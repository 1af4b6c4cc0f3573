/*
handlers.go - HTTP handlers for the work tracker

ENDPOINTS:
  Jobs:
    GET    /api/jobs                     List jobs
    POST   /api/jobs                     Create job
    GET    /api/jobs/{id}                Get job
    PUT    /api/jobs/{id}                Update job
    DELETE /api/jobs/{id}                Delete (or deactivate) job
    POST   /api/jobs/{id}/presets/{presetID}/apply  Shift from template

  Shifts:
    GET    /api/shifts?from=&to=         List shifts (optional date range)
    POST   /api/shifts                   Create shift (expands recurrence)
    GET    /api/shifts/{id}              Get shift
    PUT    /api/shifts/{id}              Patch shift with edit scope
    DELETE /api/shifts/{id}?deleteFuture= Delete shift or series
    POST   /api/shifts/markpaid          Bulk mark paid

  Schedules & payslips:
    GET/POST /api/schedules, DELETE /api/schedules/{id}
    GET    /api/schedules/{id}/periods?from=&to=
    GET/POST /api/payslips, DELETE /api/payslips/{id}
    GET    /api/payslips/{id}/comparison

  Reports:
    GET    /api/reports/summary?window=&offset=
    GET    /api/reports/by-job?window=&offset=
    GET    /api/reports/buckets?window=&offset=&n=
    GET    /api/reports/unpaid

  Misc:
    GET    /api/widget                   Read-only snapshot
    GET    /api/export  POST /api/import Backup round-trip
    GET/PUT /api/settings
    POST   /api/demo/seed

ERROR MAPPING:
  Validation failures -> 400, unknown ids -> 404, everything else -> 500.
  Bodies are {"error": ..., "detail": ...}.
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomsp05/worktracker/track"
	"github.com/tomsp05/worktracker/tracker"
	"github.com/tomsp05/worktracker/widget"
)

// Handler holds the handlers' dependencies. The store handle is kept
// separately so the widget endpoint evaluates against its own load of
// the persisted state, not the tracker's live memory.
type Handler struct {
	Tracker *tracker.Tracker
	Store   track.Store
}

func NewHandler(t *tracker.Tracker, store track.Store) *Handler {
	return &Handler{Tracker: t, Store: store}
}

// =============================================================================
// JOBS
// =============================================================================

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Tracker.Jobs())
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var j track.Job
	if err := json.NewDecoder(r.Body).Decode(&j); err != nil {
		writeError(w, http.StatusBadRequest, "invalid job payload", err)
		return
	}
	created, err := h.Tracker.AddJob(r.Context(), j)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	j, err := h.Tracker.Job(track.JobID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var j track.Job
	if err := json.NewDecoder(r.Body).Decode(&j); err != nil {
		writeError(w, http.StatusBadRequest, "invalid job payload", err)
		return
	}
	j.ID = track.JobID(chi.URLParam(r, "id"))
	if err := h.Tracker.UpdateJob(r.Context(), j); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := h.Tracker.DeleteJob(r.Context(), track.JobID(chi.URLParam(r, "id"))); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	var req ApplyPresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload", err)
		return
	}
	created, err := h.Tracker.ApplyPreset(r.Context(),
		track.JobID(chi.URLParam(r, "id")), chi.URLParam(r, "presetID"), req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// =============================================================================
// SHIFTS
// =============================================================================

func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" && to == "" {
		writeJSON(w, http.StatusOK, h.Tracker.Shifts())
		return
	}
	dr, err := parseDateRange(from, to)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date range", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Tracker.ShiftsInRange(dr))
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var s track.WorkShift
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid shift payload", err)
		return
	}
	if s.Type == "" {
		s.Type = track.ShiftRegular
	}
	if s.Recurrence == "" {
		s.Recurrence = track.RecurNone
	}
	created, err := h.Tracker.AddShift(r.Context(), s)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	s, err := h.Tracker.Shift(track.ShiftID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	var req UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid shift patch", err)
		return
	}
	scope := track.EditScope(req.Scope)
	if req.Scope == "" {
		scope = track.EditThisOnly
	}
	id := track.ShiftID(chi.URLParam(r, "id"))
	if err := h.Tracker.UpdateShift(r.Context(), id, scope, req.patch()); err != nil {
		writeDomainError(w, err)
		return
	}
	s, err := h.Tracker.Shift(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	deleteFuture := r.URL.Query().Get("deleteFuture") == "true"
	err := h.Tracker.DeleteShift(r.Context(), track.ShiftID(chi.URLParam(r, "id")), deleteFuture)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload", err)
		return
	}
	n, err := h.Tracker.MarkPaid(r.Context(), track.JobID(req.JobID),
		track.DateRange{Start: req.Start, End: req.End})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, markPaidResponse{Updated: n})
}

// =============================================================================
// SCHEDULES & PAY PERIODS
// =============================================================================

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Tracker.Schedules())
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var s track.PaySchedule
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid schedule payload", err)
		return
	}
	created, err := h.Tracker.AddSchedule(r.Context(), s)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.Tracker.DeleteSchedule(r.Context(), track.ScheduleID(chi.URLParam(r, "id"))); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SchedulePeriods(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date range", err)
		return
	}
	periods, err := h.Tracker.SchedulePeriods(track.ScheduleID(chi.URLParam(r, "id")), dr.Start, dr.End)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, periods)
}

// =============================================================================
// PAYSLIPS & RECONCILIATION
// =============================================================================

func (h *Handler) ListPayslips(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Tracker.Payslips())
}

func (h *Handler) CreatePayslip(w http.ResponseWriter, r *http.Request) {
	var p track.Payslip
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payslip payload", err)
		return
	}
	created, err := h.Tracker.AddPayslip(r.Context(), p)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) DeletePayslip(w http.ResponseWriter, r *http.Request) {
	if err := h.Tracker.DeletePayslip(r.Context(), track.PayslipID(chi.URLParam(r, "id"))); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ComparePayslip(w http.ResponseWriter, r *http.Request) {
	c, err := h.Tracker.ComparePayslip(track.PayslipID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// =============================================================================
// REPORTS
// =============================================================================

func (h *Handler) ReportSummary(w http.ResponseWriter, r *http.Request) {
	window, offset, ok := parseWindow(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Tracker.Summary(window, offset))
}

func (h *Handler) ReportByJob(w http.ResponseWriter, r *http.Request) {
	window, offset, ok := parseWindow(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Tracker.EarningsByJob(window, offset))
}

func (h *Handler) ReportBuckets(w http.ResponseWriter, r *http.Request) {
	window, offset, ok := parseWindow(w, r)
	if !ok {
		return
	}
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil || n < 1 {
		n = 7
	}
	writeJSON(w, http.StatusOK, h.Tracker.ChartBuckets(window, offset, n))
}

func (h *Handler) ReportUnpaid(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Tracker.UnpaidSummary())
}

// =============================================================================
// WIDGET, EXPORT/IMPORT, SETTINGS
// =============================================================================

func (h *Handler) Widget(w http.ResponseWriter, r *http.Request) {
	snap, err := widget.Load(r.Context(), h.Store, timeNow())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load widget snapshot", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="worktracker-export.json"`)
	if err := h.Tracker.Export(w); err != nil {
		// Headers are gone; all we can do is log via the middleware.
		return
	}
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	if err := h.Tracker.Import(r.Context(), r.Body); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Tracker.Settings())
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var s track.Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid settings payload", err)
		return
	}
	if err := h.Tracker.UpdateSettings(r.Context(), s); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// =============================================================================
// HELPERS
// =============================================================================

// timeNow is a seam for handler tests.
var timeNow = time.Now

func parseWindow(w http.ResponseWriter, r *http.Request) (track.Window, int, bool) {
	window := track.Window(r.URL.Query().Get("window"))
	if window == "" {
		window = track.WindowWeek
	}
	if !window.Valid() {
		writeError(w, http.StatusBadRequest, "unknown window", nil)
		return "", 0, false
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset", err)
			return "", 0, false
		}
		offset = n
	}
	return window, offset, true
}

func parseDateRange(from, to string) (track.DateRange, error) {
	start, err := track.ParseDay(from)
	if err != nil {
		return track.DateRange{}, err
	}
	end, err := track.ParseDay(to)
	if err != nil {
		return track.DateRange{}, err
	}
	r := track.DateRange{Start: start, End: end}
	if !r.Valid() {
		return track.DateRange{}, track.ErrInvalidPeriodRange
	}
	return r, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case track.IsClientError(err):
		writeError(w, http.StatusBadRequest, "rejected", err)
	case track.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal error", err)
	}
}
