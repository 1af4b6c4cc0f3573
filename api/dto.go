/*
dto.go - Request and response shapes for the HTTP API

Entities in track already carry stable JSON tags, so responses mostly
serve them directly. The types here exist where the wire shape differs
from the domain shape: partial updates, scope-carrying edits, and the
mark-paid command.
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomsp05/worktracker/track"
)

// UpdateShiftRequest is a partial shift update plus its edit scope.
// Nil fields are left alone; clearOverride beats hourlyRateOverride.
type UpdateShiftRequest struct {
	Scope string `json:"scope"` // this_only | this_and_future | all

	JobID         *string          `json:"jobId,omitempty"`
	Date          *track.Day       `json:"date,omitempty"`
	Start         *time.Time       `json:"startTime,omitempty"`
	End           *time.Time       `json:"endTime,omitempty"`
	BreakHours    *decimal.Decimal `json:"breakHours,omitempty"`
	ShiftType     *string          `json:"shiftType,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	Paid          *bool            `json:"isPaid,omitempty"`
	RateOverride  *decimal.Decimal `json:"hourlyRateOverride,omitempty"`
	ClearOverride bool             `json:"clearOverride,omitempty"`
}

func (r UpdateShiftRequest) patch() track.ShiftPatch {
	p := track.ShiftPatch{
		Date:          r.Date,
		Start:         r.Start,
		End:           r.End,
		BreakHours:    r.BreakHours,
		Notes:         r.Notes,
		Paid:          r.Paid,
		RateOverride:  r.RateOverride,
		ClearOverride: r.ClearOverride,
	}
	if r.JobID != nil {
		id := track.JobID(*r.JobID)
		p.JobID = &id
	}
	if r.ShiftType != nil {
		st := track.ShiftType(*r.ShiftType)
		p.Type = &st
	}
	return p
}

// ApplyPresetRequest materializes a job's preset template on a date.
type ApplyPresetRequest struct {
	Date track.Day `json:"date"`
}

// MarkPaidRequest flags a job's shifts in a range as paid.
type MarkPaidRequest struct {
	JobID string    `json:"jobId"`
	Start track.Day `json:"start"`
	End   track.Day `json:"end"`
}

type markPaidResponse struct {
	Updated int `json:"updated"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
