/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY AS STRINGS:
  Gross amounts, estimates and impact percentages cross the wire as
  decimal strings ("12345.67"), never as JSON numbers, so clients see
  exactly what the engine computed.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/config.go: CalendarJSON type (the config payload)
*/
package api

import (
	"github.com/aliebnemara/budget-management-backend/engine"
	"github.com/aliebnemara/budget-management-backend/islamic"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// BranchDTO represents a branch in API responses.
type BranchDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RunRequest selects the branches to estimate. An empty list means every
// branch with sales history.
type RunRequest struct {
	BranchIDs []int64 `json:"branch_ids,omitempty"`
}

// RunResponse is the full output of an estimation run.
type RunResponse struct {
	CompareYear int               `json:"compare_year"`
	BudgetYear  int               `json:"budget_year"`
	Branches    []BranchReportDTO `json:"branches"`

	// Errors lists branches that could not be estimated; the run still
	// returns every branch that could.
	Errors []string `json:"errors,omitempty"`
}

// BranchReportDTO is one branch's event reports.
type BranchReportDTO struct {
	BranchID int64            `json:"branch_id"`
	Events   []EventReportDTO `json:"events"`
}

// EventReportDTO is one event's monthly impact rows for one branch.
type EventReportDTO struct {
	Event     string              `json:"event"`
	EventName string              `json:"event_name"`
	Skipped   bool                `json:"skipped,omitempty"`
	Months    []MonthlySummaryDTO `json:"months"`
}

// MonthlySummaryDTO is one month's impact row.
type MonthlySummaryDTO struct {
	Month            int    `json:"month"`
	MonthName        string `json:"month_name"`
	ActualTotal      string `json:"actual_total"`
	EstimatedTotal   string `json:"estimated_total"`
	ImpactPct        string `json:"impact_pct"`
	State            string `json:"state"`
	InsufficientData bool   `json:"insufficient_data,omitempty"`
}

// DailyResponse is the day-by-day breakdown for one branch, event and month.
type DailyResponse struct {
	BranchID int64           `json:"branch_id"`
	Event    string          `json:"event"`
	Month    int             `json:"month"`
	Skipped  bool            `json:"skipped,omitempty"`
	Entries  []DailyEntryDTO `json:"entries"`
}

// DailyEntryDTO is one budget-year day of a plan.
type DailyEntryDTO struct {
	Date             string `json:"date"`
	CompareDate      string `json:"compare_date"`
	Weekday          string `json:"weekday"`
	Class            string `json:"class"`
	Method           string `json:"method"`
	Source           string `json:"source,omitempty"`
	SourceDate       string `json:"source_date,omitempty"`
	Ordinal          int    `json:"ordinal,omitempty"`
	Actual           string `json:"actual"`
	Estimate         string `json:"estimate"`
	InsufficientData bool   `json:"insufficient_data,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// DOMAIN TO DTO CONVERSION
// =============================================================================

func toBranchReportDTO(r *islamic.BranchReport) BranchReportDTO {
	dto := BranchReportDTO{BranchID: int64(r.Branch)}
	for _, ev := range r.Events {
		dto.Events = append(dto.Events, toEventReportDTO(ev))
	}
	return dto
}

func toEventReportDTO(r islamic.EventReport) EventReportDTO {
	dto := EventReportDTO{
		Event:     r.Event.EventID(),
		EventName: r.Event.EventName(),
		Skipped:   r.Skipped,
		Months:    []MonthlySummaryDTO{},
	}
	for _, s := range r.Summaries {
		dto.Months = append(dto.Months, toMonthlySummaryDTO(s))
	}
	return dto
}

func toMonthlySummaryDTO(s engine.MonthlySummary) MonthlySummaryDTO {
	return MonthlySummaryDTO{
		Month:            int(s.Month),
		MonthName:        s.Month.String(),
		ActualTotal:      s.ActualTotal.String(),
		EstimatedTotal:   s.EstimatedTotal.String(),
		ImpactPct:        s.ImpactPct.StringFixed(2),
		State:            string(s.State),
		InsufficientData: s.InsufficientData,
	}
}

func toDailyEntryDTO(e engine.PlanEntry) DailyEntryDTO {
	dto := DailyEntryDTO{
		Date:             e.Date.String(),
		CompareDate:      e.CYDate.String(),
		Weekday:          e.Weekday.String(),
		Class:            e.Class.String(),
		Method:           string(e.Method),
		Source:           e.Source,
		Ordinal:          e.Ordinal,
		Actual:           e.Actual.String(),
		Estimate:         e.Estimate.String(),
		InsufficientData: e.InsufficientData,
	}
	if !e.SourceDate.IsZero() {
		dto.SourceDate = e.SourceDate.String()
	}
	return dto
}
