/*
handlers.go - HTTP API handlers for the sales estimation service

PURPOSE:
  Exposes the calendar-effects estimation engine via REST API. Handles
  HTTP request/response, JSON serialization, and delegates to the
  estimator and stores.

ENDPOINTS:
  Config:
    GET    /api/config                  Current event calendar (JSON document)
    PUT    /api/config                  Replace the event calendar

  Estimates:
    POST   /api/estimates/run           Run estimation for all/selected branches
    GET    /api/estimates/{branch}/events/{event}/daily?month=M
                                        Day-by-day breakdown for one month

  Branches:
    GET    /api/branches                Branches with sales history

  Health:
    GET    /api/health                  Liveness probe

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (estimator, stores)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Branch or calendar not found
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - islamic/estimator.go: The runs these handlers trigger
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aliebnemara/budget-management-backend/engine"
	"github.com/aliebnemara/budget-management-backend/factory"
	"github.com/aliebnemara/budget-management-backend/islamic"
	"github.com/aliebnemara/budget-management-backend/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	Factory   *factory.CalendarFactory
	Estimator *islamic.Estimator
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:     store,
		Factory:   factory.NewCalendarFactory(),
		Estimator: islamic.NewEstimator(store),
	}
}

// loadCalendar fetches and parses the stored calendar document.
func (h *Handler) loadCalendar(r *http.Request) (*islamic.Calendar, error) {
	doc, err := h.Store.LoadCalendar(r.Context())
	if err != nil {
		return nil, err
	}
	return h.Factory.ParseCalendar(doc)
}

// =============================================================================
// HEALTH
// =============================================================================

// Health is the liveness probe.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// CONFIG HANDLERS
// =============================================================================

// GetConfig returns the current event calendar document.
// GET /api/config
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Store.LoadCalendar(r.Context())
	if engine.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "No event calendar configured", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load calendar", err)
		return
	}

	cal, err := h.Factory.ParseCalendar(doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored calendar is invalid", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Factory.ToJSON(cal))
}

// PutConfig validates and stores a new event calendar document.
// PUT /api/config
func (h *Handler) PutConfig(w http.ResponseWriter, r *http.Request) {
	var cj factory.CalendarJSON
	if err := json.NewDecoder(r.Body).Decode(&cj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}

	cal, err := h.Factory.FromJSON(cj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid calendar", err)
		return
	}

	// Store the normalized form so derived defaults are explicit.
	normalized := h.Factory.ToJSON(cal)
	doc, err := json.Marshal(normalized)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode calendar", err)
		return
	}
	if err := h.Store.SaveCalendar(r.Context(), cal.BudgetYear, string(doc)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save calendar", err)
		return
	}

	writeJSON(w, http.StatusOK, normalized)
}

// =============================================================================
// ESTIMATE HANDLERS
// =============================================================================

// RunEstimates runs the estimator and returns monthly impact reports.
// POST /api/estimates/run
func (h *Handler) RunEstimates(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body", err)
			return
		}
	}

	cal, err := h.loadCalendar(r)
	if engine.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "No event calendar configured", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load calendar", err)
		return
	}

	resp := RunResponse{
		CompareYear: cal.CompareYear,
		BudgetYear:  cal.BudgetYear,
		Branches:    []BranchReportDTO{},
	}

	if len(req.BranchIDs) == 0 {
		reports, err := h.Estimator.EstimateAll(r.Context(), cal)
		if err != nil && len(reports) == 0 {
			writeError(w, http.StatusInternalServerError, "Estimation failed", err)
			return
		}
		if err != nil {
			resp.Errors = append(resp.Errors, err.Error())
		}
		for _, rep := range reports {
			resp.Branches = append(resp.Branches, toBranchReportDTO(rep))
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	for _, id := range req.BranchIDs {
		rep, err := h.Estimator.EstimateBranch(r.Context(), cal, engine.BranchID(id))
		if err != nil {
			if engine.IsConfiguration(err) {
				writeError(w, http.StatusBadRequest, "Invalid calendar", err)
				return
			}
			resp.Errors = append(resp.Errors, fmt.Sprintf("branch %d: %v", id, err))
			continue
		}
		resp.Branches = append(resp.Branches, toBranchReportDTO(rep))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetDaily returns the day-by-day breakdown for one branch, event and month.
// GET /api/estimates/{branch}/events/{event}/daily?month=M
func (h *Handler) GetDaily(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseInt(chi.URLParam(r, "branch"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid branch id", err)
		return
	}

	event := islamic.Event(chi.URLParam(r, "event"))
	if !event.Known() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown event %q", string(event)), nil)
		return
	}
	if event == islamic.EidAlFitr {
		// The tail has no standalone plan; its days appear in ramadan's.
		writeError(w, http.StatusBadRequest, "eid_al_fitr days are part of the ramadan breakdown", nil)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Query parameter month must be 1-12", err)
		return
	}

	cal, err := h.loadCalendar(r)
	if engine.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "No event calendar configured", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load calendar", err)
		return
	}

	report, err := h.Estimator.EstimateBranch(r.Context(), cal, engine.BranchID(branchID))
	if err != nil {
		switch {
		case engine.IsConfiguration(err):
			writeError(w, http.StatusBadRequest, "Invalid calendar", err)
		case engine.IsNotFound(err) || errors.Is(err, engine.ErrNoHistory):
			writeError(w, http.StatusNotFound, fmt.Sprintf("Branch %d has no sales history", branchID), err)
		default:
			writeError(w, http.StatusInternalServerError, "Estimation failed", err)
		}
		return
	}

	ev := report.Report(event)
	if ev == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No report for event %q", string(event)), nil)
		return
	}

	resp := DailyResponse{
		BranchID: branchID,
		Event:    event.EventID(),
		Month:    month,
		Skipped:  ev.Skipped,
		Entries:  []DailyEntryDTO{},
	}
	if ev.Plan != nil {
		for _, e := range ev.Plan.EntriesForMonth(time.Month(month)) {
			resp.Entries = append(resp.Entries, toDailyEntryDTO(e))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// BRANCH HANDLERS
// =============================================================================

// ListBranches returns every branch with sales history.
// GET /api/branches
func (h *Handler) ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.Store.Branches(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list branches", err)
		return
	}

	dtos := make([]BranchDTO, len(branches))
	for i, b := range branches {
		dtos[i] = BranchDTO{ID: int64(b.ID), Name: b.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
