// Package api exposes the JSON HTTP surface of the time tracker.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lbarrett/tempo/internal/repository"
	"github.com/lbarrett/tempo/internal/service"
)

const dateLayout = "2006-01-02"

// Handler coordinates HTTP requests with the timer and entry services.
type Handler struct {
	timer   service.TimerService
	entries service.EntryService
	tasks   service.TaskService
	loc     *time.Location
}

// NewHandler builds a Handler. loc is the display timezone used to parse
// calendar-date query parameters.
func NewHandler(timer service.TimerService, entries service.EntryService, tasks service.TaskService, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{timer: timer, entries: entries, tasks: tasks, loc: loc}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/time-entries", h.timeEntries)
	mux.HandleFunc("/time-entries/", h.timeEntrySubroutes)
	mux.HandleFunc("/tasks", h.listTasks)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for liveness probes.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) timeEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listEntries(w, r)
	case http.MethodPost:
		h.createEntry(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
	}
}

// timeEntrySubroutes dispatches /time-entries/active, /time-entries/start,
// /time-entries/{id}/stop and /time-entries/{id}.
func (h *Handler) timeEntrySubroutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/time-entries/")

	switch {
	case rest == "active":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "unsupported method")
			return
		}
		h.activeEntry(w, r)
	case rest == "start":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "unsupported method")
			return
		}
		h.startTimer(w, r)
	case strings.HasSuffix(rest, "/stop"):
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "unsupported method")
			return
		}
		h.stopTimer(w, r, strings.TrimSuffix(rest, "/stop"))
	case rest != "" && !strings.Contains(rest, "/"):
		switch r.Method {
		case http.MethodPut:
			h.updateEntry(w, r, rest)
		case http.MethodDelete:
			h.deleteEntry(w, r, rest)
		default:
			writeError(w, http.StatusMethodNotAllowed, "unsupported method")
		}
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *Handler) activeEntry(w http.ResponseWriter, r *http.Request) {
	detail, err := h.timer.Active(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if detail == nil {
		// No running timer is a normal answer, not an error.
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, detailToView(*detail))
}

func (h *Handler) startTimer(w http.ResponseWriter, r *http.Request) {
	var req StartTimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.timer.Start(r.Context(), req.TaskID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := StartTimerResponse{
		Message:        "Timer started successfully.",
		TimeEntryID:    result.Entry.ID,
		TaskID:         result.Entry.TaskID,
		TaskExternalID: result.Entry.TaskExternalID,
		StartTime:      result.Entry.StartTime,
		Resumed:        result.Resumed,
	}
	if result.Stopped != nil {
		view := entryToView(result.Stopped)
		resp.StoppedEntry = &view
	}
	status := http.StatusCreated
	if result.Resumed {
		status = http.StatusOK
	}
	writeJSON(w, status, resp)
}

func (h *Handler) stopTimer(w http.ResponseWriter, r *http.Request, id string) {
	entry, err := h.timer.Stop(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StopTimerResponse{
		Message:     "Timer stopped successfully.",
		TimeEntryID: entry.ID,
		EndTime:     *entry.EndTime,
		Duration:    entry.DurationSeconds,
	})
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		details []repository.EntryDetail
		err     error
	)
	switch {
	case q.Get("date") != "":
		var day time.Time
		day, err = time.ParseInLocation(dateLayout, q.Get("date"), h.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		details, err = h.entries.ListForDay(r.Context(), day)
	case q.Get("startDate") != "" || q.Get("endDate") != "":
		var from, to time.Time
		from, err = time.ParseInLocation(dateLayout, q.Get("startDate"), h.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid startDate, expected YYYY-MM-DD")
			return
		}
		to, err = time.ParseInLocation(dateLayout, q.Get("endDate"), h.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid endDate, expected YYYY-MM-DD")
			return
		}
		details, err = h.entries.ListForRange(r.Context(), from, to)
	default:
		// No filter: today's entries.
		details, err = h.entries.ListForDay(r.Context(), time.Now())
	}
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	views := make([]EntryView, 0, len(details))
	for _, d := range details {
		views = append(views, detailToView(d))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.entries.Create(r.Context(), service.CreateEntryInput{
		TaskID:          req.TaskID,
		Start:           req.StartTime,
		End:             req.EndTime,
		DurationSeconds: req.Duration,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entryToView(entry))
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request, id string) {
	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.entries.Update(r.Context(), id, service.UpdateEntryInput{
		Start: req.StartTime,
		End:   req.EndTime,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entryToView(entry))
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.entries.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteEntryResponse{
		Message:     "Time entry deleted successfully.",
		TimeEntryID: id,
	})
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
		return
	}

	filter := repository.TaskFilter{
		Status:    r.URL.Query().Get("status"),
		ProjectID: r.URL.Query().Get("projectId"),
	}
	details, err := h.tasks.ListDetail(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	views := make([]TaskView, 0, len(details))
	for _, d := range details {
		views = append(views, taskDetailToView(d))
	}
	writeJSON(w, http.StatusOK, views)
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// validation 400, unknown or already-closed targets 404, everything else
// 500 after the transaction rolled back.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case service.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAlreadyStopped):
		writeError(w, http.StatusNotFound, "Active time entry not found or already stopped.")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
