package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync/atomic"

	"flighthours-service/internal/domain/entity"
	domainRepo "flighthours-service/internal/domain/repository"
	"flighthours-service/internal/interface/repository"
	"flighthours-service/internal/usecase"
	"flighthours-service/pkg/logger"
)

// ReportHandler serves the reports of the most recent successful run.
// Until a run is available, single crew lookups are answered from store.
type ReportHandler struct {
	latest atomic.Pointer[usecase.RunResult]
	store  domainRepo.MonthReportRepository
	locale string
	logger logger.Logger
}

// NewReportHandler creates a new report handler. store may be nil.
func NewReportHandler(locale string, store domainRepo.MonthReportRepository, logger logger.Logger) *ReportHandler {
	return &ReportHandler{
		store:  store,
		locale: locale,
		logger: logger,
	}
}

// Seed serves a previously persisted output until the first run completes
func (h *ReportHandler) Seed(output *entity.Output) {
	if output == nil {
		return
	}
	h.latest.CompareAndSwap(nil, &usecase.RunResult{Output: output})
}

// Update replaces the served run. A nil result is ignored.
func (h *ReportHandler) Update(result *usecase.RunResult) {
	if result == nil || result.Output == nil {
		return
	}
	h.latest.Store(result)
}

// Routes registers the handler endpoints on mux
func (h *ReportHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /reports", h.reports)
	mux.HandleFunc("GET /reports/{id}", h.crewReports)
	mux.HandleFunc("GET /diagnostics", h.diagnostics)
}

func (h *ReportHandler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Healthy"))
}

func (h *ReportHandler) reports(w http.ResponseWriter, r *http.Request) {
	result := h.latest.Load()
	if result == nil {
		http.Error(w, "reports not ready", http.StatusServiceUnavailable)
		return
	}
	h.writeOutput(w, result.Output)
}

func (h *ReportHandler) crewReports(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid crew id", http.StatusBadRequest)
		return
	}

	result := h.latest.Load()
	if result == nil {
		h.storedCrewReports(w, r, id)
		return
	}

	member, ok := result.Output.FindCrew(id)
	if !ok {
		http.Error(w, "crew member not found", http.StatusNotFound)
		return
	}
	h.writeOutput(w, &entity.Output{Specialists: []entity.CrewMember{*member}})
}

func (h *ReportHandler) storedCrewReports(w http.ResponseWriter, r *http.Request, id int64) {
	if h.store == nil {
		http.Error(w, "reports not ready", http.StatusServiceUnavailable)
		return
	}

	reports, err := h.store.FindByCrewID(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to read stored reports", "store", h.store.Name(), "crewID", id, "error", err)
		http.Error(w, "failed to read stored reports", http.StatusBadGateway)
		return
	}
	if reports == nil {
		http.Error(w, "crew member not found", http.StatusNotFound)
		return
	}
	h.writeOutput(w, &entity.Output{Specialists: []entity.CrewMember{{ID: id, Reports: reports}}})
}

func (h *ReportHandler) diagnostics(w http.ResponseWriter, r *http.Request) {
	result := h.latest.Load()
	if result == nil {
		http.Error(w, "reports not ready", http.StatusServiceUnavailable)
		return
	}

	body := struct {
		RunID       string   `json:"runId"`
		Diagnostics []string `json:"diagnostics"`
	}{
		RunID:       result.RunID,
		Diagnostics: result.Diagnostics.Messages(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to write diagnostics", "error", err)
	}
}

func (h *ReportHandler) writeOutput(w http.ResponseWriter, output *entity.Output) {
	data, err := repository.MarshalOutput(output, h.locale)
	if err != nil {
		h.logger.Error("Failed to encode reports", "error", err)
		http.Error(w, "failed to encode reports", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(data)
}
