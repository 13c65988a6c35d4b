package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/tabreed/stockline/internal/app"
	"github.com/tabreed/stockline/internal/common"
	"github.com/tabreed/stockline/internal/interfaces"
	"github.com/tabreed/stockline/internal/models"
)

// kindHandler serves the REST surface of one record kind. Every kind gets
// the same routes; the type parameter keeps request decoding and responses
// concrete.
type kindHandler[T models.Record] struct {
	base    string // e.g. "/api/balance-sheets"
	service interfaces.RecordService[T]
	runner  app.ScheduledRunner
	logger  *common.Logger
}

// registerKindRoutes mounts a kind's routes on the mux.
func registerKindRoutes[T models.Record](mux *http.ServeMux, segment string, service interfaces.RecordService[T], runner app.ScheduledRunner, logger *common.Logger) {
	h := &kindHandler[T]{
		base:    "/api/" + segment,
		service: service,
		runner:  runner,
		logger:  logger,
	}
	mux.HandleFunc(h.base, h.handleCollection)
	mux.HandleFunc(h.base+"/", h.route)
}

// handleCollection serves GET (list all) and POST (save) on the base path.
func (h *kindHandler[T]) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		records, err := h.service.List(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		if records == nil {
			records = []T{}
		}
		WriteJSON(w, http.StatusOK, records)
	case http.MethodPost:
		var record T
		if !DecodeJSON(w, r, &record) {
			return
		}
		saved, err := h.service.Save(r.Context(), record)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, saved)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// route dispatches subpaths: symbol lookups, refresh control and id access.
func (h *kindHandler[T]) route(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, h.base+"/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case parts[0] == "symbol":
		if len(parts) < 2 || parts[1] == "" {
			WriteError(w, http.StatusBadRequest, "Invalid symbol")
			return
		}
		h.routeSymbol(w, r, parts[1:])
	case parts[0] == "update" && len(parts) == 2:
		h.routeUpdate(w, r, parts[1])
	case len(parts) == 1 && parts[0] != "":
		h.handleByID(w, r, parts[0])
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

func (h *kindHandler[T]) routeSymbol(w http.ResponseWriter, r *http.Request, parts []string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	symbol := parts[0]

	switch {
	case len(parts) == 1:
		records, err := h.service.GetBySymbol(r.Context(), symbol)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		if len(records) == 0 {
			WriteError(w, http.StatusNotFound, "Record not found")
			return
		}
		WriteJSON(w, http.StatusOK, records)

	case len(parts) == 2 && parts[1] == "latest":
		record, err := h.service.GetLatest(r.Context(), symbol)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, record)

	case len(parts) == 2 && parts[1] == "range":
		start, end, ok := parseDateRange(w, r)
		if !ok {
			return
		}
		records, err := h.service.GetRange(r.Context(), symbol, start, end)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		if records == nil {
			records = []T{}
		}
		WriteJSON(w, http.StatusOK, records)

	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

func (h *kindHandler[T]) routeUpdate(w http.ResponseWriter, r *http.Request, action string) {
	if h.runner == nil {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	switch action {
	case "status":
		if !RequireMethod(w, r, http.MethodGet) {
			return
		}
		WriteJSON(w, http.StatusOK, h.runner.Status())

	case "trigger":
		if !RequireMethod(w, r, http.MethodPost) {
			return
		}
		if h.runner.Status().Running {
			WriteError(w, http.StatusConflict, "Refresh already running")
			return
		}
		run, err := h.runner.Run(r.Context(), "manual")
		if err != nil {
			h.logger.Error().Str("kind", h.runner.Kind()).Err(err).Msg("Manual refresh failed")
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, run)

	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

func (h *kindHandler[T]) handleByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		record, err := h.service.GetByID(r.Context(), id)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, record)
	case http.MethodDelete:
		if err := h.service.Delete(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

// parseDateRange reads startDate/endDate query parameters in YYYY-MM-DD
// form. The end bound is inclusive of the whole end day.
func parseDateRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	const layout = "2006-01-02"

	startParam := r.URL.Query().Get("startDate")
	endParam := r.URL.Query().Get("endDate")
	if startParam == "" || endParam == "" {
		WriteError(w, http.StatusBadRequest, "startDate and endDate query parameters are required")
		return time.Time{}, time.Time{}, false
	}

	start, err := time.Parse(layout, startParam)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid startDate, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(layout, endParam)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid endDate, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		WriteError(w, http.StatusBadRequest, "endDate must not precede startDate")
		return time.Time{}, time.Time{}, false
	}

	end = end.Add(24*time.Hour - time.Nanosecond)
	return start, end, true
}
