package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"overcooked-ordering/promo-agg-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Reports service.ReportInterface
}

func NewHandler(svc service.ReportInterface) *Handler {
	return &Handler{Reports: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.HandleFunc("/api/promos/daily", h.getDaily).Methods("GET")
	r.HandleFunc("/api/promos/top", h.getTop).Methods("GET")
}

func (h *Handler) getDaily(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	report, err := h.Reports.Daily(r.Context(), r.URL.Query().Get("day"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) getTop(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	stats, err := h.Reports.AllTime(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// parseLimit returns 0 when the limit is absent.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, "Invalid limit", http.StatusBadRequest)
		return 0, false
	}
	return limit, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrInvalidDay) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Printf("[promo-agg-svc] request failed: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
