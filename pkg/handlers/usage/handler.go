package usage

import (
	"encoding/json"
	"net/http"

	"github.com/de-tools/top-users/pkg/adapters"
	"github.com/de-tools/top-users/pkg/models/api"
	usagestore "github.com/de-tools/top-users/pkg/store/duckdb/usage"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	store usagestore.Store
}

func NewHandler(store usagestore.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) ListMonths(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	months, err := h.store.ListMonths(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list months")
		http.Error(w, "failed to list months", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, api.MonthList{Months: months})
}

func (h *Handler) GetMonthUsage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	month := chi.URLParam(r, "month")

	records, err := h.store.GetMonth(ctx, month)
	if err != nil {
		logger.Error().Err(err).Str("month", month).Msg("failed to get month usage")
		http.Error(w, "failed to get month usage", http.StatusInternalServerError)
		return
	}
	if len(records) == 0 {
		http.Error(w, "month not found", http.StatusNotFound)
		return
	}

	writeJSON(w, logger, api.MonthUsage{
		Month:   month,
		Entries: adapters.MapStoreUsageToAPI(records),
	})
}

func (h *Handler) GetTotals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	records, err := h.store.GetTotals(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to get totals")
		http.Error(w, "failed to get totals", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapStoreUsageToAPI(records))
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
