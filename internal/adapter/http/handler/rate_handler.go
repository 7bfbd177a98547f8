package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/idrissa183/bankledger/internal/adapter/http/dto"
	"github.com/idrissa183/bankledger/internal/infrastructure/metrics"
	"github.com/idrissa183/bankledger/internal/usecase"
)

// RateService defines the behavior needed by RateHandler.
type RateService interface {
	Convert(ctx context.Context, from, to string, amount decimal.Decimal) (*usecase.ConversionResult, error)
	RefreshRates(ctx context.Context) error
}

// RateHandler handles exchange-rate HTTP requests.
type RateHandler struct {
	rateUC  RateService
	metrics *metrics.Metrics
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateUC RateService, m *metrics.Metrics) *RateHandler {
	return &RateHandler{rateUC: rateUC, metrics: m}
}

// Convert converts an amount between two currencies. Accepts either a JSON
// body or from/to/amount query parameters.
func (h *RateHandler) Convert(w http.ResponseWriter, r *http.Request) {
	if _, ok := principalOrFail(w, r); !ok {
		return
	}

	var req dto.ConvertRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	} else {
		query := r.URL.Query()
		req.From = query.Get("from")
		req.To = query.Get("to")

		amount, err := decimal.NewFromString(query.Get("amount"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
			return
		}

		req.Amount = amount
	}

	result, err := h.rateUC.Convert(r.Context(), req.From, req.To, req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to convert", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.ConversionsServed.Inc()
	}

	writeJSON(w, http.StatusOK, dto.ConversionFromUseCase(result))
}

// Refresh forces an exchange rate refresh from the upstream provider.
func (h *RateHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if _, ok := principalOrFail(w, r); !ok {
		return
	}

	if err := h.rateUC.RefreshRates(r.Context()); err != nil {
		if h.metrics != nil {
			h.metrics.RateRefreshes.WithLabelValues("failure").Inc()
		}

		writeError(w, mapDomainError(err), "failed to refresh rates", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.RateRefreshes.WithLabelValues("success").Inc()
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}
