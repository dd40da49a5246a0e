package v1

import (
	"net/http"
	"strings"
	"time"

	"paraguay-shipping/internal/domain"
	"paraguay-shipping/pkg/cache"
	"paraguay-shipping/pkg/logger"
	"paraguay-shipping/pkg/utils"
)

// CitiesCacheKey holds the cached GET /shipping/cities response.
const CitiesCacheKey = "shipping:cities"

type ShippingHandler struct {
	shippingUC domain.ShippingUsecase
	cache      cache.CacheService
	citiesTTL  time.Duration
}

func NewShippingHandler(uc domain.ShippingUsecase, cache cache.CacheService, citiesTTL time.Duration) *ShippingHandler {
	return &ShippingHandler{shippingUC: uc, cache: cache, citiesTTL: citiesTTL}
}

// POST /api/v1/shipping/rates
func (h *ShippingHandler) QuoteRates(w http.ResponseWriter, r *http.Request) {
	var dest domain.Destination
	if err := utils.DecodeJSON(r, &dest); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	sink := &domain.OfferCollector{}
	quote, err := h.shippingUC.CalculateShipping(r.Context(), dest, sink)
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Shipping: quote failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to calculate shipping")
		return
	}

	offers := sink.Offers
	if offers == nil {
		offers = []domain.ShippingOffer{}
	}
	skipped := quote.Skipped
	if skipped == nil {
		skipped = []domain.LineError{}
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    offers,
		Meta:    domain.QuoteMeta{SkippedLines: skipped},
	})
}

// GET /api/v1/shipping/cities
func (h *ShippingHandler) GetCities(w http.ResponseWriter, r *http.Request) {
	if val, found := h.cache.Get(CitiesCacheKey); found {
		w.Header().Set("X-Cache", "HIT")
		utils.WriteJSON(w, http.StatusOK, val)
		return
	}

	cities, err := h.shippingUC.GetCities(r.Context())
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Shipping: list cities failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load cities")
		return
	}
	if cities == nil {
		cities = []domain.CityOption{}
	}

	response := domain.Response{Success: true, Data: cities}
	h.cache.Set(CitiesCacheKey, response, h.citiesTTL)

	w.Header().Set("X-Cache", "MISS")
	utils.WriteJSON(w, http.StatusOK, response)
}

// GET /api/v1/shipping/checkout-guard?city=
//
// Storefronts call this before enabling "proceed to checkout".
func (h *ShippingHandler) CheckoutGuard(w http.ResponseWriter, r *http.Request) {
	guard := domain.CheckoutGuard{Allowed: true}
	if strings.TrimSpace(r.URL.Query().Get("city")) == "" {
		guard = domain.CheckoutGuard{Allowed: false, Message: domain.CheckoutCityRequiredMessage}
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: guard})
}
