package v1

import (
	"net/http"
	"time"

	"paraguay-shipping/internal/domain"
	"paraguay-shipping/internal/infrastructure/region"
	"paraguay-shipping/pkg/cache"
	"paraguay-shipping/pkg/utils"
)

const enumsCacheKey = "system:config:enums"

type ConfigHandler struct {
	cache   cache.CacheService
	regions *region.Directory
	country string
}

func NewConfigHandler(cache cache.CacheService, regions *region.Directory, country string) *ConfigHandler {
	return &ConfigHandler{cache: cache, regions: regions, country: country}
}

// GET /api/v1/config/enums
func (h *ConfigHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if val, found := h.cache.Get(enumsCacheKey); found {
		utils.WriteJSON(w, http.StatusOK, val)
		return
	}

	response := map[string]interface{}{
		"taxModes":    domain.TaxModes,
		"departments": h.regions.States(h.country),
		"country":     h.country,
	}

	h.cache.Set(enumsCacheKey, response, time.Hour)
	utils.WriteJSON(w, http.StatusOK, response)
}
