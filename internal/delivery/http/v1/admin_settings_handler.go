package v1

import (
	"errors"
	"net/http"

	"paraguay-shipping/internal/domain"
	"paraguay-shipping/pkg/cache"
	"paraguay-shipping/pkg/logger"
	"paraguay-shipping/pkg/utils"
)

type AdminSettingsHandler struct {
	settingsUC domain.SettingsUsecase
	cache      cache.CacheService
}

func NewAdminSettingsHandler(uc domain.SettingsUsecase, cache cache.CacheService) *AdminSettingsHandler {
	return &AdminSettingsHandler{settingsUC: uc, cache: cache}
}

// GET /api/v1/admin/shipping/settings
func (h *AdminSettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	report, err := h.settingsUC.GetSettings(r.Context())
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Settings: load failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: withWarnings(report)})
}

// PUT /api/v1/admin/shipping/settings
func (h *AdminSettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.Settings
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	report, err := h.settingsUC.UpdateSettings(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSettings) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.WithContext(r.Context()).Error().Err(err).Msg("Settings: update failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	h.cache.Delete(CitiesCacheKey)

	message := "Settings saved"
	if len(report.Warnings) > 0 {
		message = "Settings saved; some lines were skipped"
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Message: message, Data: withWarnings(report)})
}

// POST /api/v1/admin/shipping/settings/validate
func (h *AdminSettingsHandler) ValidateSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.Settings
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	warnings, err := h.settingsUC.ValidateSettings(&req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSettings) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to validate settings")
		return
	}
	if warnings == nil {
		warnings = []domain.LineError{}
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    map[string]interface{}{"valid": len(warnings) == 0, "warnings": warnings},
	})
}

func withWarnings(report *domain.SettingsReport) *domain.SettingsReport {
	if report.Warnings == nil {
		report.Warnings = []domain.LineError{}
	}
	return report
}
