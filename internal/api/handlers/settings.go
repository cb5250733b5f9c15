package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/indic-translate/backend/internal/db"
	"github.com/indic-translate/backend/internal/lang"
	"github.com/indic-translate/backend/internal/region"
)

// settingsKeys defines which keys are allowed and their display metadata
var settingsKeys = []SettingDef{
	{Key: "default_domain", Label: "Default Glossary Domain", Group: "translation", Placeholder: "medical"},
	{Key: "default_region", Label: "Default Region", Group: "translation", Placeholder: "tamilnadu"},
	{Key: "default_target_language", Label: "Default Target Language", Group: "translation", Placeholder: "hi"},
}

type SettingDef struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Group       string `json:"group"`
	Placeholder string `json:"placeholder"`
}

type SettingsHandler struct {
	database *db.Database
}

func NewSettingsHandler(database *db.Database) *SettingsHandler {
	return &SettingsHandler{database: database}
}

// GetSettings returns all settings with their metadata
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	all, err := h.database.GetAllSettings()
	if err != nil {
		jsonError(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	type SettingResponse struct {
		SettingDef
		Value string `json:"value"`
	}

	result := make([]SettingResponse, 0, len(settingsKeys))
	for _, def := range settingsKeys {
		result = append(result, SettingResponse{SettingDef: def, Value: all[def.Key]})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// UpdateSettings saves settings from the request body
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var updates map[string]string
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	allowed := make(map[string]bool)
	for _, def := range settingsKeys {
		allowed[def.Key] = true
	}

	for key, value := range updates {
		if !allowed[key] {
			continue
		}
		if err := validateSetting(key, value); err != "" {
			jsonError(w, err, http.StatusBadRequest)
			return
		}
		if err := h.database.SetSetting(key, value); err != nil {
			jsonError(w, "failed to save setting: "+key, http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// validateSetting rejects values that would silently disable translation
// defaults. Empty values clear a setting and are always allowed.
func validateSetting(key, value string) string {
	if value == "" {
		return ""
	}
	switch key {
	case "default_region":
		if !region.Known(value) {
			return "unknown region: " + value
		}
	case "default_target_language":
		if !lang.IsSupported(value) {
			return "unsupported language: " + value
		}
	}
	return ""
}
