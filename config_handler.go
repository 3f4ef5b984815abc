package main

import (
	"encoding/json"
	"log"
	"net/http"

	"longchen/config"
)

func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(config.GetConfig())
	}
}

// SaveConfigHandler persists the settings file. Rates left at zero fall
// back to the built-in defaults inside config.SaveConfig.
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			http.Error(w, "invalid config payload", http.StatusBadRequest)
			return
		}
		if newCfg.DefaultRateSale < 0 || newCfg.DefaultRateCost < 0 {
			http.Error(w, "exchange rates must not be negative", http.StatusBadRequest)
			return
		}
		if err := config.SaveConfig(newCfg); err != nil {
			log.Printf("Error saving config: %v", err)
			http.Error(w, "Failed to save config", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(config.GetConfig())
	}
}
