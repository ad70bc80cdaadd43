package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Rohitdare/carbon/indices"
)

// handleSatelliteRetrieve proxies a scene query to the imagery collaborator
// and annotates the returned area-mean indices with categories.
func (a *App) handleSatelliteRetrieve(w http.ResponseWriter, r *http.Request) {
	var req sceneReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	scene, err := a.imagery.RetrieveScene(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	categories := make(map[string]string, len(scene.VegetationIndices))
	for name, v := range scene.VegetationIndices {
		categories[name] = indices.Categorize(name, v)
	}
	_ = json.NewEncoder(w).Encode(bson.M{
		"scene":      scene,
		"categories": categories,
	})
}

// handleSatelliteIndices computes vegetation indices and their statistics
// from raw per-pixel band grids.
func (a *App) handleSatelliteIndices(w http.ResponseWriter, r *http.Request) {
	var req bandsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if err := indices.ValidateBands(req.Bands); err != nil {
		if errors.Is(err, indices.ErrInvalidBands) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	grids := indices.CalculateAll(req.Bands)
	stats := indices.Statistics(grids)

	means := make(map[string]float64, len(stats))
	for name, s := range stats {
		means[name] = s.Mean
	}
	_ = json.NewEncoder(w).Encode(bson.M{
		"vegetation_indices": means,
		"statistics":         stats,
		"processed_at":       time.Now().UTC(),
	})
}

// handleSatelliteTrends fits linear trends over a time-ordered series of
// area-mean index values.
func (a *App) handleSatelliteTrends(w http.ResponseWriter, r *http.Request) {
	var req trendsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if len(req.Series) == 0 {
		http.Error(w, "series is required", http.StatusBadRequest)
		return
	}

	// Collect per-index series in observation order, skipping gaps.
	byIndex := map[string][]float64{}
	for _, point := range req.Series {
		for name, v := range point {
			byIndex[name] = append(byIndex[name], v)
		}
	}

	trends := make(map[string]indices.Trend, len(byIndex))
	for name, values := range byIndex {
		trends[name] = indices.LinearTrend(values)
	}
	_ = json.NewEncoder(w).Encode(trendsResp{
		Trends:     trends,
		DataPoints: len(req.Series),
	})
}
