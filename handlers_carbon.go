package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rohitdare/carbon/carbon"
	"github.com/Rohitdare/carbon/models"
)

// writeEstimationErr maps pipeline errors onto HTTP statuses.
func writeEstimationErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, carbon.ErrModelNotReady):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, carbon.ErrBadData):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleEstimate runs one carbon sequestration estimate. When a scene
// request is supplied without explicit index values, the imagery
// collaborator is queried first; its failure degrades to defaults instead
// of failing the estimate.
func (a *App) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	resp, err := a.estimate(r.Context(), req, mustUserID(r))
	if err != nil {
		writeEstimationErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (a *App) estimate(ctx context.Context, req estimateReq, owner primitive.ObjectID) (*estimateResp, error) {
	var sceneIndices map[string]float64
	if req.SatelliteScene != nil && req.SatelliteData == nil {
		scene, err := a.imagery.RetrieveScene(ctx, *req.SatelliteScene)
		if err != nil {
			log.Printf("imagery retrieval failed, continuing with defaults: %v", err)
		} else {
			req.SatelliteData = scene.satelliteInputs()
			sceneIndices = scene.VegetationIndices
		}
	}

	in := req.input()
	result, err := a.estimator.Predict(in)
	if err != nil {
		return nil, err
	}

	a.recordEstimate(ctx, owner, in, result)

	recs := []string{}
	if result.Analysis != nil {
		recs = result.Analysis.Recommendations
	}
	return &estimateResp{
		EstimationResult: result,
		SatelliteData:    sceneIndices,
		Recommendations:  recs,
	}, nil
}

// recordEstimate persists the estimate for project history. Failures are
// logged, not surfaced: history is best-effort.
func (a *App) recordEstimate(ctx context.Context, owner primitive.ObjectID, in carbon.EstimationInput, result carbon.EstimationResult) {
	if in.Project == nil || in.Project.ProjectID == "" {
		return
	}
	rec := models.EstimateRecord{
		OwnerID:        owner,
		ProjectID:      in.Project.ProjectID,
		EcosystemType:  in.Project.EcosystemType,
		CarbonEstimate: result.CarbonEstimate,
		Confidence:     result.Confidence,
		ModelVersion:   result.ModelVersion,
		CreatedAt:      time.Now().UTC(),
	}
	if in.Project.AreaHectares != nil {
		rec.AreaHectares = *in.Project.AreaHectares
	}
	if result.Analysis != nil {
		rec.QualityScore = result.Analysis.DataQuality.Score
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := a.estimates.InsertOne(ctx, &rec); err != nil {
		log.Printf("estimate history insert failed: %v", err)
	}
}

// handleEstimateHistory returns persisted estimates for a project, newest
// first.
func (a *App) handleEstimateHistory(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	cur, err := a.estimates.Find(ctx,
		bson.M{"projectId": projectID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(100),
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	out := []models.EstimateRecord{}
	if err := cur.All(ctx, &out); err != nil {
		http.Error(w, "decode error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(bson.M{
		"project_id":      projectID,
		"estimates":       out,
		"total_estimates": len(out),
	})
}

// handleEstimateBatch processes several estimates in one call; per-item
// failures do not abort the batch.
func (a *App) handleEstimateBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []estimateReq
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	resp := batchEstimateResp{TotalRequests: len(reqs)}
	for _, req := range reqs {
		item := batchItemResult{}
		if req.ProjectData != nil {
			item.ProjectID = req.ProjectData.ProjectID
		}
		result, err := a.estimate(r.Context(), req, mustUserID(r))
		if err != nil {
			item.Status = "error"
			item.Error = err.Error()
			resp.Failed++
		} else {
			item.Status = "success"
			item.Result = result
			resp.Successful++
		}
		resp.Results = append(resp.Results, item)
	}
	_ = json.NewEncoder(w).Encode(resp)
}
