package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Rohitdare/carbon/carbon"
)

// EstimateRecord — one completed carbon estimation, persisted to the
// "estimates" collection so per-project history survives restarts.
type EstimateRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"      json:"id"`
	OwnerID        primitive.ObjectID `bson:"ownerId"            json:"ownerId"`
	ProjectID      string             `bson:"projectId"          json:"project_id"`
	EcosystemType  carbon.Ecosystem   `bson:"ecosystemType"      json:"ecosystem_type"`
	AreaHectares   float64            `bson:"areaHectares"       json:"area_hectares"`
	CarbonEstimate float64            `bson:"carbonEstimate"     json:"carbon_estimate"`
	Confidence     float64            `bson:"confidence"         json:"confidence"`
	ModelVersion   string             `bson:"modelVersion"       json:"model_version"`
	QualityScore   float64            `bson:"qualityScore"       json:"quality_score"`
	CreatedAt      time.Time          `bson:"createdAt"          json:"createdAt"`
}
