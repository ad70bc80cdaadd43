package carbon

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Artifact file names inside the model directory.
const (
	weightsFile  = "model.json"
	scalerFile   = "scaler.json"
	metadataFile = "metadata.json"
)

type weightsDoc struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

type metadataDoc struct {
	FeatureColumns []string       `json:"feature_columns"`
	EcosystemTypes map[string]int `json:"ecosystem_types"`
	ModelVersion   string         `json:"model_version"`
	CreatedAt      string         `json:"created_at"`
}

// Save persists the trained model as three named parts (regression weights,
// scaler, metadata) under dir. Each part is written to a temp file and
// renamed into place, so readers never observe a half-written part.
func (m *Model) Save(dir string) error {
	if !m.trained {
		return fmt.Errorf("%w: no trained model to save", ErrPersistence)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	ecos := make(map[string]int, len(EcosystemEncoding))
	for k, v := range EcosystemEncoding {
		ecos[string(k)] = v
	}
	meta := metadataDoc{
		FeatureColumns: m.columns,
		EcosystemTypes: ecos,
		ModelVersion:   m.version,
		CreatedAt:      m.createdAt.Format(time.RFC3339),
	}

	parts := []struct {
		name string
		doc  any
	}{
		{weightsFile, weightsDoc{Weights: m.weights, Bias: m.bias}},
		{scalerFile, m.scaler},
		{metadataFile, meta},
	}
	for _, p := range parts {
		if err := writeJSONAtomic(filepath.Join(dir, p.name), p.doc); err != nil {
			return fmt.Errorf("%w: write %s: %v", ErrPersistence, p.name, err)
		}
	}
	return nil
}

// Load restores the full artifact from dir. It fails when any part is
// missing or when the recorded feature-column order does not match the
// assembler's expected order.
func (m *Model) Load(dir string) error {
	var wd weightsDoc
	if err := readJSON(filepath.Join(dir, weightsFile), &wd); err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrPersistence, weightsFile, err)
	}
	var sc Scaler
	if err := readJSON(filepath.Join(dir, scalerFile), &sc); err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrPersistence, scalerFile, err)
	}
	var meta metadataDoc
	if err := readJSON(filepath.Join(dir, metadataFile), &meta); err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrPersistence, metadataFile, err)
	}

	if len(meta.FeatureColumns) != len(FeatureColumns) {
		return fmt.Errorf("%w: artifact has %d feature columns, expected %d",
			ErrPersistence, len(meta.FeatureColumns), len(FeatureColumns))
	}
	for i, c := range meta.FeatureColumns {
		if c != FeatureColumns[i] {
			return fmt.Errorf("%w: feature column %d is %q, expected %q",
				ErrPersistence, i, c, FeatureColumns[i])
		}
	}
	if len(wd.Weights) != len(FeatureColumns) {
		return fmt.Errorf("%w: artifact has %d weights, expected %d",
			ErrPersistence, len(wd.Weights), len(FeatureColumns))
	}
	if len(sc.Mean) != len(FeatureColumns) || len(sc.Scale) != len(FeatureColumns) {
		return fmt.Errorf("%w: scaler shape does not match feature columns", ErrPersistence)
	}

	created, err := time.Parse(time.RFC3339, meta.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: bad created_at %q", ErrPersistence, meta.CreatedAt)
	}

	m.weights = wd.Weights
	m.bias = wd.Bias
	m.scaler = &sc
	m.columns = meta.FeatureColumns
	m.version = meta.ModelVersion
	m.createdAt = created
	m.trained = true
	return nil
}

// ArtifactExists reports whether all three artifact parts are present.
func ArtifactExists(dir string) bool {
	for _, name := range []string{weightsFile, scalerFile, metadataFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

func writeJSONAtomic(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
