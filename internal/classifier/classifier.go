package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/D4V1DYL/HydroSenseAPI/internal/apierr"
	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
)

// Vector maps a measured property name to its value. Keys may use the
// caller's underscore convention; NormalizeName converts them to the
// catalog's space-separated names before scoring.
type Vector map[string]float64

// Classifier turns a measurement vector into one of a closed set of label
// strings. Implementations are expected to be stateless from the caller's
// point of view; the ingestion path never retries a failed call.
type Classifier interface {
	Predict(ctx context.Context, vector Vector) (string, error)
}

// NormalizeName maps a payload field name to the catalog naming convention:
// underscores become spaces ("Total_Dissolved_Solids" -> "Total Dissolved
// Solids"). Catalog names pass through unchanged.
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), "_", " ")
}

// Normalize rewrites every key of the vector into the catalog convention.
func Normalize(vector Vector) Vector {
	out := make(Vector, len(vector))
	for name, value := range vector {
		out[NormalizeName(name)] = value
	}
	return out
}

// LinearModel scores a fixed-order feature vector with exported weights of a
// trained binary classifier. A positive decision value yields PositiveLabel.
type LinearModel struct {
	Features      []string  `json:"features"`
	Weights       []float64 `json:"weights"`
	Bias          float64   `json:"bias"`
	PositiveLabel string    `json:"positive_label"`
	NegativeLabel string    `json:"negative_label"`

	log *logger.Logger
}

func LoadLinearModel(path string, baseLog *logger.Logger) (*LinearModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file %q: %w", path, err)
	}
	var model LinearModel
	if err := json.Unmarshal(raw, &model); err != nil {
		return nil, fmt.Errorf("parse model file %q: %w", path, err)
	}
	if len(model.Features) == 0 {
		return nil, fmt.Errorf("model file %q declares no features", path)
	}
	if len(model.Features) != len(model.Weights) {
		return nil, fmt.Errorf("model file %q has %d features but %d weights", path, len(model.Features), len(model.Weights))
	}
	if model.PositiveLabel == "" || model.NegativeLabel == "" {
		return nil, fmt.Errorf("model file %q is missing label names", path)
	}
	model.log = baseLog.With("classifier", "LinearModel")
	return &model, nil
}

// Predict assembles the model's feature vector in its trained order and
// scores it. Every declared feature must be present after normalization;
// extra vector entries are ignored here (the ingestion path decides what to
// persist).
func (m *LinearModel) Predict(ctx context.Context, vector Vector) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized := Normalize(vector)
	score := m.Bias
	for i, feature := range m.Features {
		value, ok := normalized[NormalizeName(feature)]
		if !ok {
			return "", fmt.Errorf("%w: missing required feature %q", apierr.ErrInvalid, feature)
		}
		score += m.Weights[i] * value
	}
	label := m.NegativeLabel
	if score > 0 {
		label = m.PositiveLabel
	}
	m.log.Debug("Classified sample", "score", score, "label", label)
	return label, nil
}
