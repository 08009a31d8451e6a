package classifier

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/D4V1DYL/HydroSenseAPI/internal/apierr"
	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
)

func writeModel(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write model file: %v", err)
	}
	return path
}

func TestNormalizeName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Total_Dissolved_Solids", "Total Dissolved Solids"},
		{"pH", "pH"},
		{"  Iron ", "Iron"},
		{"Odor", "Odor"},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q): want=%q got=%q", c.in, c.want, got)
		}
	}
}

func TestLoadLinearModel(t *testing.T) {
	path := writeModel(t, `{
		"features": ["pH", "Iron"],
		"weights": [0.5, -2.0],
		"bias": 0.1,
		"positive_label": "clean",
		"negative_label": "dirty"
	}`)
	model, err := LoadLinearModel(path, logger.Nop())
	require.NoError(t, err)
	require.Equal(t, []string{"pH", "Iron"}, model.Features)
	require.Equal(t, "clean", model.PositiveLabel)
}

func TestLoadLinearModelRejectsBadFiles(t *testing.T) {
	log := logger.Nop()

	_, err := LoadLinearModel(filepath.Join(t.TempDir(), "missing.json"), log)
	require.Error(t, err)

	_, err = LoadLinearModel(writeModel(t, `{not json`), log)
	require.Error(t, err)

	_, err = LoadLinearModel(writeModel(t, `{
		"features": ["pH", "Iron"],
		"weights": [0.5],
		"bias": 0,
		"positive_label": "clean",
		"negative_label": "dirty"
	}`), log)
	require.Error(t, err, "feature/weight length mismatch must fail")

	_, err = LoadLinearModel(writeModel(t, `{
		"features": ["pH"],
		"weights": [0.5],
		"bias": 0,
		"positive_label": "",
		"negative_label": "dirty"
	}`), log)
	require.Error(t, err, "empty label names must fail")
}

func TestPredictLabelsBySign(t *testing.T) {
	model := &LinearModel{
		Features:      []string{"pH", "Iron"},
		Weights:       []float64{1.0, -10.0},
		Bias:          -5.0,
		PositiveLabel: "clean",
		NegativeLabel: "dirty",
		log:           logger.Nop(),
	}

	label, err := model.Predict(context.Background(), Vector{"pH": 7.0, "Iron": 0.01})
	require.NoError(t, err)
	require.Equal(t, "clean", label)

	label, err = model.Predict(context.Background(), Vector{"pH": 7.0, "Iron": 5.0})
	require.NoError(t, err)
	require.Equal(t, "dirty", label)
}

func TestPredictNormalizesUnderscoredKeys(t *testing.T) {
	model := &LinearModel{
		Features:      []string{"Total Dissolved Solids"},
		Weights:       []float64{-1.0},
		Bias:          100.0,
		PositiveLabel: "clean",
		NegativeLabel: "dirty",
		log:           logger.Nop(),
	}
	label, err := model.Predict(context.Background(), Vector{"Total_Dissolved_Solids": 50.0})
	require.NoError(t, err)
	require.Equal(t, "clean", label)
}

func TestPredictMissingFeature(t *testing.T) {
	model := &LinearModel{
		Features:      []string{"pH", "Iron"},
		Weights:       []float64{1.0, 1.0},
		PositiveLabel: "clean",
		NegativeLabel: "dirty",
		log:           logger.Nop(),
	}
	_, err := model.Predict(context.Background(), Vector{"pH": 7.0})
	require.ErrorIs(t, err, apierr.ErrInvalid)
}

func TestPredictHonorsCancelledContext(t *testing.T) {
	model := &LinearModel{
		Features:      []string{"pH"},
		Weights:       []float64{1.0},
		PositiveLabel: "clean",
		NegativeLabel: "dirty",
		log:           logger.Nop(),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := model.Predict(ctx, Vector{"pH": 7.0})
	require.ErrorIs(t, err, context.Canceled)
}
