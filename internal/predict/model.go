package predict

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultModelPath is where the server looks for a trained model.
const DefaultModelPath = "models/simple_win_predictor.json"

// ErrInvalidModel is returned when a saved model does not match the feature set.
var ErrInvalidModel = errors.New("invalid model")

// Model is a fitted logistic regression. Weights[0] is the bias.
type Model struct {
	Features   []string   `json:"features"`
	Weights    []float64  `json:"weights"`
	TrainedAt  time.Time  `json:"trainedAt"`
	Evaluation Evaluation `json:"evaluation"`
}

// Predict returns the win probability for f.
func (m *Model) Predict(f Features) float64 {
	return sigmoid(dot(m.Weights, f.vector()))
}

// Save writes the model as JSON, replacing any existing file atomically.
func (m *Model) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return os.Rename(tmp, path)
}

// Load reads a model saved by Save.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	if len(m.Weights) != len(FeatureNames)+1 {
		return nil, fmt.Errorf("%w: expected %d weights, got %d", ErrInvalidModel, len(FeatureNames)+1, len(m.Weights))
	}
	return &m, nil
}
