// Package types contains common types used across the application
package types

// ValuationRequest is one (rank, position) query. Model is optional; the
// service default applies when empty.
type ValuationRequest struct {
	Rank     int    `json:"rank" yaml:"rank"`
	Position string `json:"position" yaml:"position"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
}

// TierInfo describes one rank band of a model.
type TierInfo struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Min   int    `json:"min" yaml:"min"`
	Max   int    `json:"max" yaml:"max"`
}

// ModelInfo describes a selectable model version.
type ModelInfo struct {
	Version     string     `json:"version" yaml:"version"`
	Description string     `json:"description" yaml:"description"`
	Projector   string     `json:"projector" yaml:"projector"`
	Probability string     `json:"probability" yaml:"probability"`
	Source      string     `json:"source" yaml:"source"`
	Default     bool       `json:"default" yaml:"default"`
	Tiers       []TierInfo `json:"tiers" yaml:"tiers"`
}
