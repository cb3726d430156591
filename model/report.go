package model

import "time"

// LayerOutcome records what happened to one layer of one template.
type LayerOutcome struct {
	Layer   string `json:"layer"`
	Written bool   `json:"written"`
	// Reason explains a skip: "empty" or "below_density".
	Reason string `json:"reason,omitempty"`
	Pixels int    `json:"pixels"`
	File   string `json:"file,omitempty"`
}

// TemplateResult is the per-template entry of a batch report. A template
// succeeds when its source loaded and segmentation completed, regardless of
// how many layers were accepted.
type TemplateResult struct {
	Template string         `json:"template"`
	OK       bool           `json:"ok"`
	Error    string         `json:"error,omitempty"`
	Layers   []LayerOutcome `json:"layers,omitempty"`
}

// BatchReport summarizes one pipeline run over the catalog.
type BatchReport struct {
	RunID     string           `json:"run_id"`
	StartedAt time.Time        `json:"started_at"`
	Duration  time.Duration    `json:"duration"`
	Processed int              `json:"processed"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Results   []TemplateResult `json:"results"`
}

// TemplateMasks lists the artifacts present on disk for one template,
// keyed by the four canonical layer names.
type TemplateMasks struct {
	Template string            `json:"template"`
	Masks    map[string]string `json:"masks"`
}

// ErrorResponse is the uniform error payload of the HTTP surface.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
