package model

import "time"

// CategorySummary aggregates processed records for one category.
type CategorySummary struct {
	CategoryName  string  `json:"categoryName"`
	VideoCount    int     `json:"videoCount"`
	MeanAdDensity float64 `json:"meanAdDensity"`
	MeanAdRatio   float64 `json:"meanAdRatio"`
}

// PipelineSummary is the aggregate report for one pipeline run.
type PipelineSummary struct {
	RunID         string            `json:"runId"`
	VideoCount    int               `json:"videoCount"`
	MeanAdDensity float64           `json:"meanAdDensity"`
	MeanAdRatio   float64           `json:"meanAdRatio"`
	CategoryCount int               `json:"categoryCount"`
	Categories    []CategorySummary `json:"categories"`
	GeneratedAt   time.Time         `json:"generatedAt"`
}

// RunResponse is the API response for a triggered pipeline run.
type RunResponse struct {
	RunID      string          `json:"runId"`
	Source     string          `json:"source"`
	Dropped    int             `json:"dropped"`
	DurationMs int64           `json:"durationMs"`
	Summary    PipelineSummary `json:"summary"`
}
