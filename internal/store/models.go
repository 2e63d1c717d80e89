package store

import (
	"time"

	"github.com/google/uuid"
)

// Run records one completed analysis run.
type Run struct {
	ID          string    `json:"id" db:"id"`
	DatasetPath string    `json:"dataset_path" db:"dataset_path"`
	Scenarios   int       `json:"scenarios" db:"scenarios"`
	Excluded    int       `json:"excluded" db:"excluded"`
	Pairs       int       `json:"pairs" db:"pairs"`
	Dropped     int       `json:"dropped" db:"dropped"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// RunCategory is one per-category ratio summary row of a run.
type RunCategory struct {
	RunID    string  `json:"run_id" db:"run_id"`
	Category string  `json:"category" db:"category"`
	N        int     `json:"n" db:"n"`
	Median   float64 `json:"median" db:"median"`
	Q25      float64 `json:"q25" db:"q25"`
	Q75      float64 `json:"q75" db:"q75"`
}

// NewRun creates a run record with a generated ID.
func NewRun(datasetPath string, scenarios, excluded, pairs, dropped int) *Run {
	return &Run{
		ID:          uuid.New().String(),
		DatasetPath: datasetPath,
		Scenarios:   scenarios,
		Excluded:    excluded,
		Pairs:       pairs,
		Dropped:     dropped,
		CreatedAt:   time.Now(),
	}
}
