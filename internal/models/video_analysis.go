package models

import "time"

// VideoAnalysisRecord is a persisted meal-plan analysis. The store keeps at
// most one record: saving a new analysis replaces the previous one.
type VideoAnalysisRecord struct {
	ID          string    `json:"id" badgerhold:"key"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Prompt      string    `json:"prompt"`
	Analysis    string    `json:"analysis"` // Serialized MealPlan JSON
	CreatedAt   time.Time `json:"created_at"`
}
