package interfaces

import (
	"context"

	"github.com/ternarybob/forage/internal/models"
)

// ExtractService - interface for structured extraction via the LLM provider
type ExtractService interface {
	// ExtractFoodItems identifies food items in raw page text. It never
	// returns an error: configuration or remote failures are logged and an
	// empty slice is returned, since callers run in background batch context.
	ExtractFoodItems(ctx context.Context, pageText string) []models.FoodItem

	// AnalyzeVideo produces a weekly meal plan from raw video bytes.
	// Unlike text extraction this is a synchronous user-facing path, so
	// failures propagate to the caller.
	AnalyzeVideo(ctx context.Context, data []byte, contentType string) (*models.MealPlan, error)
}
