package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/forage/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// FoodItemStorage - interface for extracted food item persistence
type FoodItemStorage interface {
	// StoreItems persists a batch of records from one scraped page.
	StoreItems(ctx context.Context, items []*models.FoodItemRecord) error
	GetAllItems(ctx context.Context) ([]*models.FoodItemRecord, error)
	CountItems(ctx context.Context) (int, error)

	// ClearAll removes every stored item. Called at the start of each crawl
	// run so the store only ever holds results from the most recent run.
	ClearAll(ctx context.Context) error
}

// AnalysisStorage - interface for video analysis persistence.
// At most one record exists at any time.
type AnalysisStorage interface {
	// ReplaceAnalysis deletes any prior record and stores the new one.
	ReplaceAnalysis(ctx context.Context, analysis *models.VideoAnalysisRecord) error

	// GetLatestAnalysis returns the stored record, or ErrNotFound.
	GetLatestAnalysis(ctx context.Context) (*models.VideoAnalysisRecord, error)

	CountAnalyses(ctx context.Context) (int, error)
}

// StorageManager - interface for managing all storage backends
type StorageManager interface {
	FoodItemStorage() FoodItemStorage
	AnalysisStorage() AnalysisStorage
	Close() error
}
