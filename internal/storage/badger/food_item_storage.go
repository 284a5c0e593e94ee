package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/forage/internal/interfaces"
	"github.com/ternarybob/forage/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// FoodItemStorage implements the FoodItemStorage interface for Badger
type FoodItemStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewFoodItemStorage creates a new FoodItemStorage instance
func NewFoodItemStorage(db *BadgerDB, logger arbor.ILogger) interfaces.FoodItemStorage {
	return &FoodItemStorage{
		db:     db,
		logger: logger,
	}
}

func (s *FoodItemStorage) StoreItems(ctx context.Context, items []*models.FoodItemRecord) error {
	now := time.Now()
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		if err := s.db.Store().Upsert(item.ID, item); err != nil {
			return fmt.Errorf("failed to store food item: %w", err)
		}
	}

	s.logger.Debug().Int("count", len(items)).Msg("Food items stored")
	return nil
}

func (s *FoodItemStorage) GetAllItems(ctx context.Context) ([]*models.FoodItemRecord, error) {
	var items []models.FoodItemRecord
	if err := s.db.Store().Find(&items, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list food items: %w", err)
	}

	result := make([]*models.FoodItemRecord, len(items))
	for i := range items {
		result[i] = &items[i]
	}
	return result, nil
}

func (s *FoodItemStorage) CountItems(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.FoodItemRecord{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count food items: %w", err)
	}
	return int(count), nil
}

func (s *FoodItemStorage) ClearAll(ctx context.Context) error {
	if err := s.db.Store().DeleteMatching(&models.FoodItemRecord{}, nil); err != nil {
		return fmt.Errorf("failed to clear food items: %w", err)
	}
	s.logger.Debug().Msg("Food item store cleared")
	return nil
}
