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

// AnalysisStorage implements the AnalysisStorage interface for Badger
type AnalysisStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewAnalysisStorage creates a new AnalysisStorage instance
func NewAnalysisStorage(db *BadgerDB, logger arbor.ILogger) interfaces.AnalysisStorage {
	return &AnalysisStorage{
		db:     db,
		logger: logger,
	}
}

// ReplaceAnalysis stores the analysis as the sole retained record. Any prior
// record is deleted first so the at-most-one-row invariant holds.
func (s *AnalysisStorage) ReplaceAnalysis(ctx context.Context, analysis *models.VideoAnalysisRecord) error {
	if analysis.ID == "" {
		analysis.ID = uuid.New().String()
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now()
	}

	if err := s.db.Store().DeleteMatching(&models.VideoAnalysisRecord{}, nil); err != nil {
		return fmt.Errorf("failed to delete prior analysis: %w", err)
	}

	if err := s.db.Store().Upsert(analysis.ID, analysis); err != nil {
		return fmt.Errorf("failed to store analysis: %w", err)
	}

	s.logger.Debug().Str("id", analysis.ID).Str("filename", analysis.Filename).Msg("Video analysis stored")
	return nil
}

func (s *AnalysisStorage) GetLatestAnalysis(ctx context.Context) (*models.VideoAnalysisRecord, error) {
	var analyses []models.VideoAnalysisRecord
	query := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse().Limit(1)
	if err := s.db.Store().Find(&analyses, query); err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	if len(analyses) == 0 {
		return nil, interfaces.ErrNotFound
	}
	return &analyses[0], nil
}

func (s *AnalysisStorage) CountAnalyses(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.VideoAnalysisRecord{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return int(count), nil
}
