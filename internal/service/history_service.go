// internal/service/history_service.go
package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/planwise/ibp-backend/internal/cache"
	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/planwise/ibp-backend/internal/repository"
	"github.com/planwise/ibp-backend/internal/storage"
	"github.com/planwise/ibp-backend/internal/upload"
	"github.com/rs/zerolog/log"
)

// HistoryService handles sales-history queries and batch uploads.
type HistoryService struct {
	repo     repository.SalesRepository
	cache    cache.PlanningCache
	archiver storage.Archiver
}

func NewHistoryService(repo repository.SalesRepository, planningCache cache.PlanningCache, archiver storage.Archiver) *HistoryService {
	if planningCache == nil {
		planningCache = cache.NewNoopPlanningCache()
	}
	if archiver == nil {
		archiver = storage.NoopArchiver{}
	}
	return &HistoryService{repo: repo, cache: planningCache, archiver: archiver}
}

func (s *HistoryService) List(ctx context.Context, productCode string) ([]domain.SalesRecord, error) {
	return s.repo.ListByProduct(ctx, productCode)
}

// Upload parses and stores one history batch. The batch is all-or-nothing: a
// malformed row or an unknown product code rejects every record. The raw file
// is archived best-effort when object storage is configured.
func (s *HistoryService) Upload(ctx context.Context, filename string, data []byte) (domain.UploadReceipt, error) {
	records, err := upload.Parse(filename, bytes.NewReader(data))
	if err != nil {
		return domain.UploadReceipt{}, err
	}

	if err := s.repo.AppendBatch(ctx, records); err != nil {
		return domain.UploadReceipt{}, err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("planning cache invalidation failed")
	}

	receipt := domain.UploadReceipt{
		BatchID:  uuid.NewString(),
		Filename: filename,
		Records:  len(records),
	}

	key := fmt.Sprintf("uploads/%s-%s", receipt.BatchID, filepath.Base(filename))
	archiveKey, err := s.archiver.Archive(ctx, key, contentTypeFor(filename), data)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("upload archive failed")
	} else {
		receipt.ArchiveKey = archiveKey
	}

	log.Info().
		Str("batch_id", receipt.BatchID).
		Str("filename", filename).
		Int("records", receipt.Records).
		Msg("sales history batch stored")

	return receipt, nil
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}
