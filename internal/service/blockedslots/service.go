package blockedslots

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	blockRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/blockedslot"
	"github.com/avdeew/HCC-ReservationService/internal/service/blockedslots/models"
	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

// Service сервис для работы с административными блокировками слотов
type Service struct {
	blockRepo BlockedSlotRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(blockRepo BlockedSlotRepository, logger Logger) *Service {
	return &Service{
		blockRepo: blockRepo,
		logger:    logger,
	}
}

// CreateBulk блокирует набор ячеек на дату
//
// Операция идемпотентна: ячейки, уже закрытые блокировкой той же
// области, пропускаются, повторный вызов не плодит дубликатов
func (s *Service) CreateBulk(ctx context.Context, req *models.CreateBlocksRequest) (*models.CreateBlocksResponse, error) {
	s.logger.Info("CreateBulk: blocking %d slots on %s, packageID=%v",
		len(req.Times), req.Date.Format(domain.DateFormat), req.PackageID)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("CreateBulk: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	scope := models.ToDomainScope(req.PackageID)

	existing, err := s.blockRepo.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("CreateBulk: failed to list existing blocks: %v", err)
		return nil, fmt.Errorf("%w: CreateBulk - repository error: %v", ErrInternal, err)
	}

	toCreate := make([]*domain.BlockedSlot, 0, len(req.Times))
	skipped := 0
	for _, t := range req.Times {
		if hasBlockWithScope(existing, t, scope) {
			skipped++
			continue
		}
		toCreate = append(toCreate, &domain.BlockedSlot{
			Date:   date,
			Time:   t,
			Scope:  scope,
			Reason: req.Reason,
		})
	}

	if len(toCreate) == 0 {
		s.logger.Info("CreateBulk: all %d slots already blocked on %s", skipped, date.Format(domain.DateFormat))
		return &models.CreateBlocksResponse{
			Blocks:  []models.BlockResponse{},
			Created: 0,
			Skipped: skipped,
		}, nil
	}

	created, err := s.blockRepo.CreateBatch(ctx, toCreate)
	if err != nil {
		s.logger.Error("CreateBulk: failed to create blocks: %v", err)
		return nil, fmt.Errorf("%w: CreateBulk - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBulk: created %d blocks, skipped %d on %s",
		len(created), skipped, date.Format(domain.DateFormat))

	return &models.CreateBlocksResponse{
		Blocks:  models.FromDomainBlockList(created),
		Created: len(created),
		Skipped: skipped,
	}, nil
}

// Delete снимает одну блокировку по ID
func (s *Service) Delete(ctx context.Context, blockID int64) error {
	s.logger.Info("Delete: deleting block id=%d", blockID)

	if err := s.blockRepo.Delete(ctx, blockID); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("Delete: block id=%d not found", blockID)
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted block id=%d", blockID)
	return nil
}

// ClearByDate снимает блокировки на дату
// PackageID сужает снятие до блокировок конкретного пакета
func (s *Service) ClearByDate(ctx context.Context, req *models.ClearBlocksRequest) (*models.ClearBlocksResponse, error) {
	s.logger.Info("ClearByDate: clearing blocks on %s, packageID=%v",
		req.Date.Format(domain.DateFormat), req.PackageID)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	deleted, err := s.blockRepo.DeleteByDate(ctx, domain.DateOnly(req.Date), req.PackageID)
	if err != nil {
		s.logger.Error("ClearByDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: ClearByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ClearByDate: deleted %d blocks on %s", deleted, req.Date.Format(domain.DateFormat))
	return &models.ClearBlocksResponse{Deleted: deleted}, nil
}

// validateCreateRequest валидирует запрос массовой блокировки
// Каждая метка обязана входить в сетку расписания
func validateCreateRequest(req *models.CreateBlocksRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if len(req.Times) == 0 {
		return fmt.Errorf("%w: times must not be empty", ErrInvalidInput)
	}
	for _, t := range req.Times {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time %q", ErrInvalidInput, t)
		}
		if !domain.InGrid(t) {
			return fmt.Errorf("%w: time %q is outside the schedule grid", ErrInvalidInput, t)
		}
	}
	if req.PackageID != nil && *req.PackageID <= 0 {
		return fmt.Errorf("%w: packageId must be positive", ErrInvalidInput)
	}
	return nil
}

// hasBlockWithScope проверяет наличие блокировки той же ячейки и области
func hasBlockWithScope(blocks []*domain.BlockedSlot, t types.TimeString, scope domain.BlockScope) bool {
	for _, b := range blocks {
		if b.Time != t {
			continue
		}
		if b.Scope.IsAllPackages() != scope.IsAllPackages() {
			continue
		}
		if existingID, ok := b.Scope.PackageID(); ok {
			if wantID, _ := scope.PackageID(); existingID != wantID {
				continue
			}
		}
		return true
	}
	return false
}
