package models

import (
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

// Request модели

// CreateBlocksRequest запрос на массовую блокировку ячеек
// PackageID == nil блокирует ячейки для всех пакетов
type CreateBlocksRequest struct {
	Date      time.Time          `json:"date"`
	Times     []types.TimeString `json:"times"`
	PackageID *int64             `json:"packageId,omitempty"`
	Reason    *string            `json:"reason,omitempty"`
}

// ClearBlocksRequest запрос на снятие блокировок на дату
// PackageID == nil снимает только блокировки «все пакеты»
type ClearBlocksRequest struct {
	Date      time.Time `json:"date"`
	PackageID *int64    `json:"packageId,omitempty"`
}

// Response модели

// BlockResponse ответ с данными блокировки
type BlockResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // "2026-03-14"
	Time      string    `json:"time"` // "09:30"
	PackageID *int64    `json:"packageId,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateBlocksResponse ответ на массовую блокировку
// Skipped считает ячейки, уже закрытые блокировкой той же области
type CreateBlocksResponse struct {
	Blocks  []BlockResponse `json:"blocks"`
	Created int             `json:"created"`
	Skipped int             `json:"skipped"`
}

// ClearBlocksResponse ответ на снятие блокировок
type ClearBlocksResponse struct {
	Deleted int64 `json:"deleted"`
}

// Методы конвертации

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.BlockedSlot) *BlockResponse {
	if b == nil {
		return nil
	}

	resp := &BlockResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		Time:      b.Time.String(),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}

	if id, ok := b.Scope.PackageID(); ok {
		resp.PackageID = &id
	}

	return resp
}

// FromDomainBlockList конвертирует список domain моделей в DTO
func FromDomainBlockList(blocks []*domain.BlockedSlot) []BlockResponse {
	resp := make([]BlockResponse, 0, len(blocks))
	for _, b := range blocks {
		if br := FromDomainBlock(b); br != nil {
			resp = append(resp, *br)
		}
	}
	return resp
}

// ToDomainScope конвертирует опциональный packageId в область блокировки
func ToDomainScope(packageID *int64) domain.BlockScope {
	if packageID == nil {
		return domain.ScopeAllPackages()
	}
	return domain.ScopePackage(*packageID)
}
