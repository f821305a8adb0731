package domain

import (
	"time"

	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

// BlockScope область действия блокировки слота
// Тегированный вариант вместо «голого» nullable package_id:
// либо все пакеты, либо один конкретный
type BlockScope struct {
	packageID *int64
}

// ScopeAllPackages блокировка действует на все пакеты
func ScopeAllPackages() BlockScope {
	return BlockScope{}
}

// ScopePackage блокировка действует только на указанный пакет
func ScopePackage(packageID int64) BlockScope {
	return BlockScope{packageID: &packageID}
}

// IsAllPackages returns true if the block applies to every package
func (s BlockScope) IsAllPackages() bool {
	return s.packageID == nil
}

// PackageID returns the scoped package id, if any
func (s BlockScope) PackageID() (int64, bool) {
	if s.packageID == nil {
		return 0, false
	}
	return *s.packageID, true
}

// AppliesTo returns true if the block affects the given package
func (s BlockScope) AppliesTo(packageID int64) bool {
	return s.packageID == nil || *s.packageID == packageID
}

// BlockedSlot административная блокировка ячейки расписания
// Перекрывает доступность независимо от фактической занятости:
// заблокированная ячейка сообщает ноль свободных мест
type BlockedSlot struct {
	ID        int64
	Date      time.Time // дата (время обнулено)
	Time      types.TimeString
	Scope     BlockScope
	Reason    *string
	CreatedAt time.Time
}

// Matches returns true if the block covers the given cell for the given package
func (b *BlockedSlot) Matches(packageID int64, date time.Time, slot types.TimeString) bool {
	return isSameDay(b.Date, date) && b.Time == slot && b.Scope.AppliesTo(packageID)
}

// IsCellBlocked проверяет, закрыта ли ячейка хотя бы одной блокировкой
func IsCellBlocked(blocks []*BlockedSlot, packageID int64, date time.Time, slot types.TimeString) bool {
	for _, b := range blocks {
		if b.Matches(packageID, date, slot) {
			return true
		}
	}
	return false
}
