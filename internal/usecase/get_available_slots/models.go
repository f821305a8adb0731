package get_available_slots

import (
	"time"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	PackageID int64     // ID пакета обследования
	Date      time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком слотов
// Слоты идут строго в хронологическом порядке сетки расписания
// и никогда не пересортировываются по доступности
type Response struct {
	PackageID int64
	Date      time.Time
	Slots     []domain.AvailableSlot
}
