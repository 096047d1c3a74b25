package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Slug string // Slug scheduling-ссылки
}

// Response модель ответа с доступными слотами по дням
// Дни упорядочены по возрастанию даты; дни без слотов опущены
type Response struct {
	Slug                 string
	OwnerID              int64
	MeetingLengthMinutes int
	Days                 []DaySlots
}

// DaySlots доступные слоты одного дня
type DaySlots struct {
	Date  time.Time          // Дата (без времени, UTC)
	Slots []types.TimeString // Времена начала слотов в порядке возрастания
}
