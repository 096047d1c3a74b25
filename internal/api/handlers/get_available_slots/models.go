package get_available_slots

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
// Слоты сгруппированы по дате; дни без доступных слотов опускаются
type AvailableSlotsResponse struct {
	Slug                 string              `json:"slug"`
	MeetingLengthMinutes int                 `json:"meetingLengthMinutes"`
	AvailableSlots       map[string][]string `json:"availableSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make(map[string][]string, len(resp.Days))
	for _, day := range resp.Days {
		times := make([]string, len(day.Slots))
		for i, slot := range day.Slots {
			times[i] = slot.String()
		}
		slots[day.Date.Format(domain.DateFormat)] = times
	}

	return &AvailableSlotsResponse{
		Slug:                 resp.Slug,
		MeetingLengthMinutes: resp.MeetingLengthMinutes,
		AvailableSlots:       slots,
	}
}
