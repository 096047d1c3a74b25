package create_link

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/links/models"
)

// CustomQuestionRequest вопрос приглашённому в HTTP запросе
// ID назначается сервером по порядку следования
type CustomQuestionRequest struct {
	Question string `json:"question"`
	Required bool   `json:"required"`
	Type     string `json:"type"`
}

// CreateLinkRequest HTTP request model
type CreateLinkRequest struct {
	Title                string                  `json:"title"`
	MeetingLengthMinutes int                     `json:"meetingLengthMinutes"`
	BufferBeforeMinutes  int                     `json:"bufferBeforeMinutes"`
	BufferAfterMinutes   int                     `json:"bufferAfterMinutes"`
	MaxUses              *int                    `json:"maxUses,omitempty"`
	ExpirationDate       *string                 `json:"expirationDate,omitempty"` // RFC3339
	MaxDaysAhead         int                     `json:"maxDaysAhead"`
	CustomQuestions      []CustomQuestionRequest `json:"customQuestions,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateLinkRequest) ToServiceRequest(ownerID int64) (*models.CreateLinkRequest, error) {
	var expiration *time.Time
	if r.ExpirationDate != nil {
		parsed, err := time.Parse(time.RFC3339, *r.ExpirationDate)
		if err != nil {
			return nil, err
		}
		utc := parsed.UTC()
		expiration = &utc
	}

	questions := make([]domain.CustomQuestion, len(r.CustomQuestions))
	for i, q := range r.CustomQuestions {
		questions[i] = domain.CustomQuestion{
			Question: q.Question,
			Required: q.Required,
			Type:     q.Type,
		}
	}

	return &models.CreateLinkRequest{
		OwnerID:              ownerID,
		Title:                r.Title,
		MeetingLengthMinutes: r.MeetingLengthMinutes,
		BufferBeforeMinutes:  r.BufferBeforeMinutes,
		BufferAfterMinutes:   r.BufferAfterMinutes,
		MaxUses:              r.MaxUses,
		ExpirationDate:       expiration,
		MaxDaysAhead:         r.MaxDaysAhead,
		CustomQuestions:      questions,
	}, nil
}
