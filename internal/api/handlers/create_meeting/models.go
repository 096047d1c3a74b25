package create_meeting

import (
	"time"

	createMeeting "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_meeting"
)

// CreateMeetingRequest HTTP request model
// StartTime в RFC3339; ответы сгруппированы по ID вопроса ссылки
type CreateMeetingRequest struct {
	InviteeEmail  string           `json:"inviteeEmail"`
	InviteeUserID *int64           `json:"inviteeUserId,omitempty"`
	LinkedInURL   *string          `json:"linkedinUrl,omitempty"`
	StartTime     string           `json:"startTime"` // "2026-01-05T10:00:00Z"
	Answers       map[int64]string `json:"answers,omitempty"`
}

// MeetingResponse HTTP response model
type MeetingResponse struct {
	ID              int64            `json:"id"`
	Slug            string           `json:"slug"`
	Title           string           `json:"title"`
	InviteeEmail    string           `json:"inviteeEmail"`
	StartTime       string           `json:"startTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Answers         map[int64]string `json:"answers,omitempty"`
	CreatedAt       string           `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateMeetingRequest) ToUseCaseRequest(slug string) (*createMeeting.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createMeeting.Request{
		Slug:          slug,
		InviteeEmail:  r.InviteeEmail,
		InviteeUserID: r.InviteeUserID,
		LinkedInURL:   r.LinkedInURL,
		StartTime:     startTime.UTC(),
		Answers:       r.Answers,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createMeeting.Response) *MeetingResponse {
	return &MeetingResponse{
		ID:              resp.ID,
		Slug:            resp.Slug,
		Title:           resp.Title,
		InviteeEmail:    resp.InviteeEmail,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Answers:         resp.Answers,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
