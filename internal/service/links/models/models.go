package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// CreateLinkRequest запрос на создание scheduling-ссылки
type CreateLinkRequest struct {
	OwnerID              int64
	Title                string
	MeetingLengthMinutes int
	BufferBeforeMinutes  int
	BufferAfterMinutes   int
	MaxUses              *int
	ExpirationDate       *time.Time
	MaxDaysAhead         int
	CustomQuestions      []domain.CustomQuestion
}

// Response модели

// LinkResponse ответ с данными scheduling-ссылки
type LinkResponse struct {
	ID                   int64                   `json:"id"`
	OwnerID              int64                   `json:"ownerId"`
	Slug                 string                  `json:"slug"`
	Title                string                  `json:"title"`
	MeetingLengthMinutes int                     `json:"meetingLengthMinutes"`
	BufferBeforeMinutes  int                     `json:"bufferBeforeMinutes"`
	BufferAfterMinutes   int                     `json:"bufferAfterMinutes"`
	MaxUses              *int                    `json:"maxUses,omitempty"`
	UsesRemaining        *int                    `json:"usesRemaining,omitempty"`
	ExpirationDate       *time.Time              `json:"expirationDate,omitempty"`
	MaxDaysAhead         int                     `json:"maxDaysAhead"`
	CustomQuestions      []domain.CustomQuestion `json:"customQuestions"`
	CreatedAt            time.Time               `json:"createdAt"`
	UpdatedAt            time.Time               `json:"updatedAt"`
}

// LinkListResponse ответ со списком ссылок
type LinkListResponse struct {
	Links []LinkResponse `json:"links"`
}

// MeetingResponse ответ с данными встречи
type MeetingResponse struct {
	ID              int64            `json:"id"`
	LinkID          int64            `json:"linkId"`
	InviteeEmail    string           `json:"inviteeEmail"`
	LinkedInURL     *string          `json:"linkedinUrl,omitempty"`
	StartTime       time.Time        `json:"startTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Answers         map[int64]string `json:"answers,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// MeetingListResponse ответ со списком встреч ссылки
type MeetingListResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
}

// Методы конвертации

// FromDomainLink конвертирует domain модель в DTO
// usesRemaining считается от переданного количества встреч; nil used
// означает "не считали" - поле не заполняется
func FromDomainLink(l *domain.SchedulingLink, used *int) *LinkResponse {
	if l == nil {
		return nil
	}

	resp := &LinkResponse{
		ID:                   l.ID,
		OwnerID:              l.OwnerID,
		Slug:                 l.Slug,
		Title:                l.Title,
		MeetingLengthMinutes: l.MeetingLengthMinutes,
		BufferBeforeMinutes:  l.BufferBeforeMinutes,
		BufferAfterMinutes:   l.BufferAfterMinutes,
		MaxUses:              l.MaxUses,
		ExpirationDate:       l.ExpirationDate,
		MaxDaysAhead:         l.MaxDaysAhead,
		CustomQuestions:      l.CustomQuestions,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
	if l.MaxUses != nil && used != nil {
		remaining := *l.MaxUses - *used
		if remaining < 0 {
			remaining = 0
		}
		resp.UsesRemaining = &remaining
	}
	return resp
}

// FromDomainLinkList конвертирует список domain моделей в DTO
func FromDomainLinkList(links []*domain.SchedulingLink) *LinkListResponse {
	resp := &LinkListResponse{
		Links: make([]LinkResponse, 0, len(links)),
	}
	for _, link := range links {
		if linkResp := FromDomainLink(link, nil); linkResp != nil {
			resp.Links = append(resp.Links, *linkResp)
		}
	}
	return resp
}

// FromDomainMeetingList конвертирует список встреч в DTO
func FromDomainMeetingList(meetings []*domain.Meeting) *MeetingListResponse {
	resp := &MeetingListResponse{
		Meetings: make([]MeetingResponse, 0, len(meetings)),
	}
	for _, m := range meetings {
		resp.Meetings = append(resp.Meetings, MeetingResponse{
			ID:              m.ID,
			LinkID:          m.LinkID,
			InviteeEmail:    m.InviteeEmail,
			LinkedInURL:     m.LinkedInURL,
			StartTime:       m.StartTime,
			DurationMinutes: m.DurationMinutes,
			Answers:         m.Answers,
			CreatedAt:       m.CreatedAt,
		})
	}
	return resp
}

// ToDomainLink конвертирует CreateLinkRequest в domain модель
// Slug назначается сервисом, не запросом
func (r *CreateLinkRequest) ToDomainLink(slug string) *domain.SchedulingLink {
	questions := r.CustomQuestions
	if questions == nil {
		questions = []domain.CustomQuestion{}
	}
	return &domain.SchedulingLink{
		OwnerID:              r.OwnerID,
		Slug:                 slug,
		Title:                r.Title,
		MeetingLengthMinutes: r.MeetingLengthMinutes,
		BufferBeforeMinutes:  r.BufferBeforeMinutes,
		BufferAfterMinutes:   r.BufferAfterMinutes,
		MaxUses:              r.MaxUses,
		ExpirationDate:       r.ExpirationDate,
		MaxDaysAhead:         r.MaxDaysAhead,
		CustomQuestions:      questions,
	}
}
