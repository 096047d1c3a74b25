package create_meeting

import "time"

// Request запрос на создание встречи по scheduling-ссылке
type Request struct {
	Slug          string
	InviteeEmail  string
	InviteeUserID *int64
	LinkedInURL   *string
	StartTime     time.Time
	Answers       map[int64]string
}

// Response ответ с данными закоммиченной встречи
type Response struct {
	ID              int64
	OwnerID         int64
	LinkID          int64
	Slug            string
	Title           string
	InviteeEmail    string
	StartTime       time.Time
	DurationMinutes int
	Answers         map[int64]string
	CreatedAt       time.Time
}
