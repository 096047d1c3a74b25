package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidLink is returned when a scheduling link violates its invariants
var ErrInvalidLink = errors.New("invalid scheduling link")

// CustomQuestion is a question the invitee answers when booking.
// Questions are ordered; ID is assigned per link, starting at 1
type CustomQuestion struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Required bool   `json:"required"`
	Type     string `json:"type"`
}

// SchedulingLink is a shareable booking configuration published by an owner
type SchedulingLink struct {
	ID                   int64
	OwnerID              int64
	Slug                 string
	Title                string
	MeetingLengthMinutes int
	BufferBeforeMinutes  int
	BufferAfterMinutes   int
	MaxUses              *int       // nil = unlimited
	ExpirationDate       *time.Time // nil = never expires
	MaxDaysAhead         int
	CustomQuestions      []CustomQuestion
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Validate checks link invariants at configuration time
func (l *SchedulingLink) Validate() error {
	if l.MeetingLengthMinutes < MinMeetingLengthMinutes || l.MeetingLengthMinutes > MaxMeetingLengthMinutes {
		return fmt.Errorf("%w: meeting length %d out of range [%d,%d] minutes",
			ErrInvalidLink, l.MeetingLengthMinutes, MinMeetingLengthMinutes, MaxMeetingLengthMinutes)
	}
	if l.BufferBeforeMinutes < 0 || l.BufferAfterMinutes < 0 {
		return fmt.Errorf("%w: buffers must not be negative", ErrInvalidLink)
	}
	if l.BufferBeforeMinutes > MaxBufferMinutes || l.BufferAfterMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: buffers must not exceed %d minutes", ErrInvalidLink, MaxBufferMinutes)
	}
	if l.MaxDaysAhead < MinMaxDaysAhead || l.MaxDaysAhead > MaxMaxDaysAhead {
		return fmt.Errorf("%w: max days ahead %d out of range [%d,%d]",
			ErrInvalidLink, l.MaxDaysAhead, MinMaxDaysAhead, MaxMaxDaysAhead)
	}
	if l.MaxUses != nil && *l.MaxUses < 1 {
		return fmt.Errorf("%w: max uses must be positive", ErrInvalidLink)
	}
	for _, q := range l.CustomQuestions {
		if q.Question == "" {
			return fmt.Errorf("%w: question text must not be empty", ErrInvalidLink)
		}
	}
	return nil
}

// Duration returns the meeting length as a time.Duration
func (l *SchedulingLink) Duration() time.Duration {
	return time.Duration(l.MeetingLengthMinutes) * time.Minute
}

// IsExpired returns true if the link has an expiration date in the past
func (l *SchedulingLink) IsExpired(now time.Time) bool {
	return l.ExpirationDate != nil && l.ExpirationDate.Before(now)
}

// IsExhausted returns true if the link has a usage limit and committedMeetings reached it
func (l *SchedulingLink) IsExhausted(committedMeetings int) bool {
	return l.MaxUses != nil && committedMeetings >= *l.MaxUses
}

// BufferBefore returns the buffer before a meeting as a time.Duration
func (l *SchedulingLink) BufferBefore() time.Duration {
	return time.Duration(l.BufferBeforeMinutes) * time.Minute
}

// BufferAfter returns the buffer after a meeting as a time.Duration
func (l *SchedulingLink) BufferAfter() time.Duration {
	return time.Duration(l.BufferAfterMinutes) * time.Minute
}
