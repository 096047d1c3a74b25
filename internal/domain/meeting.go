package domain

import "time"

// Meeting is a committed booking created through a scheduling link.
// Meetings are append-only; the central invariant of the system is that
// no two meetings of one owner have overlapping intervals
type Meeting struct {
	ID              int64
	OwnerID         int64
	LinkID          int64
	InviteeEmail    string
	InviteeUserID   *int64 // nil for anonymous invitees
	LinkedInURL     *string
	StartTime       time.Time // UTC instant
	DurationMinutes int
	Answers         map[int64]string // question ID -> answer
	CreatedAt       time.Time
}

// Interval returns the half-open interval occupied by the meeting
func (m *Meeting) Interval() Interval {
	return Interval{
		Start: m.StartTime,
		End:   m.StartTime.Add(time.Duration(m.DurationMinutes) * time.Minute),
	}
}
