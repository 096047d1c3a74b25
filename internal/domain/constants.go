package domain

// Business validation constants
const (
	MinMeetingLengthMinutes = 1
	MaxMeetingLengthMinutes = 480 // 8 hours
	MaxBufferMinutes        = 240
	MinMaxDaysAhead         = 1
	MaxMaxDaysAhead         = 365
	DefaultMaxDaysAhead     = 30
	MaxQuestionsPerLink     = 20
	SlugLength              = 8
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
