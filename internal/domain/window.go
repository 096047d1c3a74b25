package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ErrInvalidWindow is returned when a weekly window violates its invariants
var ErrInvalidWindow = errors.New("invalid scheduling window")

// WeeklyWindow is a recurring weekly availability interval of an owner.
// Weekday numbering is 0 = Monday ... 6 = Sunday.
// Windows of one owner are independent: they may overlap and are never merged
type WeeklyWindow struct {
	ID        int64
	OwnerID   int64
	Weekday   int
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks window invariants at configuration time:
// weekday in [0,6], valid HH:MM bounds, start strictly before end
func (w *WeeklyWindow) Validate() error {
	if w.Weekday < 0 || w.Weekday > 6 {
		return fmt.Errorf("%w: weekday %d out of range [0,6]", ErrInvalidWindow, w.Weekday)
	}
	if err := w.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidWindow, err)
	}
	if err := w.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidWindow, err)
	}
	if !w.StartTime.IsBefore(w.EndTime) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidWindow, w.StartTime, w.EndTime)
	}
	return nil
}

// MatchesDate returns true if the window recurs on the weekday of date
func (w *WeeklyWindow) MatchesDate(date time.Time) bool {
	// time.Weekday has Sunday = 0, the window model has Monday = 0
	return (int(date.Weekday())+6)%7 == w.Weekday
}

// Materialize turns the window into an absolute UTC interval on the given date
func (w *WeeklyWindow) Materialize(date time.Time) Interval {
	return Interval{
		Start: w.StartTime.At(date, time.UTC),
		End:   w.EndTime.At(date, time.UTC),
	}
}
