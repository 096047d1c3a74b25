package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// dayWindows материализованные окна одного календарного дня
// Порядок окон повторяет порядок перечисления недельных окон
type dayWindows struct {
	date    time.Time
	windows []domain.Interval
}

// expandWindows материализует недельные окна в абсолютные UTC интервалы
// для каждого дня диапазона [rangeStart, rangeEnd] включительно
// Окна не сливаются, даже если пересекаются - дедупликация слотов
// происходит ниже, на уровне конкретных времён начала
func expandWindows(windows []*domain.WeeklyWindow, rangeStart, rangeEnd time.Time) []dayWindows {
	days := make([]dayWindows, 0)

	for date := dateOnly(rangeStart); !date.After(dateOnly(rangeEnd)); date = date.AddDate(0, 0, 1) {
		day := dayWindows{date: date}
		for _, window := range windows {
			if !window.MatchesDate(date) {
				continue
			}
			day.windows = append(day.windows, window.Materialize(date))
		}
		if len(day.windows) > 0 {
			days = append(days, day)
		}
	}

	return days
}

// generateWindowSlots дискретизирует окно на слоты фиксированной длины
// Слоты идут от начала окна с шагом duration (без выравнивания по часам);
// слот, не помещающийся в окно целиком, не эмитится
func generateWindowSlots(window domain.Interval, duration time.Duration) []time.Time {
	if duration <= 0 || window.IsEmpty() {
		return nil
	}

	var starts []time.Time
	for t := window.Start; !t.Add(duration).After(window.End); t = t.Add(duration) {
		starts = append(starts, t)
	}
	return starts
}

// collectDaySlots генерирует слоты всех окон дня с дедупликацией по точному
// времени начала: первое вхождение выигрывает, порядок окон стабилен
func collectDaySlots(windows []domain.Interval, duration time.Duration) []time.Time {
	seen := make(map[time.Time]struct{})
	slots := make([]time.Time, 0)

	for _, window := range windows {
		for _, start := range generateWindowSlots(window, duration) {
			if _, ok := seen[start]; ok {
				continue
			}
			seen[start] = struct{}{}
			slots = append(slots, start)
		}
	}

	return slots
}

// expandBusyIntervals расширяет занятые интервалы буферами ссылки:
// [busy.start - bufferAfter, busy.end + bufferBefore)
// Так встреча не начнётся сразу после чужого события (bufferAfter)
// и не закончится впритык перед ним (bufferBefore)
func expandBusyIntervals(busy []domain.Interval, bufferBefore, bufferAfter time.Duration) []domain.Interval {
	if bufferBefore == 0 && bufferAfter == 0 {
		return busy
	}

	expanded := make([]domain.Interval, len(busy))
	for i, interval := range busy {
		expanded[i] = interval.Expand(bufferAfter, bufferBefore)
	}
	return expanded
}

// filterSlots отбрасывает слоты, начинающиеся в прошлом, и слоты,
// пересекающиеся хотя бы с одним заблокированным интервалом
// Пересечение полуоткрытое: слот, заканчивающийся ровно в начале занятого
// интервала, доступен
func filterSlots(starts []time.Time, duration time.Duration, blocked []domain.Interval, now time.Time) []time.Time {
	available := make([]time.Time, 0, len(starts))

	for _, start := range starts {
		if start.Before(now) {
			continue
		}
		slot := domain.NewInterval(start, start.Add(duration))
		if slot.OverlapsAny(blocked) {
			continue
		}
		available = append(available, start)
	}

	return available
}

// meetingIntervals конвертирует встречи владельца в занятые интервалы
func meetingIntervals(meetings []*domain.Meeting) []domain.Interval {
	intervals := make([]domain.Interval, len(meetings))
	for i, m := range meetings {
		intervals[i] = m.Interval()
	}
	return intervals
}

// dateOnly обнуляет время, оставляя только дату (UTC)
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
