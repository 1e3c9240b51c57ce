package dates

import (
	"time"

	chal "challengeTracker/internal/models/challenge"
)

const Layout = "2006-01-02"

// Format приводит дату к каноничному виду YYYY-MM-DD
func Format(t time.Time) string {
	return t.Format(Layout)
}

// ParseStored разбирает сохранённую дату.
// При пустом или битом значении возвращает текущую дату - хранилище само
// всегда пишет корректные даты, защита нужна только от внешних правок файла.
func ParseStored(value string) time.Time {
	if value == "" {
		return time.Now()
	}

	parsed, err := time.ParseInLocation(Layout, value, time.Local)
	if err != nil {
		return time.Now()
	}
	return parsed
}

// End считает дату окончания календарными днями, а не секундами
func End(start time.Time, durationDays int) time.Time {
	return start.AddDate(0, 0, durationDays)
}

// StatusFor - единое правило вычисления статуса.
// Используется при создании, обновлении и фоновой сверке.
func StatusFor(startDate string, durationDays int, now time.Time) chal.Status {
	end := End(ParseStored(startDate), durationDays)
	if !now.Before(end) {
		return chal.StatusCompleted
	}
	return chal.StatusActive
}

// Progress возвращает процент выполнения в диапазоне [0,100]
func Progress(startDate string, durationDays int, now time.Time) float64 {
	start := ParseStored(startDate)
	end := End(start, durationDays)

	if !now.Before(end) {
		return 100
	}
	if now.Before(start) {
		return 0
	}

	elapsed := float64(now.Sub(start))
	total := float64(end.Sub(start))
	progress := elapsed / total * 100

	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ElapsedDays перечисляет прошедшие календарные дни челленджа по возрастанию:
// от даты старта до min(сегодня, конец-1). Пустой список, если старт в будущем.
func ElapsedDays(startDate string, durationDays int, now time.Time) []string {
	start := startOfDay(ParseStored(startDate))
	today := startOfDay(now)

	days := []string{}
	for i := 0; i < durationDays; i++ {
		day := start.AddDate(0, 0, i)
		if day.After(today) {
			break
		}
		days = append(days, Format(day))
	}
	return days
}
