package service

import (
	"context"
	"fmt"
	"time"

	"challengeTracker/internal/dates"
	chal "challengeTracker/internal/models/challenge"
)

type DayCount struct {
	Date  string `json:"date"`
	Notes int    `json:"notes"`
}

type MoodBreakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

type Stats struct {
	Active      int           `json:"active"`
	Completed   int           `json:"completed"`
	Archived    int           `json:"archived"`
	TotalNotes  int           `json:"totalNotes"`
	WeeklyNotes []DayCount    `json:"weeklyNotes"`
	Moods       MoodBreakdown `json:"moods"`
}

// Stats собирает аналитику для страницы профиля: счётчики челленджей,
// активность заметок за последние 7 дней и разбивку по настроению
func (s *ChallengeService) Stats(ctx context.Context) (*Stats, error) {
	challenges, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение челленджей: %w", err)
	}

	stats := &Stats{}

	now := time.Now()
	week := make([]DayCount, 7)
	weekIndex := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		day := dates.Format(now.AddDate(0, 0, i-6))
		week[i] = DayCount{Date: day}
		weekIndex[day] = i
	}

	for _, c := range challenges {
		switch {
		case c.IsArchived:
			stats.Archived++
		case c.Status == chal.StatusCompleted:
			stats.Completed++
		default:
			stats.Active++
		}

		for _, note := range c.Notes {
			stats.TotalNotes++

			if i, ok := weekIndex[note.Date]; ok {
				week[i].Notes++
			}

			switch note.Mood {
			case chal.MoodHappy, chal.MoodStrong, chal.MoodIdea:
				stats.Moods.Positive++
			case chal.MoodNeutral:
				stats.Moods.Neutral++
			case chal.MoodSad:
				stats.Moods.Negative++
			}
		}
	}

	stats.WeeklyNotes = week
	return stats, nil
}
