package service

import (
	"time"

	"challengeTracker/internal/dates"
	chal "challengeTracker/internal/models/challenge"
)

// ChallengeOption - функция частичного обновления челленджа,
// хендлер собирает список опций из переданных полей запроса
type ChallengeOption func(*chal.Challenge)

func WithTitle(title string) ChallengeOption {
	return func(c *chal.Challenge) {
		c.Title = title
	}
}

func WithDurationDays(days int) ChallengeOption {
	return func(c *chal.Challenge) {
		c.DurationDays = days
	}
}

func WithStartDate(start time.Time) ChallengeOption {
	return func(c *chal.Challenge) {
		c.StartDate = dates.Format(start)
	}
}

type NoteOption func(*chal.Note)

func WithNoteMood(mood chal.Mood) NoteOption {
	return func(n *chal.Note) {
		n.Mood = mood
	}
}

func WithNoteText(text string) NoteOption {
	return func(n *chal.Note) {
		n.Text = text
	}
}
