package challenge

import (
	"github.com/google/uuid"
)

type Challenge struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	StartDate    string    `json:"startDate" db:"start_date"`
	DurationDays int       `json:"durationDays" db:"duration_days"`
	Status       Status    `json:"status" db:"status"`
	IsArchived   bool      `json:"isArchived" db:"is_archived"`
	Notes        []Note    `json:"notes" db:"notes"`
}

type Note struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	Mood      Mood      `json:"mood"`
	Text      string    `json:"text"`
	CreatedAt int64     `json:"createdAt"`
	UpdatedAt *int64    `json:"updatedAt,omitempty"`
}

type Status string
type Mood string

const StatusActive Status = "active"
const StatusCompleted Status = "completed"

const MoodHappy Mood = "😊"
const MoodStrong Mood = "💪"
const MoodIdea Mood = "💡"
const MoodNeutral Mood = "😐"
const MoodSad Mood = "😢"

var Moods = []Mood{MoodHappy, MoodStrong, MoodIdea, MoodNeutral, MoodSad}

func ValidMood(m Mood) bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// Clone возвращает независимую копию челленджа вместе с заметками
func (c *Challenge) Clone() *Challenge {
	copied := *c
	copied.Notes = make([]Note, len(c.Notes))
	copy(copied.Notes, c.Notes)
	return &copied
}
