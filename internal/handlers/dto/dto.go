package dto

import (
	"time"

	"challengeTracker/internal/dates"
	chal "challengeTracker/internal/models/challenge"

	"github.com/google/uuid"
)

type CreateChallengeRequest struct {
	Title        string `json:"title"`
	DurationDays int    `json:"durationDays"`
	StartDate    string `json:"startDate"`
}

type UpdateChallengeRequest struct {
	Title        *string `json:"title,omitempty"`
	DurationDays *int    `json:"durationDays,omitempty"`
	StartDate    *string `json:"startDate,omitempty"`
}

type CreateNoteRequest struct {
	Date string `json:"date"`
	Mood string `json:"mood"`
	Text string `json:"text"`
}

type UpdateNoteRequest struct {
	Mood *string `json:"mood,omitempty"`
	Text *string `json:"text,omitempty"`
}

type NoteResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	Mood      string    `json:"mood"`
	Text      string    `json:"text"`
	CreatedAt int64     `json:"createdAt"`
	UpdatedAt *int64    `json:"updatedAt,omitempty"`
}

type ChallengeResponse struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	StartDate    string         `json:"startDate"`
	DurationDays int            `json:"durationDays"`
	EndDate      string         `json:"endDate"`
	Status       string         `json:"status"`
	IsArchived   bool           `json:"isArchived"`
	Progress     float64        `json:"progress"`
	ElapsedDays  []string       `json:"elapsedDays"`
	Notes        []NoteResponse `json:"notes"`
}

// FromChallenge добавляет к снимку челленджа вычисляемые поля:
// дату окончания, процент выполнения и список прошедших дней
func FromChallenge(c *chal.Challenge) ChallengeResponse {
	now := time.Now()

	notes := make([]NoteResponse, len(c.Notes))
	for i, n := range c.Notes {
		notes[i] = NoteResponse{
			ID:        n.ID,
			Date:      n.Date,
			Mood:      string(n.Mood),
			Text:      n.Text,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		}
	}

	return ChallengeResponse{
		ID:           c.ID,
		Title:        c.Title,
		StartDate:    c.StartDate,
		DurationDays: c.DurationDays,
		EndDate:      dates.Format(dates.End(dates.ParseStored(c.StartDate), c.DurationDays)),
		Status:       string(c.Status),
		IsArchived:   c.IsArchived,
		Progress:     dates.Progress(c.StartDate, c.DurationDays, now),
		ElapsedDays:  dates.ElapsedDays(c.StartDate, c.DurationDays, now),
		Notes:        notes,
	}
}

func FromChallengeList(challenges []*chal.Challenge) []ChallengeResponse {
	result := make([]ChallengeResponse, len(challenges))
	for i, c := range challenges {
		result[i] = FromChallenge(c)
	}
	return result
}
