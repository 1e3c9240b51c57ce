package handlers

import (
	"context"
	"time"

	chal "challengeTracker/internal/models/challenge"
	"challengeTracker/internal/service"
	"challengeTracker/internal/suggest"

	"github.com/google/uuid"
)

type ChallengeService interface {
	HealthCheck(context.Context) error
	CreateNewChallenge(context.Context, string, int, time.Time) (uuid.UUID, error)
	GetChallengeByID(context.Context, uuid.UUID) (*chal.Challenge, error)
	GetAllChallenges(context.Context) ([]*chal.Challenge, error)
	GetActiveChallenges(context.Context) ([]*chal.Challenge, error)
	GetArchivedChallenges(context.Context) ([]*chal.Challenge, error)
	UpdateChallengeByID(context.Context, uuid.UUID, ...service.ChallengeOption) error
	DeleteChallengeByID(context.Context, uuid.UUID) error
	ArchiveChallenge(context.Context, uuid.UUID) error
	UnarchiveChallenge(context.Context, uuid.UUID) error
	DuplicateChallenge(context.Context, uuid.UUID) (uuid.UUID, error)
	AddNoteToChallenge(context.Context, uuid.UUID, time.Time, chal.Mood, string) error
	UpdateNoteInChallenge(context.Context, uuid.UUID, uuid.UUID, ...service.NoteOption) error
	DeleteNoteFromChallenge(context.Context, uuid.UUID, uuid.UUID) error
	Stats(context.Context) (*service.Stats, error)
}

type Suggester interface {
	Suggestions(context.Context) ([]suggest.Suggestion, error)
}
