package service

import (
	"context"

	chal "challengeTracker/internal/models/challenge"

	"github.com/google/uuid"
)

type ChallengeRepository interface {
	HealthCheck(context.Context) error
	Create(context.Context, *chal.Challenge) error
	Update(context.Context, *chal.Challenge) error
	GetByID(context.Context, uuid.UUID) (*chal.Challenge, error)
	GetAll(context.Context) ([]*chal.Challenge, error)
	Delete(context.Context, uuid.UUID) error
	ReplaceAll(context.Context, []*chal.Challenge) error
}
