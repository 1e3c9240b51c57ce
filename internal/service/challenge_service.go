package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"challengeTracker/internal/dates"
	"challengeTracker/internal/logger"
	chal "challengeTracker/internal/models/challenge"
	rep "challengeTracker/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// здесь живёт вся бизнес-логика работы с челленджами.
// Контракт на отсутствующие id: мутации молча ничего не делают,
// чтение и дублирование возвращают NOT_FOUND.

type ChallengeService struct {
	repo ChallengeRepository
}

func NewChallengeService(repo ChallengeRepository) ChallengeService {
	return ChallengeService{
		repo: repo,
	}
}

func (s *ChallengeService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

// CreateNewChallenge создаёт челлендж. Статус сразу вычисляется общим
// правилом, поэтому челлендж с давно прошедшей датой старта рождается
// уже завершённым.
func (s *ChallengeService) CreateNewChallenge(ctx context.Context, title string, durationDays int, startDate time.Time) (uuid.UUID, error) {
	id := uuid.New()
	challenge := &chal.Challenge{
		ID:           id,
		Title:        title,
		StartDate:    dates.Format(startDate),
		DurationDays: durationDays,
		IsArchived:   false,
		Notes:        []chal.Note{},
	}
	challenge.Status = dates.StatusFor(challenge.StartDate, challenge.DurationDays, time.Now())

	return id, s.repo.Create(ctx, challenge)
}

func (s *ChallengeService) GetChallengeByID(ctx context.Context, id uuid.UUID) (*chal.Challenge, error) {
	challenge, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Челлендж не найден", zap.String("target_id", id.String()))
			return nil, NewNotFound("челлендж", id.String())
		}
		return nil, fmt.Errorf("получение челленджа: %w", err)
	}
	return challenge, nil
}

func (s *ChallengeService) GetAllChallenges(ctx context.Context) ([]*chal.Challenge, error) {
	challenges, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение челленджей: %w", err)
	}
	return challenges, nil
}

func (s *ChallengeService) GetActiveChallenges(ctx context.Context) ([]*chal.Challenge, error) {
	return s.getFiltered(ctx, func(c *chal.Challenge) bool { return !c.IsArchived })
}

func (s *ChallengeService) GetArchivedChallenges(ctx context.Context) ([]*chal.Challenge, error) {
	return s.getFiltered(ctx, func(c *chal.Challenge) bool { return c.IsArchived })
}

func (s *ChallengeService) getFiltered(ctx context.Context, keep func(*chal.Challenge) bool) ([]*chal.Challenge, error) {
	challenges, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение челленджей: %w", err)
	}

	res := []*chal.Challenge{}
	for _, c := range challenges {
		if keep(c) {
			res = append(res, c)
		}
	}
	return res, nil
}

// UpdateChallengeByID применяет частичное обновление и заново вычисляет
// статус - правка дат может сразу перевести челлендж в completed и обратно
func (s *ChallengeService) UpdateChallengeByID(ctx context.Context, id uuid.UUID, options ...ChallengeOption) error {
	challenge, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Челлендж не найден", zap.String("target_id", id.String()))
			return nil
		}
		return fmt.Errorf("получение челленджа: %w", err)
	}

	for _, opt := range options {
		if opt != nil {
			opt(challenge)
		}
	}
	challenge.Status = dates.StatusFor(challenge.StartDate, challenge.DurationDays, time.Now())

	return s.repo.Update(ctx, challenge)
}

func (s *ChallengeService) DeleteChallengeByID(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, rep.ErrNotFound) {
		logger.Info("Service: Челлендж не найден", zap.String("target_id", id.String()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("удаление челленджа: %w", err)
	}
	return nil
}

// архивация не зависит от статуса и идемпотентна
func (s *ChallengeService) ArchiveChallenge(ctx context.Context, id uuid.UUID) error {
	return s.setArchived(ctx, id, true)
}

func (s *ChallengeService) UnarchiveChallenge(ctx context.Context, id uuid.UUID) error {
	return s.setArchived(ctx, id, false)
}

func (s *ChallengeService) setArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	challenge, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Челлендж не найден", zap.String("target_id", id.String()))
			return nil
		}
		return fmt.Errorf("получение челленджа: %w", err)
	}

	challenge.IsArchived = archived
	return s.repo.Update(ctx, challenge)
}

// DuplicateChallenge копирует заголовок и длительность. Дата старта
// сбрасывается на сегодня, заметки намеренно не копируются.
func (s *ChallengeService) DuplicateChallenge(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	original, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Челлендж не найден", zap.String("target_id", id.String()))
			return uuid.Nil, NewNotFound("челлендж", id.String())
		}
		return uuid.Nil, fmt.Errorf("получение челленджа: %w", err)
	}

	now := time.Now()
	copied := &chal.Challenge{
		ID:           uuid.New(),
		Title:        original.Title + " (Copy)",
		StartDate:    dates.Format(now),
		DurationDays: original.DurationDays,
		IsArchived:   false,
		Notes:        []chal.Note{},
	}
	copied.Status = dates.StatusFor(copied.StartDate, copied.DurationDays, now)

	return copied.ID, s.repo.Create(ctx, copied)
}

func (s *ChallengeService) AddNoteToChallenge(ctx context.Context, challengeID uuid.UUID, date time.Time, mood chal.Mood, text string) error {
	challenge, err := s.repo.GetByID(ctx, challengeID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Челлендж не найден", zap.String("target_id", challengeID.String()))
			return nil
		}
		return fmt.Errorf("получение челленджа: %w", err)
	}

	note := chal.Note{
		ID:        uuid.New(),
		Date:      dates.Format(date),
		Mood:      mood,
		Text:      text,
		CreatedAt: time.Now().UnixMilli(),
	}

	challenge.Notes = append(challenge.Notes, note)
	sortNotes(challenge.Notes)

	return s.repo.Update(ctx, challenge)
}

func (s *ChallengeService) UpdateNoteInChallenge(ctx context.Context, challengeID, noteID uuid.UUID, options ...NoteOption) error {
	challenge, err := s.repo.GetByID(ctx, challengeID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Челлендж не найден", zap.String("target_id", challengeID.String()))
			return nil
		}
		return fmt.Errorf("получение челленджа: %w", err)
	}

	found := false
	for i := range challenge.Notes {
		if challenge.Notes[i].ID != noteID {
			continue
		}

		for _, opt := range options {
			if opt != nil {
				opt(&challenge.Notes[i])
			}
		}
		now := time.Now().UnixMilli()
		challenge.Notes[i].UpdatedAt = &now
		found = true
		break
	}

	if !found {
		logger.Info("Service: Заметка не найдена",
			zap.String("challenge_id", challengeID.String()),
			zap.String("note_id", noteID.String()))
		return nil
	}

	sortNotes(challenge.Notes)
	return s.repo.Update(ctx, challenge)
}

func (s *ChallengeService) DeleteNoteFromChallenge(ctx context.Context, challengeID, noteID uuid.UUID) error {
	challenge, err := s.repo.GetByID(ctx, challengeID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Челлендж не найден", zap.String("target_id", challengeID.String()))
			return nil
		}
		return fmt.Errorf("получение челленджа: %w", err)
	}

	kept := challenge.Notes[:0]
	found := false
	for _, n := range challenge.Notes {
		if n.ID == noteID {
			found = true
			continue
		}
		kept = append(kept, n)
	}

	if !found {
		logger.Info("Service: Заметка не найдена",
			zap.String("challenge_id", challengeID.String()),
			zap.String("note_id", noteID.String()))
		return nil
	}

	challenge.Notes = kept
	return s.repo.Update(ctx, challenge)
}

// ReconcileStatuses переводит просроченные активные челленджи в completed.
// Идемпотентна и монотонна: completed назад не откатывается.
// Запись в хранилище выполняется только если что-то реально поменялось.
func (s *ChallengeService) ReconcileStatuses(ctx context.Context) (int, error) {
	challenges, err := s.repo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("получение челленджей: %w", err)
	}

	now := time.Now()
	flipped := 0
	for _, c := range challenges {
		if c.Status != chal.StatusActive {
			continue
		}
		if dates.StatusFor(c.StartDate, c.DurationDays, now) == chal.StatusCompleted {
			c.Status = chal.StatusCompleted
			flipped++
		}
	}

	if flipped == 0 {
		return 0, nil
	}

	if err := s.repo.ReplaceAll(ctx, challenges); err != nil {
		return 0, fmt.Errorf("сверка статусов: %w", err)
	}
	return flipped, nil
}

// заметки всегда держим по убыванию createdAt - свежая сверху
func sortNotes(notes []chal.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt > notes[j].CreatedAt
	})
}
