package jsonfile

import (
	"context"
	"fmt"
	"sync"

	"challengeTracker/internal/logger"
	chal "challengeTracker/internal/models/challenge"
	repo "challengeTracker/internal/repository"
	"challengeTracker/internal/storage/kv"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const challengesKey = "challenges"

// ChallengeStorage держит коллекцию челленджей в памяти и зеркалирует её
// в key-value хранилище при каждой мутации. Память подменяется только
// после успешной записи на диск.
type ChallengeStorage struct {
	store *kv.Store
	mtx   *sync.RWMutex
	items []*chal.Challenge
	index map[uuid.UUID]int
}

func NewChallengeStorage(store *kv.Store) *ChallengeStorage {
	return &ChallengeStorage{
		store: store,
		mtx:   &sync.RWMutex{},
		items: []*chal.Challenge{},
		index: map[uuid.UUID]int{},
	}
}

// Load читает коллекцию из хранилища один раз при старте
func (s *ChallengeStorage) Load(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	loaded := []*chal.Challenge{}
	found, err := s.store.Get(challengesKey, &loaded)
	if err != nil {
		return fmt.Errorf("загрузка коллекции челленджей: %w", err)
	}

	if !found {
		logger.Info("Repository: Хранилище пустое, начинаем с чистой коллекции")
		return nil
	}

	s.commit(loaded)
	logger.Info("Repository: Коллекция челленджей загружена", zap.Int("count", len(loaded)))
	return nil
}

func (s *ChallengeStorage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: Соединение стабильно")
	return nil
}

func (s *ChallengeStorage) Create(ctx context.Context, toCreate *chal.Challenge) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	next := append(s.snapshot(), toCreate.Clone())

	if err := s.persist(next); err != nil {
		return err
	}

	s.commit(next)
	return nil
}

func (s *ChallengeStorage) Update(ctx context.Context, toUpdate *chal.Challenge) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	pos, ok := s.index[toUpdate.ID]
	if !ok {
		return repo.ErrNotFound
	}

	next := s.snapshot()
	next[pos] = toUpdate.Clone()

	if err := s.persist(next); err != nil {
		return err
	}

	s.commit(next)
	return nil
}

func (s *ChallengeStorage) GetByID(ctx context.Context, id uuid.UUID) (*chal.Challenge, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return s.items[pos].Clone(), nil
}

func (s *ChallengeStorage) GetAll(ctx context.Context) ([]*chal.Challenge, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	out := make([]*chal.Challenge, len(s.items))
	for i, c := range s.items {
		out[i] = c.Clone()
	}
	return out, nil
}

// Delete удаляет челлендж вместе со всеми вложенными заметками
func (s *ChallengeStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return repo.ErrNotFound
	}

	next := s.snapshot()
	next = append(next[:pos], next[pos+1:]...)

	if err := s.persist(next); err != nil {
		return err
	}

	s.commit(next)
	return nil
}

// ReplaceAll атомарно подменяет всю коллекцию одной записью.
// Используется фоновой сверкой статусов.
func (s *ChallengeStorage) ReplaceAll(ctx context.Context, challenges []*chal.Challenge) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	next := make([]*chal.Challenge, len(challenges))
	for i, c := range challenges {
		next[i] = c.Clone()
	}

	if err := s.persist(next); err != nil {
		return err
	}

	s.commit(next)
	return nil
}

// snapshot копирует текущий порядок; сами элементы не копируются,
// клонирование происходит в точках выдачи наружу
func (s *ChallengeStorage) snapshot() []*chal.Challenge {
	out := make([]*chal.Challenge, len(s.items))
	copy(out, s.items)
	return out
}

func (s *ChallengeStorage) persist(next []*chal.Challenge) error {
	if err := s.store.Set(challengesKey, next); err != nil {
		logger.Error("Repository: Не удалось записать коллекцию", err)
		return fmt.Errorf("сохранение коллекции челленджей: %w", err)
	}
	return nil
}

func (s *ChallengeStorage) commit(next []*chal.Challenge) {
	s.items = next
	s.index = make(map[uuid.UUID]int, len(next))
	for i, c := range next {
		s.index[c.ID] = i
	}
}
