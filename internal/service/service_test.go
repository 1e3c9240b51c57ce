package service_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"challengeTracker/internal/dates"
	"challengeTracker/internal/logger"
	chal "challengeTracker/internal/models/challenge"
	rep "challengeTracker/internal/repository"
	"challengeTracker/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init(true)
	defer logger.Sync()
	os.Exit(m.Run())
}

// MockChallengeRepository - мок репозитория
type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockChallengeRepository) Create(ctx context.Context, c *chal.Challenge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChallengeRepository) Update(ctx context.Context, c *chal.Challenge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChallengeRepository) GetByID(ctx context.Context, id uuid.UUID) (*chal.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chal.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) GetAll(ctx context.Context) ([]*chal.Challenge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chal.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChallengeRepository) ReplaceAll(ctx context.Context, challenges []*chal.Challenge) error {
	args := m.Called(ctx, challenges)
	return args.Error(0)
}

var _ service.ChallengeRepository = (*MockChallengeRepository)(nil)

// TestChallengeService_HealthCheck тестирует HealthCheck
func TestChallengeService_HealthCheck(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(*MockChallengeRepository)
		expectError bool
	}{
		{
			name: "success - health check passes",
			setupMock: func(m *MockChallengeRepository) {
				m.On("HealthCheck", mock.Anything).Return(nil)
			},
			expectError: false,
		},
		{
			name: "error - health check fails",
			setupMock: func(m *MockChallengeRepository) {
				m.On("HealthCheck", mock.Anything).Return(errors.New("storage down"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockChallengeRepository)
			tt.setupMock(mockRepo)

			svc := service.NewChallengeService(mockRepo)
			err := svc.HealthCheck(context.Background())

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "проверка здоровья сервиса")
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// TestChallengeService_CreateNewChallenge тестирует создание челленджа
func TestChallengeService_CreateNewChallenge(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name           string
		startDate      time.Time
		durationDays   int
		expectedStatus chal.Status
	}{
		{
			name:           "starts today - active",
			startDate:      time.Now(),
			durationDays:   30,
			expectedStatus: chal.StatusActive,
		},
		{
			name:           "starts in future - active",
			startDate:      time.Now().AddDate(0, 0, 10),
			durationDays:   7,
			expectedStatus: chal.StatusActive,
		},
		{
			name:           "start long past - born completed",
			startDate:      time.Now().AddDate(0, -6, 0),
			durationDays:   7,
			expectedStatus: chal.StatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockChallengeRepository)
			mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *chal.Challenge) bool {
				return c.Title == "Бег по утрам" &&
					c.DurationDays == tt.durationDays &&
					c.Status == tt.expectedStatus &&
					!c.IsArchived &&
					len(c.Notes) == 0
			})).Return(nil)

			svc := service.NewChallengeService(mockRepo)
			id, err := svc.CreateNewChallenge(ctx, "Бег по утрам", tt.durationDays, tt.startDate)

			assert.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, id)
			mockRepo.AssertExpectations(t)
		})
	}
}

// TestChallengeService_GetChallengeByID тестирует получение челленджа
func TestChallengeService_GetChallengeByID(t *testing.T) {
	ctx := context.Background()
	challengeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		existing := &chal.Challenge{ID: challengeID, Title: "Медитация"}
		mockRepo.On("GetByID", mock.Anything, challengeID).Return(existing, nil)

		svc := service.NewChallengeService(mockRepo)
		got, err := svc.GetChallengeByID(ctx, challengeID)

		assert.NoError(t, err)
		assert.Equal(t, challengeID, got.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - not found maps to business error", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		mockRepo.On("GetByID", mock.Anything, challengeID).Return(nil, rep.ErrNotFound)

		svc := service.NewChallengeService(mockRepo)
		_, err := svc.GetChallengeByID(ctx, challengeID)

		assert.Error(t, err)
		var busErr *service.BusinessError
		require.True(t, errors.As(err, &busErr))
		assert.Equal(t, "NOT_FOUND", busErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

// TestChallengeService_GetFilteredChallenges тестирует разбиение по архивности
func TestChallengeService_GetFilteredChallenges(t *testing.T) {
	ctx := context.Background()

	active := &chal.Challenge{ID: uuid.New(), Title: "Активный"}
	archived := &chal.Challenge{ID: uuid.New(), Title: "В архиве", IsArchived: true}
	all := []*chal.Challenge{active, archived}

	t.Run("active excludes archived", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		mockRepo.On("GetAll", mock.Anything).Return(all, nil)

		svc := service.NewChallengeService(mockRepo)
		got, err := svc.GetActiveChallenges(ctx)

		assert.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, active.ID, got[0].ID)
	})

	t.Run("archived only", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		mockRepo.On("GetAll", mock.Anything).Return(all, nil)

		svc := service.NewChallengeService(mockRepo)
		got, err := svc.GetArchivedChallenges(ctx)

		assert.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, archived.ID, got[0].ID)
	})

	t.Run("all returns everything", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		mockRepo.On("GetAll", mock.Anything).Return(all, nil)

		svc := service.NewChallengeService(mockRepo)
		got, err := svc.GetAllChallenges(ctx)

		assert.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

// TestChallengeService_UpdateChallengeByID тестирует частичное обновление
func TestChallengeService_UpdateChallengeByID(t *testing.T) {
	ctx := context.Background()
	challengeID := uuid.New()

	t.Run("success - options applied and status recomputed", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		existing := &chal.Challenge{
			ID:           challengeID,
			Title:        "Старый",
			StartDate:    dates.Format(time.Now()),
			DurationDays: 30,
			Status:       chal.StatusActive,
		}

		mockRepo.On("GetByID", mock.Anything, challengeID).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *chal.Challenge) bool {
			return c.Title == "Новый" && c.DurationDays == 14 && c.Status == chal.StatusActive
		})).Return(nil)

		svc := service.NewChallengeService(mockRepo)
		err := svc.UpdateChallengeByID(ctx, challengeID,
			service.WithTitle("Новый"),
			service.WithDurationDays(14),
		)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("moving start into past completes challenge", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		existing := &chal.Challenge{
			ID:           challengeID,
			StartDate:    dates.Format(time.Now()),
			DurationDays: 7,
			Status:       chal.StatusActive,
		}

		mockRepo.On("GetByID", mock.Anything, challengeID).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *chal.Challenge) bool {
			return c.Status == chal.StatusCompleted
		})).Return(nil)

		svc := service.NewChallengeService(mockRepo)
		err := svc.UpdateChallengeByID(ctx, challengeID,
			service.WithStartDate(time.Now().AddDate(0, 0, -30)),
		)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing id is a silent no-op", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		mockRepo.On("GetByID", mock.Anything, challengeID).Return(nil, rep.ErrNotFound)

		svc := service.NewChallengeService(mockRepo)
		err := svc.UpdateChallengeByID(ctx, challengeID, service.WithTitle("не важно"))

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

// TestChallengeService_DeleteChallengeByID тестирует удаление
func TestChallengeService_DeleteChallengeByID(t *testing.T) {
	ctx := context.Background()
	challengeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		mockRepo.On("Delete", mock.Anything, challengeID).Return(nil)

		svc := service.NewChallengeService(mockRepo)
		assert.NoError(t, svc.DeleteChallengeByID(ctx, challengeID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing id is a silent no-op", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		mockRepo.On("Delete", mock.Anything, challengeID).Return(rep.ErrNotFound)

		svc := service.NewChallengeService(mockRepo)
		assert.NoError(t, svc.DeleteChallengeByID(ctx, challengeID))
	})

	t.Run("storage error is wrapped", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		repoErr := errors.New("диск недоступен")
		mockRepo.On("Delete", mock.Anything, challengeID).Return(repoErr)

		svc := service.NewChallengeService(mockRepo)
		err := svc.DeleteChallengeByID(ctx, challengeID)

		require.Error(t, err)
		assert.ErrorIs(t, err, repoErr)
		assert.Contains(t, err.Error(), "удаление челленджа")
	})
}

// TestChallengeService_ArchiveUnarchive тестирует архивацию
func TestChallengeService_ArchiveUnarchive(t *testing.T) {
	ctx := context.Background()
	challengeID := uuid.New()

	t.Run("archive sets flag", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		existing := &chal.Challenge{ID: challengeID}

		mockRepo.On("GetByID", mock.Anything, challengeID).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *chal.Challenge) bool {
			return c.IsArchived
		})).Return(nil)

		svc := service.NewChallengeService(mockRepo)
		assert.NoError(t, svc.ArchiveChallenge(ctx, challengeID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("archive is idempotent", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		existing := &chal.Challenge{ID: challengeID, IsArchived: true}

		mockRepo.On("GetByID", mock.Anything, challengeID).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *chal.Challenge) bool {
			return c.IsArchived
		})).Return(nil)

		svc := service.NewChallengeService(mockRepo)
		assert.NoError(t, svc.ArchiveChallenge(ctx, challengeID))
	})

	t.Run("unarchive clears flag", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		existing := &chal.Challenge{ID: challengeID, IsArchived: true}

		mockRepo.On("GetByID", mock.Anything, challengeID).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *chal.Challenge) bool {
			return !c.IsArchived
		})).Return(nil)

		svc := service.NewChallengeService(mockRepo)
		assert.NoError(t, svc.UnarchiveChallenge(ctx, challengeID))
	})

	t.Run("missing id is a silent no-op", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		mockRepo.On("GetByID", mock.Anything, challengeID).Return(nil, rep.ErrNotFound)

		svc := service.NewChallengeService(mockRepo)
		assert.NoError(t, svc.ArchiveChallenge(ctx, challengeID))
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

// TestChallengeService_DuplicateChallenge тестирует дублирование
func TestChallengeService_DuplicateChallenge(t *testing.T) {
	ctx := context.Background()
	challengeID := uuid.New()

	t.Run("copy gets suffix, today start and no notes", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		original := &chal.Challenge{
			ID:           challengeID,
			Title:        "Холодный душ",
			StartDate:    "2025-01-01",
			DurationDays: 21,
			Status:       chal.StatusCompleted,
			IsArchived:   true,
			Notes: []chal.Note{
				{ID: uuid.New(), Date: "2025-01-02", Mood: chal.MoodStrong, Text: "держусь", CreatedAt: 1},
			},
		}
		today := dates.Format(time.Now())

		mockRepo.On("GetByID", mock.Anything, challengeID).Return(original, nil)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *chal.Challenge) bool {
			return c.Title == "Холодный душ (Copy)" &&
				c.StartDate == today &&
				c.DurationDays == 21 &&
				c.Status == chal.StatusActive &&
				!c.IsArchived &&
				len(c.Notes) == 0 &&
				c.ID != challengeID
		})).Return(nil)

		svc := service.NewChallengeService(mockRepo)
		newID, err := svc.DuplicateChallenge(ctx, challengeID)

		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, newID)
		assert.NotEqual(t, challengeID, newID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - source not found", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		mockRepo.On("GetByID", mock.Anything, challengeID).Return(nil, rep.ErrNotFound)

		svc := service.NewChallengeService(mockRepo)
		_, err := svc.DuplicateChallenge(ctx, challengeID)

		var busErr *service.BusinessError
		require.True(t, errors.As(err, &busErr))
		assert.Equal(t, "NOT_FOUND", busErr.Code)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

// TestChallengeService_AddNoteToChallenge тестирует добавление заметки
func TestChallengeService_AddNoteToChallenge(t *testing.T) {
	ctx := context.Background()
	challengeID := uuid.New()

	t.Run("note appended and sorted newest first", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		existing := &chal.Challenge{
			ID: challengeID,
			Notes: []chal.Note{
				{ID: uuid.New(), Date: "2026-01-01", Mood: chal.MoodNeutral, Text: "старая", CreatedAt: 1},
			},
		}

		mockRepo.On("GetByID", mock.Anything, challengeID).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *chal.Challenge) bool {
			return len(c.Notes) == 2 &&
				c.Notes[0].Text == "свежая" &&
				c.Notes[1].Text == "старая" &&
				c.Notes[0].Mood == chal.MoodHappy &&
				c.Notes[0].ID != uuid.Nil &&
				c.Notes[0].UpdatedAt == nil
		})).Return(nil)

		svc := service.NewChallengeService(mockRepo)
		err := svc.AddNoteToChallenge(ctx, challengeID, time.Now(), chal.MoodHappy, "свежая")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing challenge is a silent no-op", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		mockRepo.On("GetByID", mock.Anything, challengeID).Return(nil, rep.ErrNotFound)

		svc := service.NewChallengeService(mockRepo)
		err := svc.AddNoteToChallenge(ctx, challengeID, time.Now(), chal.MoodHappy, "в никуда")

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

// TestChallengeService_UpdateNoteInChallenge тестирует обновление заметки
func TestChallengeService_UpdateNoteInChallenge(t *testing.T) {
	ctx := context.Background()
	challengeID := uuid.New()
	noteID := uuid.New()

	t.Run("success - mood and text updated, updatedAt set", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		existing := &chal.Challenge{
			ID: challengeID,
			Notes: []chal.Note{
				{ID: noteID, Date: "2026-01-05", Mood: chal.MoodSad, Text: "плохо", CreatedAt: 1},
			},
		}

		mockRepo.On("GetByID", mock.Anything, challengeID).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *chal.Challenge) bool {
			n := c.Notes[0]
			return n.ID == noteID &&
				n.Mood == chal.MoodIdea &&
				n.Text == "придумал выход" &&
				n.Date == "2026-01-05" &&
				n.CreatedAt == 1 &&
				n.UpdatedAt != nil
		})).Return(nil)

		svc := service.NewChallengeService(mockRepo)
		err := svc.UpdateNoteInChallenge(ctx, challengeID, noteID,
			service.WithNoteMood(chal.MoodIdea),
			service.WithNoteText("придумал выход"),
		)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing note - no write", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		existing := &chal.Challenge{ID: challengeID, Notes: []chal.Note{}}
		mockRepo.On("GetByID", mock.Anything, challengeID).Return(existing, nil)

		svc := service.NewChallengeService(mockRepo)
		err := svc.UpdateNoteInChallenge(ctx, challengeID, noteID, service.WithNoteText("некуда"))

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing challenge is a silent no-op", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		mockRepo.On("GetByID", mock.Anything, challengeID).Return(nil, rep.ErrNotFound)

		svc := service.NewChallengeService(mockRepo)
		err := svc.UpdateNoteInChallenge(ctx, challengeID, noteID)

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

// TestChallengeService_DeleteNoteFromChallenge тестирует удаление заметки
func TestChallengeService_DeleteNoteFromChallenge(t *testing.T) {
	ctx := context.Background()
	challengeID := uuid.New()
	noteID := uuid.New()

	t.Run("success - note removed, others kept", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		keptID := uuid.New()
		existing := &chal.Challenge{
			ID: challengeID,
			Notes: []chal.Note{
				{ID: noteID, CreatedAt: 2},
				{ID: keptID, CreatedAt: 1},
			},
		}

		mockRepo.On("GetByID", mock.Anything, challengeID).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *chal.Challenge) bool {
			return len(c.Notes) == 1 && c.Notes[0].ID == keptID
		})).Return(nil)

		svc := service.NewChallengeService(mockRepo)
		assert.NoError(t, svc.DeleteNoteFromChallenge(ctx, challengeID, noteID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing note - no write", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		existing := &chal.Challenge{
			ID:    challengeID,
			Notes: []chal.Note{{ID: uuid.New(), CreatedAt: 1}},
		}
		mockRepo.On("GetByID", mock.Anything, challengeID).Return(existing, nil)

		svc := service.NewChallengeService(mockRepo)
		assert.NoError(t, svc.DeleteNoteFromChallenge(ctx, challengeID, noteID))
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

// TestChallengeService_ReconcileStatuses тестирует фоновую сверку
func TestChallengeService_ReconcileStatuses(t *testing.T) {
	ctx := context.Background()

	t.Run("expired active challenges flip to completed", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		expired := &chal.Challenge{
			ID:           uuid.New(),
			StartDate:    dates.Format(time.Now().AddDate(0, 0, -30)),
			DurationDays: 7,
			Status:       chal.StatusActive,
		}
		running := &chal.Challenge{
			ID:           uuid.New(),
			StartDate:    dates.Format(time.Now()),
			DurationDays: 30,
			Status:       chal.StatusActive,
		}

		mockRepo.On("GetAll", mock.Anything).Return([]*chal.Challenge{expired, running}, nil)
		mockRepo.On("ReplaceAll", mock.Anything, mock.MatchedBy(func(all []*chal.Challenge) bool {
			return all[0].Status == chal.StatusCompleted && all[1].Status == chal.StatusActive
		})).Return(nil)

		svc := service.NewChallengeService(mockRepo)
		flipped, err := svc.ReconcileStatuses(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, flipped)
		mockRepo.AssertExpectations(t)
	})

	t.Run("no changes - no write", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		running := &chal.Challenge{
			ID:           uuid.New(),
			StartDate:    dates.Format(time.Now()),
			DurationDays: 30,
			Status:       chal.StatusActive,
		}
		done := &chal.Challenge{
			ID:           uuid.New(),
			StartDate:    "2020-01-01",
			DurationDays: 7,
			Status:       chal.StatusCompleted,
		}

		mockRepo.On("GetAll", mock.Anything).Return([]*chal.Challenge{running, done}, nil)

		svc := service.NewChallengeService(mockRepo)
		flipped, err := svc.ReconcileStatuses(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, flipped)
		mockRepo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
	})

	t.Run("completed never rolls back", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		// completed с датой старта в будущем - правка руками в файле,
		// сверка его не трогает
		weird := &chal.Challenge{
			ID:           uuid.New(),
			StartDate:    dates.Format(time.Now().AddDate(0, 0, 10)),
			DurationDays: 30,
			Status:       chal.StatusCompleted,
		}

		mockRepo.On("GetAll", mock.Anything).Return([]*chal.Challenge{weird}, nil)

		svc := service.NewChallengeService(mockRepo)
		flipped, err := svc.ReconcileStatuses(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, flipped)
		mockRepo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
	})

	t.Run("error - storage failure propagates", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		mockRepo.On("GetAll", mock.Anything).Return(nil, errors.New("disk gone"))

		svc := service.NewChallengeService(mockRepo)
		_, err := svc.ReconcileStatuses(ctx)

		assert.Error(t, err)
	})
}

// TestChallengeService_Stats тестирует сбор аналитики
func TestChallengeService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("counters, weekly activity and moods", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		today := dates.Format(time.Now())
		longAgo := "2020-05-05"

		challenges := []*chal.Challenge{
			{
				ID:     uuid.New(),
				Status: chal.StatusActive,
				Notes: []chal.Note{
					{ID: uuid.New(), Date: today, Mood: chal.MoodHappy, CreatedAt: 3},
					{ID: uuid.New(), Date: today, Mood: chal.MoodNeutral, CreatedAt: 2},
					{ID: uuid.New(), Date: longAgo, Mood: chal.MoodSad, CreatedAt: 1},
				},
			},
			{ID: uuid.New(), Status: chal.StatusCompleted},
			// архивность важнее статуса
			{ID: uuid.New(), Status: chal.StatusCompleted, IsArchived: true},
		}

		mockRepo.On("GetAll", mock.Anything).Return(challenges, nil)

		svc := service.NewChallengeService(mockRepo)
		stats, err := svc.Stats(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, stats.Active)
		assert.Equal(t, 1, stats.Completed)
		assert.Equal(t, 1, stats.Archived)
		assert.Equal(t, 3, stats.TotalNotes)

		require.Len(t, stats.WeeklyNotes, 7)
		assert.Equal(t, today, stats.WeeklyNotes[6].Date)
		assert.Equal(t, 2, stats.WeeklyNotes[6].Notes)
		assert.Equal(t, 0, stats.WeeklyNotes[0].Notes)

		assert.Equal(t, 1, stats.Moods.Positive)
		assert.Equal(t, 1, stats.Moods.Neutral)
		assert.Equal(t, 1, stats.Moods.Negative)
	})

	t.Run("empty storage - zero stats", func(t *testing.T) {
		mockRepo := new(MockChallengeRepository)
		mockRepo.On("GetAll", mock.Anything).Return([]*chal.Challenge{}, nil)

		svc := service.NewChallengeService(mockRepo)
		stats, err := svc.Stats(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, stats.Active)
		assert.Equal(t, 0, stats.TotalNotes)
		assert.Len(t, stats.WeeklyNotes, 7)
	})
}
