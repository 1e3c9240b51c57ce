package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"challengeTracker/internal/dates"
	"challengeTracker/internal/handlers/dto"
	"challengeTracker/internal/logger"
	chal "challengeTracker/internal/models/challenge"
	"challengeTracker/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChallengeHandler struct {
	ChallengeService ChallengeService
	Suggester        Suggester
}

func NewChallengeHandler(challengeService ChallengeService, suggester Suggester) ChallengeHandler {
	return ChallengeHandler{
		ChallengeService: challengeService,
		Suggester:        suggester,
	}
}

// parseIDParam достаёт и проверяет uuid из path-параметра
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	idParam := r.PathValue(name)
	id, err := uuid.Parse(idParam)
	if err != nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.Error(err),
			zap.String("param", name),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "не удалось получить id: "+err.Error())
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		logger.Warn("HTTP: Неверное значение id",
			zap.String("error", "nil id"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "id не может быть пустым")
		return uuid.Nil, false
	}

	return id, true
}

func (s *ChallengeHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := s.ChallengeService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Ошибка Service", err)
		responseWithError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	healthCheck(w)
}

func (s *ChallengeHandler) GetActiveChallenges(w http.ResponseWriter, r *http.Request) {
	s.respondWithList(w, r, s.ChallengeService.GetActiveChallenges)
}

func (s *ChallengeHandler) GetArchivedChallenges(w http.ResponseWriter, r *http.Request) {
	s.respondWithList(w, r, s.ChallengeService.GetArchivedChallenges)
}

func (s *ChallengeHandler) GetAllChallenges(w http.ResponseWriter, r *http.Request) {
	s.respondWithList(w, r, s.ChallengeService.GetAllChallenges)
}

func (s *ChallengeHandler) respondWithList(w http.ResponseWriter, r *http.Request, get func(context.Context) ([]*chal.Challenge, error)) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	challenges, err := get(r.Context())
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err)
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Челленджи получены",
		zap.Int("count", len(challenges)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("challenges", dto.FromChallengeList(challenges)))
}

func (s *ChallengeHandler) PostChallenge(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	// валидация живёт на границе - сервис доверяет своим аргументам
	if request.Title == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "title"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "название не может быть пустым")
		return
	}

	if request.DurationDays < 1 {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "durationDays"),
			zap.String("error", "wrong_value"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "длительность должна быть не меньше 1 дня")
		return
	}

	startDate, err := time.ParseInLocation(dates.Layout, request.StartDate, time.Local)
	if err != nil {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "startDate"),
			zap.String("error", "wrong_value"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "дата старта должна быть в формате YYYY-MM-DD")
		return
	}

	logger.Info("HTTP: Вызов сервиса создания челленджа")
	id, err := s.ChallengeService.CreateNewChallenge(r.Context(), request.Title, request.DurationDays, startDate)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "create_challenge"),
			zap.String("client_ip", r.RemoteAddr),
			zap.Duration("ms", time.Since(start)))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Челлендж создан",
		zap.String("challenge_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("id", id))
}

func (s *ChallengeHandler) GetChallengeByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	logger.Info("HTTP: Вызов сервиса для получения челленджа")

	challenge, err := s.ChallengeService.GetChallengeByID(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}

		logger.Error("HTTP: Ошибка в Service", err,
			zap.String("operation", "get_challenge"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Челлендж получен",
		zap.String("challenge_id", challenge.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("challenge", dto.FromChallenge(challenge)))
}

func (s *ChallengeHandler) UpdateChallengeByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var request dto.UpdateChallengeRequest

	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления: "+err.Error())
		return
	}

	// собираем опции только из реально переданных полей
	options := []service.ChallengeOption{}

	if request.Title != nil {
		if *request.Title == "" {
			responseWithError(w, http.StatusBadRequest, "название не может быть пустым")
			return
		}
		options = append(options, service.WithTitle(*request.Title))
	}

	if request.DurationDays != nil {
		if *request.DurationDays < 1 {
			responseWithError(w, http.StatusBadRequest, "длительность должна быть не меньше 1 дня")
			return
		}
		options = append(options, service.WithDurationDays(*request.DurationDays))
	}

	if request.StartDate != nil {
		startDate, err := time.ParseInLocation(dates.Layout, *request.StartDate, time.Local)
		if err != nil {
			responseWithError(w, http.StatusBadRequest, "дата старта должна быть в формате YYYY-MM-DD")
			return
		}
		options = append(options, service.WithStartDate(startDate))
	}

	logger.Info("HTTP: запрос к сервису обновления данных")

	if err := s.ChallengeService.UpdateChallengeByID(r.Context(), id, options...); err != nil {
		logger.Error("HTTP: ошибка в Service", err,
			zap.String("operation", "update_challenge"),
			zap.String("client_addr", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Челлендж обновлён",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (s *ChallengeHandler) DeleteChallengeByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	logger.Info("HTTP: Обращение к сервису для удаления челленджа")

	if err := s.ChallengeService.DeleteChallengeByID(r.Context(), id); err != nil {
		logger.Error("HTTP: ошибка в Service", err,
			zap.String("operation", "delete_challenge"),
			zap.String("client_addr", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Челлендж удалён",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (s *ChallengeHandler) ArchiveChallenge(w http.ResponseWriter, r *http.Request) {
	s.setArchived(w, r, true)
}

func (s *ChallengeHandler) UnarchiveChallenge(w http.ResponseWriter, r *http.Request) {
	s.setArchived(w, r, false)
}

func (s *ChallengeHandler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var err error
	if archived {
		err = s.ChallengeService.ArchiveChallenge(r.Context(), id)
	} else {
		err = s.ChallengeService.UnarchiveChallenge(r.Context(), id)
	}

	if err != nil {
		logger.Error("HTTP: ошибка в Service", err,
			zap.String("operation", "archive_challenge"),
			zap.String("client_addr", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Флаг архива обновлён",
		zap.Bool("is_archived", archived),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (s *ChallengeHandler) DuplicateChallenge(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	logger.Info("HTTP: Вызов сервиса дублирования челленджа")

	newID, err := s.ChallengeService.DuplicateChallenge(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}

		logger.Error("HTTP: Ошибка в Service", err,
			zap.String("operation", "duplicate_challenge"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Челлендж продублирован",
		zap.String("source_id", id.String()),
		zap.String("challenge_id", newID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("id", newID))
}
