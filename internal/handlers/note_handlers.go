package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"challengeTracker/internal/dates"
	"challengeTracker/internal/handlers/dto"
	"challengeTracker/internal/logger"
	chal "challengeTracker/internal/models/challenge"
	"challengeTracker/internal/service"

	"go.uber.org/zap"
)

func (s *ChallengeHandler) PostNote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	challengeID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	date, err := time.ParseInLocation(dates.Layout, request.Date, time.Local)
	if err != nil {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "date"),
			zap.String("error", "wrong_value"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "дата заметки должна быть в формате YYYY-MM-DD")
		return
	}

	mood := chal.Mood(request.Mood)
	if !chal.ValidMood(mood) {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "mood"),
			zap.String("error", "unknown_mood"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неизвестное настроение")
		return
	}

	logger.Info("HTTP: Вызов сервиса добавления заметки")

	if err := s.ChallengeService.AddNoteToChallenge(r.Context(), challengeID, date, mood, request.Text); err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "add_note"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Заметка добавлена",
		zap.String("challenge_id", challengeID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (s *ChallengeHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	challengeID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	noteID, ok := parseIDParam(w, r, "noteId")
	if !ok {
		return
	}

	var request dto.UpdateNoteRequest

	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления: "+err.Error())
		return
	}

	// дата и createdAt заметки неизменяемы, обновляются только mood и text
	options := []service.NoteOption{}

	if request.Mood != nil {
		mood := chal.Mood(*request.Mood)
		if !chal.ValidMood(mood) {
			responseWithError(w, http.StatusBadRequest, "неизвестное настроение")
			return
		}
		options = append(options, service.WithNoteMood(mood))
	}

	if request.Text != nil {
		options = append(options, service.WithNoteText(*request.Text))
	}

	logger.Info("HTTP: Вызов сервиса обновления заметки")

	if err := s.ChallengeService.UpdateNoteInChallenge(r.Context(), challengeID, noteID, options...); err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "update_note"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Заметка обновлена",
		zap.String("challenge_id", challengeID.String()),
		zap.String("note_id", noteID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (s *ChallengeHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	challengeID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	noteID, ok := parseIDParam(w, r, "noteId")
	if !ok {
		return
	}

	logger.Info("HTTP: Вызов сервиса удаления заметки")

	if err := s.ChallengeService.DeleteNoteFromChallenge(r.Context(), challengeID, noteID); err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "delete_note"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Заметка удалена",
		zap.String("challenge_id", challengeID.String()),
		zap.String("note_id", noteID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}
