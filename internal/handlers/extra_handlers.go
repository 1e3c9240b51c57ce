package handlers

import (
	"net/http"
	"time"

	"challengeTracker/internal/logger"
	"challengeTracker/internal/motivation"
	"challengeTracker/internal/service"

	"go.uber.org/zap"
)

func (s *ChallengeHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	stats, err := s.ChallengeService.Stats(r.Context())
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "stats"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Статистика собрана",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("stats", stats))
}

// GetSuggestions - единственная операция с внешним вызовом.
// Ошибка не ретраится, пользователь просто жмёт кнопку ещё раз.
func (s *ChallengeHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if s.Suggester == nil {
		responseWithError(w, http.StatusServiceUnavailable, "AI подсказки не настроены")
		return
	}

	suggestions, err := s.Suggester.Suggestions(r.Context())
	if err != nil {
		logger.Warn("HTTP: Не удалось получить AI подсказки",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		handleBusinessError(w, service.NewBusinessError("SUGGESTIONS_UNAVAILABLE", err.Error()))
		return
	}

	logger.Info("HTTP_OUT: Подсказки получены",
		zap.Int("count", len(suggestions)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("suggestions", suggestions))
}

func (s *ChallengeHandler) GetRandomQuote(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	responseWithJSON(w, http.StatusOK, toPayload("quote", motivation.Random()))
}
