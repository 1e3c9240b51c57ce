package suggest_test

import (
	"context"
	"testing"

	"challengeTracker/internal/suggest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseSuggestions тестирует контракт ответа модели
func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expectError bool
	}{
		{
			name: "valid - exactly 3 suggestions",
			raw: `{"suggestions": [
				{"title": "30 дней без сахара", "durationDays": 30},
				{"title": "Читать 20 минут в день", "durationDays": 14},
				{"title": "Холодный душ", "durationDays": 7}
			]}`,
			expectError: false,
		},
		{
			name:        "broken json",
			raw:         `{suggestions`,
			expectError: true,
		},
		{
			name:        "empty list",
			raw:         `{"suggestions": []}`,
			expectError: true,
		},
		{
			name: "too few",
			raw: `{"suggestions": [
				{"title": "Одна идея", "durationDays": 7}
			]}`,
			expectError: true,
		},
		{
			name: "too many",
			raw: `{"suggestions": [
				{"title": "A", "durationDays": 7},
				{"title": "B", "durationDays": 7},
				{"title": "C", "durationDays": 7},
				{"title": "D", "durationDays": 7}
			]}`,
			expectError: true,
		},
		{
			name: "empty title",
			raw: `{"suggestions": [
				{"title": "", "durationDays": 7},
				{"title": "B", "durationDays": 7},
				{"title": "C", "durationDays": 7}
			]}`,
			expectError: true,
		},
		{
			name: "non-positive duration",
			raw: `{"suggestions": [
				{"title": "A", "durationDays": 0},
				{"title": "B", "durationDays": 7},
				{"title": "C", "durationDays": 7}
			]}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := suggest.ParseSuggestions([]byte(tt.raw))

			if tt.expectError {
				assert.ErrorIs(t, err, suggest.ErrNoSuggestions)
				assert.Equal(t, "AI did not return any suggestions.", err.Error())
				return
			}

			require.NoError(t, err)
			require.Len(t, got, 3)
			assert.Equal(t, "30 дней без сахара", got[0].Title)
			assert.Equal(t, 30, got[0].DurationDays)
		})
	}
}

// TestNewClient тестирует обязательность API ключа
func TestNewClient(t *testing.T) {
	_, err := suggest.NewClient(context.Background(), "", "gemini-2.0-flash")
	assert.Error(t, err)
}

// TestClient_Close тестирует, что закрытие безопасно в любом состоянии
func TestClient_Close(t *testing.T) {
	assert.NoError(t, (&suggest.Client{}).Close())
}
