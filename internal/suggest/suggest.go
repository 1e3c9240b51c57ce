package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"challengeTracker/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrNoSuggestions возвращается при пустом или битом ответе модели.
// Текст фиксированный - его показывает UI.
var ErrNoSuggestions = errors.New("AI did not return any suggestions.")

const defaultModel = "gemini-2.0-flash"

const prompt = `You are an expert in personal development and motivation.

Generate 3 unique, creative, and engaging ideas for personal challenges that a person could undertake for self-improvement.

The challenges should cover different areas like health, learning, creativity, or productivity.
Keep the titles concise and inspiring. Max 50 characters per title.

Provide a realistic duration in days for each challenge (e.g., 7, 14, 30, 90).

Return the output as a structured JSON object containing a list of exactly 3 suggestions.`

type Suggestion struct {
	Title        string `json:"title"`
	DurationDays int    `json:"durationDays"`
}

type suggestionsOutput struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// Client - одноразовый запрос-ответ к Gemini, никакого состояния
// челленджей не трогает. Ошибка просто отдаётся пользователю, ретраев нет.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("не задан API ключ для AI подсказок")
	}

	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("создание genai клиента: %w", err)
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// Suggestions запрашивает ровно 3 идеи челленджей.
// Входных параметров нет, схема ответа задана жёстко.
func (c *Client) Suggestions(ctx context.Context) ([]Suggestion, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"suggestions": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"title":        {Type: genai.TypeString},
							"durationDays": {Type: genai.TypeInteger},
						},
						Required: []string{"title", "durationDays"},
					},
				},
			},
			Required: []string{"suggestions"},
		},
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		logger.Warn("Suggest: Ошибка запроса к модели", zap.Error(err))
		return nil, fmt.Errorf("запрос подсказок: %w", err)
	}

	return ParseSuggestions([]byte(result.Text()))
}

// ParseSuggestions проверяет контракт ответа: ровно 3 подсказки,
// непустые заголовки, длительность от 1 дня
func ParseSuggestions(raw []byte) ([]Suggestion, error) {
	var output suggestionsOutput
	if err := json.Unmarshal(raw, &output); err != nil {
		return nil, ErrNoSuggestions
	}

	if len(output.Suggestions) != 3 {
		return nil, ErrNoSuggestions
	}

	for _, s := range output.Suggestions {
		if s.Title == "" || s.DurationDays < 1 {
			return nil, ErrNoSuggestions
		}
	}

	return output.Suggestions, nil
}

// Close ничего не освобождает: genai-клиент не держит соединений,
// метод оставлен для симметрии жизненного цикла
func (c *Client) Close() error {
	return nil
}
