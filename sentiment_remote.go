package bankpulse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// remoteModel classifies sentiment with a hosted large language model. It
// sits first in the chain; when no API key is configured the model reports
// itself unavailable and the chain moves on. Any request or parse failure
// declines the input rather than surfacing an error.
type remoteModel struct {
	client    *openai.Client
	modelName string
	maxChars  int
	logger    *zap.Logger
}

type remoteVerdict struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

const remotePrompt = `Classify the sentiment of the app review below.
Return only a JSON object of the form {"label": "Positive|Negative|Neutral", "score": 0.0-1.0}
where score is your confidence in the chosen label.

Review: %s`

func newRemoteModel(config ClassifierConfig, logger *zap.Logger) *remoteModel {
	m := &remoteModel{
		modelName: config.RemoteModelName,
		maxChars:  config.MaxRemoteChars,
		logger:    logger,
	}
	if config.RemoteAPIKey != "" {
		m.client = openai.NewClient(config.RemoteAPIKey)
	}
	return m
}

func (m *remoteModel) Name() string    { return "remote" }
func (m *remoteModel) Available() bool { return m.client != nil }

func (m *remoteModel) TryClassify(text string) (SentimentResult, bool) {
	if m.client == nil || strings.TrimSpace(text) == "" {
		return SentimentResult{}, false
	}

	// Only the remote model sees truncated text.
	if m.maxChars > 0 && len(text) > m.maxChars {
		text = text[:m.maxChars]
	}

	resp, err := m.client.CreateChatCompletion(
		context.Background(),
		openai.ChatCompletionRequest{
			Model: m.modelName,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf(remotePrompt, text),
				},
			},
			MaxTokens:   60,
			Temperature: 0,
		},
	)
	if err != nil {
		m.logger.Warn("remote sentiment request failed", zap.Error(err))
		return SentimentResult{}, false
	}
	if len(resp.Choices) == 0 {
		return SentimentResult{}, false
	}

	var verdict remoteVerdict
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.Trim(raw, "` \n")
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		m.logger.Warn("unparseable remote sentiment response",
			zap.Error(err),
			zap.String("response", raw))
		return SentimentResult{}, false
	}

	label, ok := parseSentimentLabel(verdict.Label)
	if !ok {
		return SentimentResult{}, false
	}
	return SentimentResult{Label: label, Score: clamp01(verdict.Score)}, true
}

func parseSentimentLabel(s string) (SentimentLabel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return Positive, true
	case "negative":
		return Negative, true
	case "neutral":
		return Neutral, true
	default:
		return "", false
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
