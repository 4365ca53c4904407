package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/tripflow/itinerary-backend-go/internal/models"
)

// LLMDurationInferrer asks a chat model for a duration estimate and falls
// back to the heuristic table when the call fails or returns something
// unusable. Optional: only constructed when an API key is configured.
type LLMDurationInferrer struct {
	client   *openai.Client
	model    string
	fallback *HeuristicDurationInferrer
}

// NewLLMDurationInferrer creates an OpenAI-backed duration inferrer
func NewLLMDurationInferrer(apiKey string, model string) *LLMDurationInferrer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &LLMDurationInferrer{
		client:   openai.NewClient(apiKey),
		model:    model,
		fallback: NewHeuristicDurationInferrer(),
	}
}

type llmDurationReply struct {
	Hours      float64 `json:"hours"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// InferDuration estimates the segment's duration via the chat model
func (l *LLMDurationInferrer) InferDuration(ctx context.Context, segment *models.Segment) (DurationEstimate, error) {
	prompt := fmt.Sprintf(
		`Estimate how long this travel segment typically lasts.
Type: %s
Name: %s
Respond with JSON only: {"hours": <number>, "confidence": <0..1>, "reason": "<short reason>"}`,
		segment.Type, segment.Name)

	resp, err := l.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: l.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		log.Printf("[LLMDurationInferrer] Falling back to heuristic: %v", err)
		return l.fallback.InferDuration(ctx, segment)
	}
	if len(resp.Choices) == 0 {
		return l.fallback.InferDuration(ctx, segment)
	}

	var reply llmDurationReply
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.Trim(content, "` \n")
	if err := json.Unmarshal([]byte(content), &reply); err != nil || reply.Hours <= 0 {
		log.Printf("[LLMDurationInferrer] Unusable reply %q, falling back to heuristic", content)
		return l.fallback.InferDuration(ctx, segment)
	}

	return DurationEstimate{
		Hours:      reply.Hours,
		Confidence: reply.Confidence,
		Reason:     reply.Reason,
	}, nil
}
