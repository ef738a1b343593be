package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/brand-studio-api/internal/models"
)

// CopyBrief is what the copy generator writes from.
type CopyBrief struct {
	ProjectName string
	Description string
	Purpose     models.CopyPurpose
	Brief       string
	Tone        string
	Count       int
}

// CopyGenerator drafts copy snippets.
type CopyGenerator interface {
	GenerateCopy(ctx context.Context, brief CopyBrief) ([]string, error)
}

// AIService drafts copy with OpenAI chat completions.
type AIService struct {
	client *openai.Client
}

// NewAIService returns nil when apiKey is empty so callers can treat AI
// generation as switched off.
func NewAIService(apiKey string) *AIService {
	if apiKey == "" {
		return nil
	}
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateCopy asks the model for brief.Count variants and returns them.
func (s *AIService) GenerateCopy(ctx context.Context, brief CopyBrief) ([]string, error) {
	if s == nil || s.client == nil {
		return nil, ErrAINotConfigured
	}

	prompt := fmt.Sprintf(`You are a brand copywriter. Write %d distinct %s options for the brand below.

Brand: %s
About: %s
Tone: %s
Brief: %s

Return only a JSON array of strings, for example ["first option", "second option"]. No commentary.`,
		brief.Count,
		strings.ToLower(strings.ReplaceAll(string(brief.Purpose), "_", " ")),
		brief.ProjectName,
		brief.Description,
		orDefault(brief.Tone, "on-brand"),
		brief.Brief,
	)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.8,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseCopyOptions(resp.Choices[0].Message.Content)
}

// parseCopyOptions reads the JSON array out of a completion, tolerating a
// surrounding markdown fence.
func parseCopyOptions(content string) ([]string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var options []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &options); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	out := options[:0]
	for _, o := range options {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out, nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
