package analysis

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

// LLMClient drafts item commentary. Both the API-backed and mock
// implementations satisfy it.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const commentarySystemPrompt = `You are a psychometrician reviewing pre-calibrated ENEM exam items.
Given the 3-Parameter Logistic parameters of an item (discrimination a, difficulty b on the theta scale, guessing c),
write a short technical commentary (2-4 sentences, Portuguese or English matching the request) on what the parameters
imply about the item: who it discriminates between, where on the proficiency scale it is informative,
and whether the guessing floor is consistent with a five-alternative multiple-choice item.
Respond with the commentary text only, no preamble and no markdown.`

// BuildCommentaryPrompt renders the user prompt for a parameter triple.
func BuildCommentaryPrompt(a, b, c float64) string {
	return fmt.Sprintf(
		"Item parameters: a=%.3f (%s), b=%.3f (%s), c=%.3f (%s). Write the commentary.",
		a, DescribeDiscrimination(a),
		b, DescribeDifficulty(b),
		c, DescribeGuessing(c),
	)
}

// ── APIClient — Anthropic SDK ──────────────────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   1024,
		Temperature: param.NewOpt(0.3),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return "", err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}
	if responseText == "" {
		return "", fmt.Errorf("no text content in API response")
	}

	return strings.TrimSpace(responseText), nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return "Mock commentary: " + userPrompt, nil
}
