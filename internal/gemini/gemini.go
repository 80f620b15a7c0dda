package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/deusflow/briefing/internal/retry"
	"github.com/deusflow/briefing/internal/translate"
)

const (
	Provider     = "gemini"
	defaultModel = "gemini-1.5-flash"
	maxInput     = 6000
)

// Budget is consulted before every model call.
type Budget interface {
	Use(provider string) error
}

// generator is the part of the genai model the client needs.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Client is a translation backend backed by a Gemini model.
type Client struct {
	client *genai.Client
	model  generator
	budget Budget
}

func NewClient(ctx context.Context, apiKey string, budget Budget) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(defaultModel)
	model.SetTemperature(0.2)

	return &Client{client: client, model: model, budget: budget}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

func (c *Client) Name() string { return Provider }

// Translate renders text in natural Korean. An exhausted budget is
// reported as a permanent error so callers move on to the next backend.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if c.budget != nil {
		if err := c.budget.Use(Provider); err != nil {
			return "", retry.Permanent(err)
		}
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(buildPrompt(text)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	out, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return translate.SanitizeAIText(out), nil
}

func buildPrompt(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) > maxInput {
		text = string([]rune(text)[:maxInput])
	}

	return fmt.Sprintf(`다음 뉴스 텍스트를 자연스러운 한국어로 번역하세요.

요구사항:
- 원문의 의미와 보도 문체를 유지합니다.
- 브랜드, 기관, 인명은 통용되는 한국어 표기를 사용합니다.
- 번역문만 출력하고 설명이나 주석은 붙이지 않습니다.

텍스트:
%s`, text)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no response from Gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", errors.New("empty response from Gemini")
	}
	return out, nil
}
