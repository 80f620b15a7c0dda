package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deusflow/briefing/internal/category"
	"github.com/deusflow/briefing/internal/metrics"
	"github.com/deusflow/briefing/internal/retry"
)

const defaultAPIURL = "https://api.telegram.org"

// ErrNotConfigured is returned when the bot token or chat id is missing.
var ErrNotConfigured = errors.New("telegram token or chat id not configured")

// Notifier posts the daily briefing links to one chat.
type Notifier struct {
	token   string
	chatID  string
	baseURL string
	apiURL  string
	client  *http.Client
	retry   retry.RetryConfig
	metrics *metrics.Metrics
	log     *slog.Logger
}

type Option func(*Notifier)

// WithAPIURL points the notifier at another Bot API host.
func WithAPIURL(u string) Option {
	return func(n *Notifier) { n.apiURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) { n.client = c }
}

func WithRetry(cfg retry.RetryConfig) Option {
	return func(n *Notifier) { n.retry = cfg }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(n *Notifier) { n.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) { n.log = l }
}

// New builds a notifier. baseURL is the public site root the page paths
// are appended to.
func New(token, chatID, baseURL string, opts ...Option) *Notifier {
	n := &Notifier{
		token:   token,
		chatID:  chatID,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiURL:  defaultAPIURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		retry:   retry.RetryConfig{MaxAttempts: 3, Delay: 2 * time.Second, Backoff: true},
		metrics: metrics.Global,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.log = n.log.With("component", "telegram")
	return n
}

// Configured reports whether both credentials are present.
func (n *Notifier) Configured() bool {
	return n.token != "" && n.chatID != ""
}

// FormatBriefing builds the HTML message listing one link per category in
// standard order. Categories missing from pages are left out.
func FormatBriefing(pages map[category.Standard]string, date, baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")

	parts := []string{
		fmt.Sprintf("<b>📰 일일 뉴스 브리핑 (%s)</b>", html.EscapeString(date)),
		"",
		"오늘의 주요 뉴스를 확인하세요!",
		"",
	}
	for _, std := range category.All() {
		rel, ok := pages[std]
		if !ok {
			continue
		}
		parts = append(parts,
			fmt.Sprintf("%s <b>%s</b>", category.Emoji(std), category.Label(std)),
			"🔗 "+baseURL+"/"+strings.TrimLeft(rel, "/"),
			"",
		)
	}
	parts = append(parts,
		fmt.Sprintf(`📚 <a href="%s/archive.html">아카이브 보기</a>`, baseURL),
		"",
		"<i>매일 오전 6시에 자동으로 업데이트됩니다.</i>",
	)
	return strings.Join(parts, "\n")
}

// SendBriefing formats and sends the briefing. The send is retried with
// exponential backoff; the last error is returned.
func (n *Notifier) SendBriefing(ctx context.Context, pages map[category.Standard]string, date string) error {
	if !n.Configured() {
		return ErrNotConfigured
	}

	text := FormatBriefing(pages, date, n.baseURL)
	n.log.Debug("briefing message", "text", text)

	attempt := 0
	err := retry.WithRetry(ctx, n.retry, func() error {
		attempt++
		if err := n.sendMessage(ctx, text); err != nil {
			n.log.Warn("send failed", "attempt", attempt, "error", err)
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("can't send message: %w", err)
	}

	n.metrics.IncrementTelegramMessagesSent()
	n.log.Info("briefing sent", "attempt", attempt, "categories", len(pages))
	return nil
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (n *Notifier) sendMessage(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:                n.chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("error make JSON: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		// the url embeds the token, keep it out of logs
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("error HTTP request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var out apiResponse
	_ = json.Unmarshal(raw, &out)

	if resp.StatusCode != http.StatusOK || !out.OK {
		if out.Description != "" {
			return fmt.Errorf("telegram API error: status %d: %s", resp.StatusCode, out.Description)
		}
		return fmt.Errorf("telegram API error: status %d", resp.StatusCode)
	}
	return nil
}
