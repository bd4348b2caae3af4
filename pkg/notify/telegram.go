package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrMissingCredentials is returned by Telegram.Send when the bot
// token or chat id is empty. No network call is made in that case.
var ErrMissingCredentials = errors.New("telegram bot token or chat id not configured")

const telegramSendTimeout = 10 * time.Second

// ChatSettings is the slice of the daemon config the Telegram channel
// needs. Values are read on every Send so a SIGHUP config reload
// applies without rebuilding the channel.
type ChatSettings interface {
	TelegramAPIHost() string
	TelegramChatID() string
	BotToken() string
}

// Telegram sends messages through the Telegram Bot API:
// POST https://<host>/bot<token>/sendMessage with {"chat_id", "text"}.
// One attempt per notification, no retries.
type Telegram struct {
	conf ChatSettings

	// baseURL overrides https://<TelegramAPIHost> when set (tests).
	baseURL string

	httpClient *http.Client
}

func NewTelegram(conf ChatSettings) *Telegram {
	return &Telegram{
		conf: conf,
		httpClient: &http.Client{
			Timeout: telegramSendTimeout,
		},
	}
}

func (t *Telegram) Name() string {
	return "telegram"
}

// Send posts the message text to the configured chat. The title is
// ignored; Telegram messages have no separate title field.
func (t *Telegram) Send(_, message string) error {
	token := t.conf.BotToken()
	chatID := t.conf.TelegramChatID()
	if token == "" || chatID == "" {
		return ErrMissingCredentials
	}

	payload := struct {
		ChatID string `json:"chat_id"`
		Text   string `json:"text"`
	}{
		ChatID: chatID,
		Text:   "🔋 " + message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sendMessage payload: %w", err)
	}

	base := t.baseURL
	if base == "" {
		base = "https://" + t.conf.TelegramAPIHost()
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", base, token)
	resp, err := t.httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("telegram returned %s", resp.Status)
	}

	return nil
}
