package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/atelier-mireille/backend/config"
)

// TelegramChannel delivers messages over the Telegram Bot API. It is the
// only implementation of Channel in production; tests point APIBaseURL at
// a local server.
type TelegramChannel struct {
	client  *http.Client
	baseURL string
	token   string
	chatID  string
}

func NewTelegramChannel(cfg config.NotifyConfig) *TelegramChannel {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	return &TelegramChannel{
		// dedicated short timeout so a stalled channel never turns into a
		// request timeout upstream
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		token:   cfg.BotToken,
		chatID:  cfg.ChatID,
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// SendText delivers a plain text message to the configured chat.
func (t *TelegramChannel) SendText(ctx context.Context, text string, chatID string) error {
	if chatID == "" {
		chatID = t.chatID
	}
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return t.do(req)
}

// SendPhoto uploads a local image file to the configured chat with a
// caption.
func (t *TelegramChannel) SendPhoto(ctx context.Context, path string, caption string, chatID string) error {
	if chatID == "" {
		chatID = t.chatID
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	_ = w.WriteField("chat_id", chatID)
	if caption != "" {
		_ = w.WriteField("caption", caption)
	}
	part, err := w.CreateFormFile("photo", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read photo: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish form: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendPhoto", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return t.do(req)
}

func (t *TelegramChannel) do(req *http.Request) error {
	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	var api apiResponse
	if err := json.Unmarshal(raw, &api); err != nil {
		return fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}
	if !api.OK {
		return fmt.Errorf("telegram error %d: %s", api.ErrorCode, api.Description)
	}
	return nil
}
