package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const apiBase = "https://discord.com/api/v10"

// ParseColor converts a "#RRGGBB" hex string to the integer form Discord
// embeds expect. Unparseable input yields 0 (no accent color).
func ParseColor(hex string) int {
	hex = strings.TrimPrefix(hex, "#")
	v, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0
	}
	return int(v)
}

// Embed is the subset of Discord's embed object the platform sends.
type Embed struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Color       int    `json:"color,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
}

type webhookPayload struct {
	Embeds []Embed `json:"embeds"`
}

// Sender posts notification embeds to Discord. WebhookURL feeds the shared
// channel; BotToken enables direct messages to individual users.
type Sender struct {
	webhookURL string
	botToken   string
	client     *http.Client
}

func NewSender(webhookURL, botToken string) *Sender {
	return &Sender{
		webhookURL: webhookURL,
		botToken:   botToken,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// SendChannel posts an embed to the configured webhook channel.
func (s *Sender) SendChannel(ctx context.Context, title, body string, color int) error {
	if s.webhookURL == "" {
		return fmt.Errorf("discord webhook URL not configured")
	}

	payload := webhookPayload{
		Embeds: []Embed{{
			Title:       title,
			Description: body,
			Color:       color,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}},
	}

	return s.post(ctx, s.webhookURL, payload, "")
}

// SendDM opens a DM channel with the Discord user and posts the embed there.
// Requires a bot token.
func (s *Sender) SendDM(ctx context.Context, discordUserId, title, body string, color int) error {
	if s.botToken == "" {
		return fmt.Errorf("discord bot token not configured")
	}

	channelId, err := s.openDMChannel(ctx, discordUserId)
	if err != nil {
		return err
	}

	payload := webhookPayload{
		Embeds: []Embed{{
			Title:       title,
			Description: body,
			Color:       color,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}},
	}

	endpoint := fmt.Sprintf("%s/channels/%s/messages", apiBase, channelId)
	return s.post(ctx, endpoint, payload, "Bot "+s.botToken)
}

func (s *Sender) openDMChannel(ctx context.Context, discordUserId string) (string, error) {
	reqBody, err := json.Marshal(map[string]string{"recipient_id": discordUserId})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", apiBase+"/users/@me/channels", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bot "+s.botToken)
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error opening DM channel, code %d, body %s", res.StatusCode, string(resByte))
	}

	var channel struct {
		Id string `json:"id"`
	}
	if err := json.Unmarshal(resByte, &channel); err != nil {
		return "", err
	}

	return channel.Id, nil
}

func (s *Sender) post(ctx context.Context, endpoint string, payload interface{}, authorization string) error {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return err
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		resByte, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error from discord response, code %d, body %s", res.StatusCode, string(resByte))
	}

	return nil
}
