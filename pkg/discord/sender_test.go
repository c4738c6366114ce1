package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		hex  string
		want int
	}{
		{"#5865F2", 0x5865F2},
		{"5865F2", 0x5865F2},
		{"#000000", 0},
		{"", 0},
		{"#not-a-color", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseColor(tt.hex), "input %q", tt.hex)
	}
}

func TestSendChannelPostsEmbed(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sender := NewSender(srv.URL, "")
	err := sender.SendChannel(context.Background(), "Mission assigned", "You were assigned to Recon", 0x5865F2)
	require.NoError(t, err)

	require.Len(t, got.Embeds, 1)
	assert.Equal(t, "Mission assigned", got.Embeds[0].Title)
	assert.Equal(t, "You were assigned to Recon", got.Embeds[0].Description)
	assert.Equal(t, 0x5865F2, got.Embeds[0].Color)
	assert.NotEmpty(t, got.Embeds[0].Timestamp)
}

func TestSendChannelSurfacesApiError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Invalid Webhook Token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := NewSender(srv.URL, "")
	err := sender.SendChannel(context.Background(), "t", "b", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSendChannelWithoutWebhookFails(t *testing.T) {
	sender := NewSender("", "")
	assert.Error(t, sender.SendChannel(context.Background(), "t", "b", 0))
}

func TestSendDMWithoutBotTokenFails(t *testing.T) {
	sender := NewSender("http://example.invalid", "")
	assert.Error(t, sender.SendDM(context.Background(), "42", "t", "b", 0))
}
