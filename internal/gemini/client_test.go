package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/monastery360/service-travel/internal/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_sendsPromptAndTrimsText(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-test:generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"  Visit Rumtek at dawn.  "}]}}]}`))
	}))
	t.Cleanup(srv.Close)

	client, err := gemini.NewClient(context.Background(), "test-key", "gemini-test", gemini.WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "You are a guide.", "User: hello", 0.7)
	require.NoError(t, err)

	assert.Equal(t, "Visit Rumtek at dawn.", text)
	assert.Contains(t, body, "systemInstruction")
	assert.Contains(t, body, "contents")
}

func TestGenerate_upstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted (e.g. check quota).","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	t.Cleanup(srv.Close)

	client, err := gemini.NewClient(context.Background(), "test-key", "gemini-test", gemini.WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "", "hello", 0.7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}
