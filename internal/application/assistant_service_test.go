package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/monastery360/service-travel/internal/application"
	"github.com/monastery360/service-travel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type generateCall struct {
	systemPrompt string
	prompt       string
	temperature  float32
}

type fakeGenerator struct {
	text  string
	err   error
	calls []generateCall
}

func (f *fakeGenerator) Generate(_ context.Context, systemPrompt, prompt string, temperature float32) (string, error) {
	f.calls = append(f.calls, generateCall{systemPrompt: systemPrompt, prompt: prompt, temperature: temperature})
	return f.text, f.err
}

func TestChat_buildsConversationPrompt(t *testing.T) {
	gen := &fakeGenerator{text: "Rumtek is best visited in spring."}
	svc := application.NewAssistantService(gen, zap.NewNop())

	got, err := svc.Chat(context.Background(), application.ChatRequest{
		Message: "When should I visit?",
		ConversationHistory: []application.ChatMessage{
			{Text: "Welcome!", IsBot: true},
			{Text: "Tell me about Rumtek", IsBot: false},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Rumtek is best visited in spring.", got)
	require.Len(t, gen.calls, 1)
	assert.Equal(t, "Assistant: Welcome!\nUser: Tell me about Rumtek\nUser: When should I visit?", gen.calls[0].prompt)
	assert.Contains(t, gen.calls[0].systemPrompt, "Phang Lhabsol")
}

func TestChat_guidePersona(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	svc := application.NewAssistantService(gen, zap.NewNop())

	_, err := svc.Chat(context.Background(), application.ChatRequest{Message: "hi", Persona: application.PersonaGuide})

	require.NoError(t, err)
	assert.Contains(t, gen.calls[0].systemPrompt, "2-3 sentences")
	assert.Equal(t, "User: hi", gen.calls[0].prompt)
}

func TestChat_errors(t *testing.T) {
	cases := []struct {
		name    string
		gen     application.TextGenerator
		message string
		code    domain.ErrorCode
		msg     string
	}{
		{"missing message", &fakeGenerator{}, "  ", domain.CodeValidation, application.MsgMessageRequired},
		{"no api key", nil, "hi", domain.CodeConfiguration, application.MsgAPIConfiguration},
		{"bad key", &fakeGenerator{err: errors.New("API key not valid")}, "hi", domain.CodeUnauthorized, application.MsgAPIAuthentication},
		{"quota", &fakeGenerator{err: errors.New("Resource has been exhausted (e.g. check quota)")}, "hi", domain.CodeRateLimited, application.MsgAPIQuota},
		{"rate limit", &fakeGenerator{err: errors.New("rate limit reached")}, "hi", domain.CodeRateLimited, application.MsgAPIQuota},
		{"other", &fakeGenerator{err: errors.New("connection reset")}, "hi", domain.CodeInternal, application.MsgChatFailed},
		{"empty text", &fakeGenerator{}, "hi", domain.CodeInternal, application.MsgChatFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := application.NewAssistantService(tc.gen, zap.NewNop())

			_, err := svc.Chat(context.Background(), application.ChatRequest{Message: tc.message})

			var appErr *domain.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, tc.msg, appErr.Message)
		})
	}
}

func TestItinerary(t *testing.T) {
	t.Run("empty preference never calls generator", func(t *testing.T) {
		gen := &fakeGenerator{text: "unused"}
		svc := application.NewAssistantService(gen, zap.NewNop())

		_, err := svc.Itinerary(context.Background(), "")

		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
		assert.Equal(t, application.MsgPreferenceRequired, err.Error())
		assert.Empty(t, gen.calls)
	})

	t.Run("prompt carries preference", func(t *testing.T) {
		gen := &fakeGenerator{text: "8:00 AM - Rumtek Monastery"}
		svc := application.NewAssistantService(gen, zap.NewNop())

		got, err := svc.Itinerary(context.Background(), "quiet monasteries near Gangtok")

		require.NoError(t, err)
		assert.Equal(t, "8:00 AM - Rumtek Monastery", got)
		require.Len(t, gen.calls, 1)
		assert.Contains(t, gen.calls[0].prompt, `A user says: "quiet monasteries near Gangtok".`)
		assert.Empty(t, gen.calls[0].systemPrompt)
		assert.Equal(t, float32(0.7), gen.calls[0].temperature)
	})

	t.Run("empty text", func(t *testing.T) {
		svc := application.NewAssistantService(&fakeGenerator{}, zap.NewNop())

		got, err := svc.Itinerary(context.Background(), "festivals")

		require.NoError(t, err)
		assert.Equal(t, application.MsgNoItinerary, got)
	})

	t.Run("upstream quota", func(t *testing.T) {
		svc := application.NewAssistantService(&fakeGenerator{err: errors.New("quota exceeded")}, zap.NewNop())

		_, err := svc.Itinerary(context.Background(), "festivals")

		assert.Equal(t, domain.CodeRateLimited, domain.CodeOf(err))
	})
}
