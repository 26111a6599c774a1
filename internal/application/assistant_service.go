package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/monastery360/service-travel/pkg/domain"
	"go.uber.org/zap"
)

// TextGenerator produces text from a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, prompt string, temperature float32) (string, error)
}

// Persona selects the system prompt used for chat.
type Persona string

const (
	PersonaAssistant Persona = "assistant"
	PersonaGuide     Persona = "guide"
)

const (
	chatTemperature      float32 = 1.0
	itineraryTemperature float32 = 0.7

	MsgMessageRequired    = "Message is required and must be a string"
	MsgPreferenceRequired = "Please provide a preference."
	MsgNoItinerary        = "No itinerary generated."
	MsgAPIConfiguration   = "API configuration error"
	MsgAPIAuthentication  = "API authentication failed"
	MsgAPIQuota           = "API quota exceeded. Please try again later."
	MsgChatFailed         = "Failed to generate response"
	MsgItineraryFailed    = "Failed to generate itinerary."
)

const assistantPrompt = `You are an AI Heritage Guide specializing in Sikkim's monasteries and Buddhist culture. You have deep knowledge about:

- Sikkim's major monasteries: Rumtek, Pemayangtse, Tashiding, Enchey, Do-drul Chorten, Dubdi, etc.
- Buddhist festivals and ceremonies like Bumchu, Saga Dawa, Losar, Phang Lhabsol
- Cultural etiquette and traditions
- Best visiting times and travel tips
- Historical significance and architectural details
- Meditation practices and spiritual aspects
- Local legends and stories
- Practical information like permits, accessibility, accommodation

Guidelines for responses:
- Be friendly, informative, and enthusiastic about Sikkim's heritage
- Keep responses concise but comprehensive (2-4 sentences typically)
- Focus on practical information mixed with cultural insights
- Use engaging storytelling when appropriate
- If asked about non-Sikkim topics, gently redirect while being helpful
- Always encourage cultural respect and responsible tourism
- Share interesting historical details and local perspectives

Respond as if you're a knowledgeable local guide who deeply loves and respects Sikkim's Buddhist heritage.`

const guidePrompt = `You are an AI Heritage Guide specializing in Sikkim's monasteries and Buddhist culture. You have deep knowledge about:

- Sikkim's major monasteries: Rumtek, Pemayangtse, Tashiding, Enchey, Do-drul Chorten, etc.
- Buddhist festivals and ceremonies like Bumchu, Saga Dawa, Losar
- Cultural etiquette and traditions
- Best visiting times and travel tips
- Historical significance and architectural details
- Meditation practices and spiritual aspects

Respond in a friendly, informative manner. Keep responses concise but helpful (2-3 sentences typically). Focus on practical information mixed with cultural insights. If asked about non-Sikkim monastery topics, gently redirect back to Sikkim's heritage while still being helpful.`

const itineraryPrompt = `
You are a travel assistant for Sikkim. A user says: "%s".
Create a detailed itinerary for the day including:
- Morning activities (with average time spent)
- Lunch suggestions (with nearby restaurants)
- Afternoon activities or festivals
- Evening suggestions
Make it easy to read in blocks, include times, locations, and activity descriptions.
`

// ChatMessage is one prior turn of a conversation.
type ChatMessage struct {
	Text  string `json:"text"`
	IsBot bool   `json:"isBot"`
}

// ChatRequest is a chat turn with its history.
type ChatRequest struct {
	Message             string        `json:"message"`
	ConversationHistory []ChatMessage `json:"conversationHistory"`
	Persona             Persona       `json:"persona"`
}

// AssistantService proxies chat and itinerary requests to a text generator.
type AssistantService struct {
	generator TextGenerator
	logger    *zap.Logger
}

// NewAssistantService creates a new AssistantService. A nil generator means
// no API key is configured and every call fails with a configuration error.
func NewAssistantService(generator TextGenerator, logger *zap.Logger) *AssistantService {
	return &AssistantService{generator: generator, logger: logger}
}

// Chat answers req.Message in the context of the conversation so far.
func (s *AssistantService) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", domain.NewValidationError(MsgMessageRequired)
	}
	if s.generator == nil {
		return "", domain.NewConfigurationError(MsgAPIConfiguration)
	}

	text, err := s.generator.Generate(ctx, systemPromptFor(req.Persona), buildChatPrompt(req), chatTemperature)
	if err == nil && text == "" {
		err = errors.New("empty response from Gemini API")
	}
	if err != nil {
		s.logger.Error("chat generation failed", zap.Error(err))
		return "", classifyGenerationError(err, MsgChatFailed)
	}
	return text, nil
}

// Itinerary drafts a one-day plan for the stated preference.
func (s *AssistantService) Itinerary(ctx context.Context, preference string) (string, error) {
	if strings.TrimSpace(preference) == "" {
		return "", domain.NewValidationError(MsgPreferenceRequired)
	}
	if s.generator == nil {
		return "", domain.NewConfigurationError(MsgAPIConfiguration)
	}

	text, err := s.generator.Generate(ctx, "", fmt.Sprintf(itineraryPrompt, preference), itineraryTemperature)
	if err != nil {
		s.logger.Error("itinerary generation failed", zap.Error(err))
		return "", classifyGenerationError(err, MsgItineraryFailed)
	}
	if text == "" {
		return MsgNoItinerary, nil
	}
	return text, nil
}

func systemPromptFor(p Persona) string {
	if p == PersonaGuide {
		return guidePrompt
	}
	return assistantPrompt
}

func buildChatPrompt(req ChatRequest) string {
	var b strings.Builder
	for _, m := range req.ConversationHistory {
		if m.IsBot {
			b.WriteString("Assistant: ")
		} else {
			b.WriteString("User: ")
		}
		b.WriteString(m.Text)
		b.WriteByte('\n')
	}
	b.WriteString("User: ")
	b.WriteString(req.Message)
	return b.String()
}

// classifyGenerationError maps generator failures by their message text.
func classifyGenerationError(err error, fallback string) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key"):
		return domain.NewUnauthorizedError(MsgAPIAuthentication, err)
	case strings.Contains(msg, "quota"), strings.Contains(msg, "limit"):
		return domain.NewRateLimitedError(MsgAPIQuota, err)
	default:
		return &domain.AppError{Code: domain.CodeInternal, Message: fallback, Err: err}
	}
}
