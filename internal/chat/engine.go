// Package chat wraps the OpenAI chat completion API behind the conversation
// engine of the legal assistant.
package chat

import (
	"context"
	"log"

	"github.com/sashabaranov/go-openai"
)

// User-facing fallback answers. Raw service errors must never reach the chat
// widget; the operator sees them in the log instead.
const (
	FallbackUnavailable = "متاسفانه در حال حاضر امکان پاسخگویی وجود ندارد. لطفاً بعداً تلاش کنید."
	FallbackInternal    = "یک خطای داخلی رخ داده است. لطفاً با پشتیبانی تماس بگیرید."
)

// answerTemperature biases the model toward deterministic, factual answers.
const answerTemperature = 0.3

// Turn is one prior message of the conversation history.
type Turn struct {
	Role    string `json:"role"` // system, user or assistant
	Content string `json:"content"`
}

// completionAPI is the slice of the OpenAI client used by the engine.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Engine builds the message sequence for each question and submits it to the
// completion service.
type Engine struct {
	api          completionAPI
	model        string
	systemPrompt string
}

// NewEngine creates an engine talking to the OpenAI API.
func NewEngine(apiKey, model, systemPrompt string) *Engine {
	return &Engine{
		api:          openai.NewClient(apiKey),
		model:        model,
		systemPrompt: systemPrompt,
	}
}

// Answer submits the question, preceded by the system prompt and any prior
// turns, and returns the completion text unmodified. The caller must pass a
// non-empty question; validation happens upstream at the gateway.
//
// On any service failure Answer returns a fixed Persian fallback string
// instead of an error: a broken chat backend must still show the user some
// answer rather than an error page.
func (e *Engine) Answer(ctx context.Context, question string, history []Turn) string {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: e.systemPrompt,
	})
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: question,
	})

	resp, err := e.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Messages:    messages,
		Temperature: answerTemperature,
	})
	if err != nil {
		log.Printf("[Chat] completion API error: %v", err)
		return FallbackUnavailable
	}
	if len(resp.Choices) == 0 {
		log.Printf("[Chat] completion returned no choices")
		return FallbackInternal
	}

	answer := resp.Choices[0].Message.Content
	log.Printf("[Chat] answer received (length %d), usage: prompt=%d completion=%d",
		len(answer), resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	return answer
}
