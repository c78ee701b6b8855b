// Package transcription wraps the OpenAI speech-to-text API.
package transcription

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ErrEmptyTranscript is returned when the model produced no text for the clip.
var ErrEmptyTranscript = errors.New("مدل هیچ متنی برنگرداند")

// ServiceError wraps any transport or API failure of the transcription
// service. Lower-level error types never leak past this package.
type ServiceError struct {
	Reason string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("خطا در تبدیل گفتار: %s", e.Reason)
}

// audioAPI is the slice of the OpenAI client used by Client.
type audioAPI interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// Client submits normalized WAV audio for transcription. A single attempt per
// call; retrying is the caller's decision.
type Client struct {
	api      audioAPI
	model    string
	language string
}

// NewClient creates a transcription client for the given model and target
// language.
func NewClient(apiKey, model, language string) *Client {
	return &Client{
		api:      openai.NewClient(apiKey),
		model:    model,
		language: language,
	}
}

// Transcribe sends the WAV byte buffer to the speech-to-text endpoint and
// returns the plain-text transcript. Returns ErrEmptyTranscript when the model
// answered with nothing but whitespace, and *ServiceError for any API failure.
func (c *Client) Transcribe(ctx context.Context, wavBytes []byte) (string, error) {
	start := time.Now()

	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		FilePath: "clip.wav",
		Reader:   bytes.NewReader(wavBytes),
		Model:    c.model,
		Language: c.language,
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		log.Printf("[STT] transcription API error: %v", err)
		return "", &ServiceError{Reason: err.Error()}
	}

	transcript := strings.TrimSpace(resp.Text)
	if transcript == "" {
		log.Printf("[STT] empty transcript returned")
		return "", ErrEmptyTranscript
	}

	log.Printf("[STT] transcription successful: length=%d, duration=%v", len(transcript), time.Since(start))
	return transcript, nil
}
