package transcription

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

type stubAudioAPI struct {
	resp   openai.AudioResponse
	err    error
	gotReq openai.AudioRequest
	calls  int
}

func (s *stubAudioAPI) CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
	s.calls++
	s.gotReq = req
	return s.resp, s.err
}

func newTestClient(api *stubAudioAPI) *Client {
	return &Client{api: api, model: "gpt-4o-mini-transcribe", language: "fa"}
}

func TestTranscribe(t *testing.T) {
	api := &stubAudioAPI{resp: openai.AudioResponse{Text: " متن نمونه \n"}}
	c := newTestClient(api)

	got, err := c.Transcribe(context.Background(), []byte("wav-bytes"))
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if got != "متن نمونه" {
		t.Errorf("expected trimmed transcript, got %q", got)
	}

	if api.gotReq.Model != "gpt-4o-mini-transcribe" {
		t.Errorf("expected STT model in request, got %q", api.gotReq.Model)
	}
	if api.gotReq.Language != "fa" {
		t.Errorf("expected Persian target language, got %q", api.gotReq.Language)
	}
	if api.gotReq.Format != openai.AudioResponseFormatText {
		t.Errorf("expected plain-text response format, got %q", api.gotReq.Format)
	}
	if api.gotReq.Reader == nil {
		t.Error("expected audio bytes to be sent as a reader")
	}
}

func TestTranscribeEmptyResponse(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		api := &stubAudioAPI{resp: openai.AudioResponse{Text: text}}
		c := newTestClient(api)

		_, err := c.Transcribe(context.Background(), []byte("wav-bytes"))
		if !errors.Is(err, ErrEmptyTranscript) {
			t.Errorf("text %q: expected ErrEmptyTranscript, got %v", text, err)
		}
	}
}

func TestTranscribeServiceError(t *testing.T) {
	api := &stubAudioAPI{err: fmt.Errorf("connection reset by peer")}
	c := newTestClient(api)

	_, err := c.Transcribe(context.Background(), []byte("wav-bytes"))

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if !strings.Contains(svcErr.Error(), "connection reset by peer") {
		t.Errorf("expected wrapped error to carry the original message, got %q", svcErr.Error())
	}
	if api.calls != 1 {
		t.Errorf("expected exactly one attempt, got %d", api.calls)
	}
}
