package api

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"qanunyar/internal/audio"
	"qanunyar/internal/chat"
	"qanunyar/internal/config"
	"qanunyar/internal/transcription"
	"qanunyar/internal/utils"

	"github.com/gin-gonic/gin"
)

// OriginHeader carries the caller-origin token of the embedding website.
const OriginHeader = "X-Domain"

const internalErrorMsg = "خطای داخلی رخ داده است"

// Normalizer decodes an uploaded clip into canonical PCM audio.
type Normalizer interface {
	Normalize(raw []byte, declaredName, mimeHint string) (*audio.DecodedAudio, error)
}

// Transcriber converts normalized WAV audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, wavBytes []byte) (string, error)
}

// Answerer produces the assistant's answer for a question.
type Answerer interface {
	Answer(ctx context.Context, question string, history []chat.Turn) string
}

// Handlers holds the request gateway's dependencies. All of them are
// read-only after construction.
type Handlers struct {
	cfg         *config.Config
	normalizer  Normalizer
	transcriber Transcriber
	engine      Answerer
}

func NewHandlers(cfg *config.Config, n Normalizer, t Transcriber, e Answerer) *Handlers {
	return &Handlers{
		cfg:         cfg,
		normalizer:  n,
		transcriber: t,
		engine:      e,
	}
}

func (h *Handlers) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.healthCheck)

	bot := r.Group("/chatbot")
	{
		bot.POST("/responses", h.chatResponses)
		bot.POST("/audio", h.chatAudio)
	}
}

func (h *Handlers) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "qanunyar-backend",
	})
}

type chatRequest struct {
	Question string `json:"question"`
}

// chatResponses handles POST /chatbot/responses
func (h *Handlers) chatResponses(c *gin.Context) {
	origin := c.GetHeader(OriginHeader)
	if !h.cfg.IsAuthorizedOrigin(origin) {
		log.Printf("[Gateway] rejected origin %q", origin)
		utils.Error(c, http.StatusForbidden, "دامنه مجاز نیست")
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "سؤال خالی است")
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		utils.Error(c, http.StatusBadRequest, "سؤال خالی است")
		return
	}

	// History is supported by the engine but not wired from callers yet; the
	// widget keeps no session state.
	answer := h.engine.Answer(c.Request.Context(), question, nil)
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// chatAudio handles POST /chatbot/audio
func (h *Handlers) chatAudio(c *gin.Context) {
	if h.cfg.CheckAudioOrigin {
		origin := c.GetHeader(OriginHeader)
		if !h.cfg.IsAuthorizedOrigin(origin) {
			log.Printf("[Gateway] rejected origin %q on audio endpoint", origin)
			utils.Error(c, http.StatusForbidden, "دامنه مجاز نیست")
			return
		}
	}

	file, err := c.FormFile("audio")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "فایل audio ارسال نشده است")
		return
	}
	if file.Size > h.cfg.MaxUploadBytes {
		utils.Error(c, http.StatusBadRequest, "حجم فایل صوتی بیش از حد مجاز است")
		return
	}

	src, err := file.Open()
	if err != nil {
		log.Printf("[Gateway] failed to open uploaded file: %v", err)
		utils.Error(c, http.StatusInternalServerError, internalErrorMsg)
		return
	}
	raw, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		log.Printf("[Gateway] failed to read uploaded file: %v", err)
		utils.Error(c, http.StatusInternalServerError, internalErrorMsg)
		return
	}

	decoded, err := h.normalizer.Normalize(raw, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		h.rejectAudio(c, err)
		return
	}

	wavBytes, err := decoded.EncodeWAV()
	if err != nil {
		log.Printf("[Gateway] WAV encode failed: %v", err)
		utils.Error(c, http.StatusInternalServerError, internalErrorMsg)
		return
	}

	transcript, err := h.transcriber.Transcribe(c.Request.Context(), wavBytes)
	if err != nil {
		h.rejectAudio(c, err)
		return
	}

	answer := h.engine.Answer(c.Request.Context(), transcript, nil)
	c.JSON(http.StatusOK, gin.H{
		"transcript": transcript,
		"answer":     answer,
	})
}

// rejectAudio maps pipeline failures to responses. Untrusted-input failures
// get a 400 with the error's own message; anything else stays a generic 500.
func (h *Handlers) rejectAudio(c *gin.Context, err error) {
	var decodeErr *audio.DecodingError
	var durErr *audio.DurationExceededError
	var svcErr *transcription.ServiceError

	switch {
	case errors.Is(err, audio.ErrEmptyInput),
		errors.As(err, &decodeErr),
		errors.As(err, &durErr),
		errors.Is(err, transcription.ErrEmptyTranscript),
		errors.As(err, &svcErr):
		log.Printf("[Gateway] audio request rejected: %v", err)
		utils.Error(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[Gateway] audio request failed: %v", err)
		utils.Error(c, http.StatusInternalServerError, internalErrorMsg)
	}
}
