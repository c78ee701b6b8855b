// Package audio normalizes uploaded voice clips of unknown container format
// into mono 16-bit PCM, enforces the duration limit, and re-encodes to WAV for
// the transcription API.
package audio

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Normalizer decodes untrusted uploaded audio into DecodedAudio.
type Normalizer struct {
	scratchDir string
	maxSeconds float64
}

// NewNormalizer creates a normalizer writing scratch artifacts under
// scratchDir and rejecting clips longer than maxSeconds.
func NewNormalizer(scratchDir string, maxSeconds float64) *Normalizer {
	return &Normalizer{
		scratchDir: scratchDir,
		maxSeconds: maxSeconds,
	}
}

// Normalize decodes raw uploaded bytes, auto-detecting the format from
// content. The declared name and mime hint are untrusted and used only for
// diagnostics. Returns ErrEmptyInput, *DecodingError or
// *DurationExceededError on rejected input.
//
// Every scratch artifact is uniquely named and removed before returning, on
// success and failure alike, so concurrent requests never collide.
func (n *Normalizer) Normalize(raw []byte, declaredName, mimeHint string) (*DecodedAudio, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyInput
	}

	detected := detectFormat(raw)
	log.Printf("[Audio] received %q (%d bytes, client mime %q), detected format: %s",
		declaredName, len(raw), mimeHint, detected)

	scratchPath, err := n.writeScratch(raw, declaredName)
	if err != nil {
		return nil, fmt.Errorf("failed to write scratch file: %w", err)
	}
	defer func() {
		if err := os.Remove(scratchPath); err != nil {
			log.Printf("[Audio] warning: could not remove scratch file %s: %v", scratchPath, err)
		}
	}()

	f, err := os.Open(scratchPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open scratch file: %w", err)
	}
	defer f.Close()

	decoded, err := decode(f, detected)
	if err != nil {
		return nil, err
	}

	dur := decoded.Duration()
	log.Printf("[Audio] decoded %q: %.2fs at %dHz", declaredName, dur, decoded.SampleRate)
	if dur > n.maxSeconds {
		return nil, &DurationExceededError{Duration: dur, Limit: n.maxSeconds}
	}

	return decoded, nil
}

// writeScratch persists the upload under a unique name so concurrent requests
// sharing the scratch directory cannot collide.
func (n *Normalizer) writeScratch(raw []byte, declaredName string) (string, error) {
	if err := os.MkdirAll(n.scratchDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(declaredName))
	if ext == "" {
		ext = ".dat"
	}
	path := filepath.Join(n.scratchDir, "clip_"+uuid.NewString()+ext)

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return "", err
	}
	return path, nil
}
