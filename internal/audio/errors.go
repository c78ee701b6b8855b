package audio

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the uploaded byte buffer is empty. It is
// checked before any decoding or scratch-file work happens.
var ErrEmptyInput = errors.New("فایل صوتی خالی است")

// DecodingError reports that the uploaded bytes could not be decoded as any
// supported audio format. Reason carries the underlying decoder's message.
type DecodingError struct {
	Reason string
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("خطا در رمزگشایی فایل صوتی: %s. ممکن است فایل خراب باشد یا فرمت آن پشتیبانی نشود", e.Reason)
}

// DurationExceededError reports a clip longer than the configured limit.
// Both values are safe to show to the caller.
type DurationExceededError struct {
	Duration float64 // measured clip length in seconds
	Limit    float64 // configured maximum in seconds
}

func (e *DurationExceededError) Error() string {
	return fmt.Sprintf("طول فایل صوتی (%.2f ثانیه) نباید بیش از %.0f ثانیه باشد", e.Duration, e.Limit)
}
