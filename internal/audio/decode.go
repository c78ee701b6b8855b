package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/pion/opus"
)

// format identifies the container/codec detected from file content.
type format int

const (
	formatUnknown format = iota
	formatWAV
	formatMP3
	formatOggVorbis
	formatOggOpus
)

func (f format) String() string {
	switch f {
	case formatWAV:
		return "wav"
	case formatMP3:
		return "mp3"
	case formatOggVorbis:
		return "ogg/vorbis"
	case formatOggOpus:
		return "ogg/opus"
	default:
		return "unknown"
	}
}

var oggCapturePattern = []byte("OggS")

// detectFormat inspects the leading bytes of the upload. The client-declared
// mime type is never consulted here: browsers lie about recorded blobs.
func detectFormat(data []byte) format {
	if len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")) {
		return formatWAV
	}
	if len(data) >= 4 && bytes.Equal(data[0:4], oggCapturePattern) {
		return detectOggCodec(data)
	}
	if len(data) >= 3 && bytes.Equal(data[0:3], []byte("ID3")) {
		return formatMP3
	}
	// Bare MPEG frame sync: 11 set bits.
	if len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0 {
		return formatMP3
	}
	return formatUnknown
}

// detectOggCodec reads the first OGG page and looks for the Vorbis or Opus
// identification header.
func detectOggCodec(data []byte) format {
	if len(data) < 27 {
		return formatUnknown
	}
	numSegments := int(data[26])
	if len(data) < 27+numSegments {
		return formatUnknown
	}
	pageSize := 0
	for _, s := range data[27 : 27+numSegments] {
		pageSize += int(s)
	}
	body := data[27+numSegments:]
	if len(body) > pageSize {
		body = body[:pageSize]
	}
	if bytes.Contains(body, []byte("OpusHead")) {
		return formatOggOpus
	}
	if bytes.Contains(body, []byte("vorbis")) {
		return formatOggVorbis
	}
	return formatUnknown
}

// decode turns the scratch file's bytes into mono 16-bit PCM. r must be
// positioned at the start of the stream.
func decode(r io.ReadSeeker, f format) (*DecodedAudio, error) {
	switch f {
	case formatWAV:
		return decodeWAV(r)
	case formatMP3:
		return decodeMP3(r)
	case formatOggVorbis:
		return decodeOggVorbis(r)
	case formatOggOpus:
		return decodeOggOpus(r)
	default:
		return nil, &DecodingError{Reason: "unrecognized audio container"}
	}
}

func decodeWAV(r io.ReadSeeker) (*DecodedAudio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, &DecodingError{Reason: "invalid WAV file"}
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil && err != io.EOF {
		return nil, &DecodingError{Reason: fmt.Sprintf("failed to read PCM data: %v", err)}
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, &DecodingError{Reason: "WAV file contains no audio data"}
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	// Scale every sample to 16-bit, then downmix to mono.
	shift := uint(0)
	if bitDepth > 16 {
		shift = uint(bitDepth - 16)
	}
	frames := len(buf.Data) / channels
	samples := make([]int16, frames)
	for i := 0; i < frames; i++ {
		var sum int32
		for ch := 0; ch < channels; ch++ {
			s := buf.Data[i*channels+ch]
			if shift > 0 {
				s >>= shift
			} else if bitDepth < 16 {
				s <<= uint(16 - bitDepth)
			}
			sum += int32(s)
		}
		samples[i] = clampInt16(sum / int32(channels))
	}

	return &DecodedAudio{Samples: samples, SampleRate: buf.Format.SampleRate}, nil
}

func decodeMP3(r io.ReadSeeker) (*DecodedAudio, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, &DecodingError{Reason: fmt.Sprintf("failed to open MP3 stream: %v", err)}
	}

	// go-mp3 always emits 16-bit stereo little-endian frames.
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, &DecodingError{Reason: fmt.Sprintf("failed to decode MP3 stream: %v", err)}
	}
	if len(pcm) < 4 {
		return nil, &DecodingError{Reason: "MP3 stream contains no audio data"}
	}

	frames := len(pcm) / 4
	samples := make([]int16, frames)
	for i := 0; i < frames; i++ {
		left := int16(binary.LittleEndian.Uint16(pcm[i*4:]))
		right := int16(binary.LittleEndian.Uint16(pcm[i*4+2:]))
		samples[i] = int16((int32(left) + int32(right)) / 2)
	}

	return &DecodedAudio{Samples: samples, SampleRate: dec.SampleRate()}, nil
}

func decodeOggVorbis(r io.ReadSeeker) (*DecodedAudio, error) {
	data, fmtInfo, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, &DecodingError{Reason: fmt.Sprintf("failed to decode Vorbis stream: %v", err)}
	}
	if len(data) == 0 {
		return nil, &DecodingError{Reason: "Vorbis stream contains no audio data"}
	}

	channels := fmtInfo.Channels
	if channels < 1 {
		channels = 1
	}
	frames := len(data) / channels
	samples := make([]int16, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for ch := 0; ch < channels; ch++ {
			sum += data[i*channels+ch]
		}
		samples[i] = floatToInt16(sum / float32(channels))
	}

	return &DecodedAudio{Samples: samples, SampleRate: fmtInfo.SampleRate}, nil
}

// opusFrameSize is one 20ms frame at the Opus internal rate of 48kHz.
const (
	opusSampleRate = 48000
	opusFrameSize  = 960
)

func decodeOggOpus(r io.ReadSeeker) (*DecodedAudio, error) {
	dec := opus.NewDecoder()

	var samples []int16
	headerPackets := 0
	out := make([]byte, opusFrameSize*2)

	for {
		packets, err := readOggPage(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &DecodingError{Reason: fmt.Sprintf("malformed OGG page: %v", err)}
		}

		for _, packet := range packets {
			// The first two packets of an Opus stream are OpusHead and
			// OpusTags, not audio.
			if headerPackets < 2 {
				headerPackets++
				continue
			}
			if len(packet) == 0 {
				continue
			}
			if _, _, err := dec.Decode(packet, out); err != nil {
				return nil, &DecodingError{Reason: fmt.Sprintf("failed to decode Opus frame: %v", err)}
			}
			for i := 0; i < opusFrameSize; i++ {
				samples = append(samples, int16(binary.LittleEndian.Uint16(out[i*2:])))
			}
		}
	}

	if len(samples) == 0 {
		return nil, &DecodingError{Reason: "no Opus frames decoded"}
	}
	return &DecodedAudio{Samples: samples, SampleRate: opusSampleRate}, nil
}

// readOggPage reads one OGG page and reassembles its packets from the lacing
// table. A packet continued on the next page is dropped at the page boundary,
// which is acceptable for the short clips this service handles.
func readOggPage(r io.Reader) ([][]byte, error) {
	header := make([]byte, 27)
	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}
	if !bytes.Equal(header[:4], oggCapturePattern) {
		return nil, fmt.Errorf("missing OggS capture pattern")
	}

	numSegments := int(header[26])
	lacing := make([]byte, numSegments)
	if _, err := io.ReadFull(r, lacing); err != nil {
		return nil, fmt.Errorf("failed to read lacing table: %w", err)
	}

	var packets [][]byte
	var current []byte
	for _, size := range lacing {
		segment := make([]byte, size)
		if _, err := io.ReadFull(r, segment); err != nil {
			return nil, fmt.Errorf("failed to read page segment: %w", err)
		}
		current = append(current, segment...)
		if size < 255 {
			packets = append(packets, current)
			current = nil
		}
	}
	if len(current) > 0 {
		packets = append(packets, current)
	}
	return packets, nil
}

func clampInt16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

func floatToInt16(v float32) int16 {
	if v > 1.0 {
		v = 1.0
	}
	if v < -1.0 {
		v = -1.0
	}
	return int16(v * 32767)
}
