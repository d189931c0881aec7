package services

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrEmptyAudio       = errors.New("audio buffer is empty")
	ErrUnsupportedAudio = errors.New("unsupported audio format")
)

type AudioFormat string

const (
	FormatWAV  AudioFormat = "wav"
	FormatMP3  AudioFormat = "mp3"
	FormatM4A  AudioFormat = "m4a"
	FormatWebM AudioFormat = "webm"
	FormatOGG  AudioFormat = "ogg"
)

// Extension returns the file extension used when the clip is written to disk.
func (f AudioFormat) Extension() string {
	return "." + string(f)
}

func (f AudioFormat) MIMEType() string {
	switch f {
	case FormatWAV:
		return "audio/wav"
	case FormatMP3:
		return "audio/mpeg"
	case FormatM4A:
		return "audio/mp4"
	case FormatWebM:
		return "audio/webm"
	case FormatOGG:
		return "audio/ogg"
	default:
		return "application/octet-stream"
	}
}

// AudioClip is a captured recording in a recognized container.
type AudioClip struct {
	Data   []byte
	Format AudioFormat
}

// NewAudioClip validates data and infers its container format.
func NewAudioClip(data []byte) (*AudioClip, error) {
	format, err := DetectAudioFormat(data)
	if err != nil {
		return nil, err
	}
	return &AudioClip{Data: data, Format: format}, nil
}

// DetectAudioFormat sniffs the container from the leading bytes.
func DetectAudioFormat(data []byte) (AudioFormat, error) {
	if len(data) == 0 {
		return "", ErrEmptyAudio
	}

	switch {
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return FormatWAV, nil
	case bytes.HasPrefix(data, []byte("ID3")):
		return FormatMP3, nil
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return FormatMP3, nil
	case len(data) >= 8 && bytes.Equal(data[4:8], []byte("ftyp")):
		return FormatM4A, nil
	case bytes.HasPrefix(data, []byte{0x1A, 0x45, 0xDF, 0xA3}):
		return FormatWebM, nil
	case bytes.HasPrefix(data, []byte("OggS")):
		return FormatOGG, nil
	}

	return "", fmt.Errorf("%w: unrecognized header % x", ErrUnsupportedAudio, data[:min(len(data), 4)])
}

// EncodeWAV wraps raw little-endian PCM in a canonical 44-byte WAV header.
func EncodeWAV(pcm []byte, sampleRate, channels, bitsPerSample int) []byte {
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	buf := bytes.NewBuffer(make([]byte, 0, 44+len(pcm)))
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}
