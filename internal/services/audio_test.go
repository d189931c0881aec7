package services

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestDetectAudioFormat(t *testing.T) {
	wav := EncodeWAV([]byte{0, 0, 1, 0}, 16000, 1, 16)

	tests := []struct {
		name    string
		data    []byte
		want    AudioFormat
		wantErr error
	}{
		{name: "wav", data: wav, want: FormatWAV},
		{name: "mp3 id3", data: []byte("ID3\x04\x00\x00\x00"), want: FormatMP3},
		{name: "mp3 frame sync", data: []byte{0xFF, 0xFB, 0x90, 0x00}, want: FormatMP3},
		{name: "m4a", data: []byte("\x00\x00\x00\x20ftypM4A \x00\x00"), want: FormatM4A},
		{name: "webm", data: []byte{0x1A, 0x45, 0xDF, 0xA3, 0x9F}, want: FormatWebM},
		{name: "ogg", data: []byte("OggS\x00\x02"), want: FormatOGG},
		{name: "empty", data: nil, wantErr: ErrEmptyAudio},
		{name: "text", data: []byte("hello world"), wantErr: ErrUnsupportedAudio},
		{name: "riff without wave", data: []byte("RIFF\x00\x00\x00\x00AVI "), wantErr: ErrUnsupportedAudio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectAudioFormat(tt.data)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("format = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeWAVHeader(t *testing.T) {
	pcm := make([]byte, 320)
	data := EncodeWAV(pcm, 16000, 1, 16)

	if len(data) != 44+len(pcm) {
		t.Fatalf("len = %d, want %d", len(data), 44+len(pcm))
	}
	if got := binary.LittleEndian.Uint32(data[4:8]); got != uint32(36+len(pcm)) {
		t.Errorf("RIFF size = %d", got)
	}
	if got := binary.LittleEndian.Uint32(data[28:32]); got != 32000 {
		t.Errorf("byte rate = %d, want 32000", got)
	}
	if got := binary.LittleEndian.Uint16(data[32:34]); got != 2 {
		t.Errorf("block align = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != uint32(len(pcm)) {
		t.Errorf("data size = %d, want %d", got, len(pcm))
	}
}

func TestNewAudioClip(t *testing.T) {
	clip, err := NewAudioClip([]byte("OggS rest"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clip.Format != FormatOGG || clip.Format.MIMEType() != "audio/ogg" {
		t.Errorf("clip = %+v", clip)
	}

	if _, err := NewAudioClip([]byte{}); !errors.Is(err, ErrEmptyAudio) {
		t.Errorf("expected ErrEmptyAudio, got %v", err)
	}
}
