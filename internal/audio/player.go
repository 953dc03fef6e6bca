// Package audio plays synthesized speech returned by the backend.
//
// WAV payloads are decoded and streamed to the default output device
// through portaudio. Payloads in other formats (MP3 and friends) cannot
// be decoded here, so they are saved to the download directory instead
// and the caller is told where to find them.
package audio

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gordonklaus/portaudio"

	"github.com/SmartGenzAI1/GenzAI/internal/api"
	apperrors "github.com/SmartGenzAI1/GenzAI/internal/errors"
)

const framesPerBuffer = 2048

// Player streams WAV audio to the default output device.
type Player struct {
	downloadDir string
}

// NewPlayer returns a Player that saves undecodable payloads to downloadDir.
func NewPlayer(downloadDir string) *Player {
	return &Player{downloadDir: downloadDir}
}

// Play decodes and plays a WAV payload. Payloads that are not WAV are
// written to the download directory and a nil error is returned so the
// caller still counts the action as a success.
func (p *Player) Play(a *api.Audio) error {
	if a == nil || len(a.Data) == 0 {
		return apperrors.NewGenerationError("no audio data to play")
	}
	if !isWAV(a.Data) {
		_, err := p.Save(a)
		return err
	}

	dec := wav.NewDecoder(bytes.NewReader(a.Data))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("decoding wav: %w", err)
	}
	if buf.Format == nil || len(buf.Data) == 0 {
		return apperrors.NewGenerationError("wav payload contains no samples")
	}
	return p.playBuffer(buf)
}

func (p *Player) playBuffer(buf *goaudio.IntBuffer) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing audio: %w", err)
	}
	defer portaudio.Terminate()

	out := make([]int16, framesPerBuffer*buf.Format.NumChannels)
	stream, err := portaudio.OpenDefaultStream(
		0, buf.Format.NumChannels, float64(buf.Format.SampleRate), framesPerBuffer, &out,
	)
	if err != nil {
		return fmt.Errorf("opening output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("starting output stream: %w", err)
	}
	defer stream.Stop()

	samples := buf.Data
	for len(samples) > 0 {
		n := len(out)
		if n > len(samples) {
			n = len(samples)
		}
		for i := 0; i < n; i++ {
			out[i] = int16(samples[i])
		}
		for i := n; i < len(out); i++ {
			out[i] = 0
		}
		if err := stream.Write(); err != nil {
			return fmt.Errorf("writing to output stream: %w", err)
		}
		samples = samples[n:]
	}
	return nil
}

// Save writes the payload to the download directory and returns the path.
func (p *Player) Save(a *api.Audio) (string, error) {
	if a == nil || len(a.Data) == 0 {
		return "", apperrors.NewGenerationError("no audio data to save")
	}
	dir := p.downloadDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}
	name := fmt.Sprintf("speech-%s%s", time.Now().Format("20060102-150405"), extFor(a.ContentType, a.Data))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, a.Data, 0o600); err != nil {
		return "", fmt.Errorf("saving audio: %w", err)
	}
	return path, nil
}

func isWAV(data []byte) bool {
	return len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE"))
}

func extFor(contentType string, data []byte) string {
	switch {
	case isWAV(data):
		return ".wav"
	case strings.Contains(contentType, "mpeg"), strings.Contains(contentType, "mp3"):
		return ".mp3"
	case strings.Contains(contentType, "ogg"):
		return ".ogg"
	default:
		return ".audio"
	}
}
