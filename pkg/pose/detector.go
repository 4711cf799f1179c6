package pose

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"VirtualFitting/internal/entity"
	"VirtualFitting/pkg/gemini"
	"github.com/disintegration/imaging"
)

type LandmarkDetector interface {
	Detect(ctx context.Context, img image.Image) (entity.Landmarks, error)
	Close()
}

const (
	DetectorWebsocket = "websocket"
	DetectorGemini    = "gemini"
)

type Config struct {
	Detector   string
	ServiceURL string
}

func New(cfg Config, geminiClient gemini.IGemini) (LandmarkDetector, error) {
	switch cfg.Detector {
	case "", DetectorWebsocket:
		return NewWebsocketDetector(cfg.ServiceURL), nil
	case DetectorGemini:
		if geminiClient == nil {
			return nil, fmt.Errorf("gemini pose detector requires a gemini client")
		}
		return NewGeminiDetector(geminiClient), nil
	default:
		return nil, fmt.Errorf("unknown pose detector %q", cfg.Detector)
	}
}

func encodeFrame(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return buf.Bytes(), nil
}
