package pose

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"strings"

	"VirtualFitting/internal/entity"
	"VirtualFitting/pkg/gemini"
)

const landmarkPrompt = `
	Locate the human body pose landmarks in this image and return them as JSON.
	Use coordinates normalized to the image: x is a fraction of the width, y a fraction
	of the height, both between 0 and 1; z is the relative depth with the hips at 0.
	Expected format:
	{
		"landmarks": [
			{"name": "nose", "x": 0.5, "y": 0.1, "z": -0.2},
			{"name": "left_shoulder", "x": 0.6, "y": 0.25, "z": -0.1}
		]
	}
	Use these landmark names: nose, left_shoulder, right_shoulder, left_elbow, right_elbow,
	left_wrist, right_wrist, left_hip, right_hip, left_knee, right_knee, left_ankle, right_ankle.
	If no full human body is visible return {"landmarks": []}.
	Return ONLY the JSON response, with no additional text.
	`

type geminiDetector struct {
	gemini gemini.IGemini
}

func NewGeminiDetector(client gemini.IGemini) LandmarkDetector {
	return &geminiDetector{gemini: client}
}

func (d *geminiDetector) Detect(ctx context.Context, img image.Image) (entity.Landmarks, error) {
	frame, err := encodeFrame(img)
	if err != nil {
		return nil, err
	}

	answer, err := d.gemini.AnalyzeImage(ctx, base64.StdEncoding.EncodeToString(frame), landmarkPrompt)
	if err != nil {
		return nil, fmt.Errorf("gemini pose analysis: %w", err)
	}

	return parseLandmarkResponse(answer)
}

func (d *geminiDetector) Close() {}

func parseLandmarkResponse(response string) (entity.Landmarks, error) {
	jsonStart := strings.Index(response, "{")
	jsonEnd := strings.LastIndex(response, "}")

	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return nil, errors.New("cannot find valid JSON in response")
	}

	var result entity.PoseDetectionResult
	if err := json.Unmarshal([]byte(response[jsonStart:jsonEnd+1]), &result); err != nil {
		return nil, fmt.Errorf("failed to parse pose response: %w", err)
	}

	if len(result.Landmarks) == 0 {
		return nil, ErrNoBodyDetected
	}

	return FromList(result.Landmarks), nil
}
