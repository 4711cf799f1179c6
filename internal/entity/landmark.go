package entity

type Landmark struct {
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility,omitempty"`
}

// Landmarks maps a landmark name to its normalized coordinate. A name that is
// absent was not detected.
type Landmarks map[string]Landmark

type BodyMeasurements struct {
	ShoulderWidth float64 `json:"shoulder_width"`
	WaistWidth    float64 `json:"waist_width"`
	Height        float64 `json:"height"`
}

type PoseDetectionResult struct {
	Landmarks []Landmark `json:"landmarks"`
	Message   string     `json:"message,omitempty"`
}
