package measurement

import "VirtualFitting/internal/entity"

type UploadResult struct {
	Filename       string                  `json:"filename"`
	Path           string                  `json:"-"`
	Measurements   entity.BodyMeasurements `json:"user_data"`
	AnnotatedImage string                  `json:"annotated_image,omitempty"`
}

type UploadResponse struct {
	Message        string                  `json:"message"`
	Filename       string                  `json:"filename"`
	UserData       entity.BodyMeasurements `json:"user_data"`
	AnnotatedImage string                  `json:"annotated_image,omitempty"`
}

type MeasurementResponse struct {
	UserData entity.BodyMeasurements `json:"user_data"`
}

type FrameResponse struct {
	UserData *entity.BodyMeasurements `json:"user_data,omitempty"`
	Error    string                   `json:"error,omitempty"`
}
