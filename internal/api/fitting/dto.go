package fitting

import "VirtualFitting/internal/entity"

// FitMeasurements are body proportions as fractions of the user photo:
// ShoulderWidth of its width, Height of its height.
type FitMeasurements struct {
	ShoulderWidth float64 `json:"shoulder_width" validate:"gt=0,lte=2"`
	WaistWidth    float64 `json:"waist_width,omitempty" validate:"gte=0,lte=2"`
	Height        float64 `json:"height" validate:"gt=0,lte=2"`
}

type FitRequest struct {
	UserImage             string           `json:"user_image" validate:"required"`
	DressImage            string           `json:"dress_image" validate:"required"`
	Measurements          *FitMeasurements `json:"measurements,omitempty" validate:"omitempty"`
	UseStoredMeasurements bool             `json:"use_stored_measurements,omitempty"`
}

type FitResponse struct {
	Message string               `json:"message"`
	Results entity.FittingResult `json:"results"`
}
