package measurement

import (
	"VirtualFitting/pkg/response"
	"net/http"
)

var (
	ErrNoFilePart           = response.NewError(http.StatusBadRequest, "No file part")
	ErrInvalidFileType      = response.NewError(http.StatusBadRequest, "Invalid file type")
	ErrFileTooLarge         = response.NewError(http.StatusBadRequest, "File too large")
	ErrInvalidImage         = response.NewError(http.StatusBadRequest, "Uploaded file is not a valid image")
	ErrNoBodyDetected       = response.NewError(http.StatusUnprocessableEntity, "Unable to detect body landmarks. Please upload a clear full-body image.")
	ErrDetectionFailed      = response.NewError(http.StatusBadGateway, "pose detection service unavailable")
	ErrMeasurementsNotFound = response.NewError(http.StatusNotFound, "measurements not found")
	ErrInternalServerError  = response.NewError(http.StatusInternalServerError, "internal server error")
)
