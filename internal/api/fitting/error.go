package fitting

import (
	"VirtualFitting/pkg/response"
	"net/http"
)

var (
	ErrImagesRequired       = response.NewError(http.StatusBadRequest, "Both user image and dress image are required")
	ErrInvalidMeasurements  = response.NewError(http.StatusBadRequest, "Invalid measurements: overlay size must be positive")
	ErrMeasurementsNotFound = response.NewError(http.StatusNotFound, "No stored measurements for the user image")
	ErrUserImageLoad        = response.NewError(http.StatusInternalServerError, "Error during dress fitting simulation: User image could not be loaded.")
	ErrDressImageLoad       = response.NewError(http.StatusInternalServerError, "Error during dress fitting simulation: Dress image could not be loaded.")
	ErrFitting              = response.NewError(http.StatusInternalServerError, "Error during dress fitting simulation")
)
