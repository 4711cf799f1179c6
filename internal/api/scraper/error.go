package scraper

import (
	"VirtualFitting/pkg/response"
	"net/http"
)

var (
	ErrURLRequired = response.NewError(http.StatusBadRequest, "URL is required")
	ErrScrape      = response.NewError(http.StatusInternalServerError, "Error scraping images")
)
