package scraper

type ScrapeRequest struct {
	URL string `json:"url" validate:"required"`
}

type ScrapeResponse struct {
	Message string   `json:"message"`
	Images  []string `json:"images"`
}
