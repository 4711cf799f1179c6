package scraperHandler

import (
	scraperService "VirtualFitting/internal/api/scraper/service"
	"VirtualFitting/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"time"
)

type ScraperHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	scraperService scraperService.IScraperService
	timeout        time.Duration
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ss scraperService.IScraperService,
	timeout time.Duration,
) *ScraperHandler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ScraperHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		scraperService: ss,
		timeout:        timeout,
	}
}

func (h *ScraperHandler) Start(srv fiber.Router) {
	srv.Post("/scrape", h.middleware.NewRateLimiter, h.ScrapeImages)
}
