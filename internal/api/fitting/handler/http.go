package fittingHandler

import (
	fittingService "VirtualFitting/internal/api/fitting/service"
	"VirtualFitting/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"time"
)

type FittingHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	fittingService fittingService.IFittingService
	timeout        time.Duration
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	fs fittingService.IFittingService,
	timeout time.Duration,
) *FittingHandler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &FittingHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		fittingService: fs,
		timeout:        timeout,
	}
}

func (h *FittingHandler) Start(srv fiber.Router) {
	srv.Post("/fit", h.middleware.NewRateLimiter, h.FitDress)
}
