package measurementHandler

import (
	measurementService "VirtualFitting/internal/api/measurement/service"
	"VirtualFitting/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	"time"
)

type MeasurementHandler struct {
	log                *logrus.Logger
	middleware         middleware.Middleware
	measurementService measurementService.IMeasurementService
	timeout            time.Duration
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	ms measurementService.IMeasurementService,
	timeout time.Duration,
) *MeasurementHandler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MeasurementHandler{
		measurementService: ms,
		log:                log,
		middleware:         middleware,
		timeout:            timeout,
	}
}

func (h *MeasurementHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	srv.Post("/upload", h.middleware.NewRateLimiter, h.UploadImage)

	measurements := srv.Group("/measurements")
	measurements.Use("/ws", wsMiddleware)
	measurements.Get("/ws", websocket.New(h.handleMeasurementWebSocket))
	measurements.Get("/:filename", h.GetMeasurements)
}
