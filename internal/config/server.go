package config

import (
	fittingHandler "VirtualFitting/internal/api/fitting/handler"
	fittingService "VirtualFitting/internal/api/fitting/service"
	measurementHandler "VirtualFitting/internal/api/measurement/handler"
	measurementService "VirtualFitting/internal/api/measurement/service"
	scraperHandler "VirtualFitting/internal/api/scraper/handler"
	scraperService "VirtualFitting/internal/api/scraper/service"
	"VirtualFitting/internal/middleware"
	"VirtualFitting/pkg/gemini"
	"VirtualFitting/pkg/imagestore"
	"VirtualFitting/pkg/pose"
	"VirtualFitting/pkg/redis"
	"VirtualFitting/pkg/s3"
	"VirtualFitting/pkg/scraper"
	"VirtualFitting/pkg/utils"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	cfg          AppConfig
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	images       imagestore.IImageStore
	detector     pose.LandmarkDetector
	geminiClient gemini.IGemini
	redisServer  redis.IRedis
	s3Client     s3.ItfS3
	fetcher      scraper.PageFetcher
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log, middleware.Config{})
	}
	if server.utils == nil {
		server.utils = utils.New(server.cfg.MaxUploadSize)
	}
	if server.fetcher == nil {
		server.fetcher = scraper.NewHTTPFetcher(server.cfg.Scraper.Timeout, server.cfg.Scraper.UserAgent)
	}
	if server.images == nil {
		images, err := imagestore.New(server.cfg.UploadFolder, server.cfg.StaticFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to create image store: %w", err)
		}
		server.images = images
	}
	if server.detector == nil {
		detector, err := pose.New(server.cfg.Pose, server.geminiClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create pose detector: %w", err)
		}
		server.detector = detector
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithAppConfig(cfg AppConfig) ServerOption {
	return func(s *Server) error {
		s.cfg = cfg
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, middleware.Config{
			RequestRate: rate.Limit(s.cfg.RequestRate),
			BurstSize:   s.cfg.BurstSize,
		})
		return nil
	}
}

func WithImageStore() ServerOption {
	return func(s *Server) error {
		images, err := imagestore.New(s.cfg.UploadFolder, s.cfg.StaticFolder)
		if err != nil {
			return fmt.Errorf("failed to create image store: %w", err)
		}
		s.images = images
		return nil
	}
}

// WithGeminiClient connects to Gemini when an API key is configured. Without
// one the option is a no-op and the gemini pose detector is unavailable.
func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		if s.cfg.Gemini.APIKey == "" {
			return nil
		}
		client, err := gemini.NewGeminiClient(gemini.Config{
			APIKey:    s.cfg.Gemini.APIKey,
			ModelName: s.cfg.Gemini.ModelName,
		})
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithPoseDetector(detector pose.LandmarkDetector) ServerOption {
	return func(s *Server) error {
		s.detector = detector
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

// WithS3Client enables mirroring of fitted images when a bucket is configured.
func WithS3Client() ServerOption {
	return func(s *Server) error {
		if s.cfg.S3.BucketName == "" {
			return nil
		}
		client, err := s3.New(s.cfg.S3)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithPageFetcher(fetcher scraper.PageFetcher) ServerOption {
	return func(s *Server) error {
		s.fetcher = fetcher
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New(s.cfg.MaxUploadSize)
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Measurement Domain
	measurementServices := measurementService.NewMeasurementService(s.log, measurementService.Config{
		UploadDir:          s.cfg.UploadFolder,
		AnnotatedImagePath: s.cfg.AnnotatedImagePath,
		OutputPerRequest:   s.cfg.OutputPerRequest,
		MeasurementTTL:     s.cfg.MeasurementTTL,
	}, s.utils, s.images, s.detector, s.redisServer)
	measurementHandlers := measurementHandler.New(s.log, s.middleware, measurementServices, s.cfg.RequestTimeout)

	// Scraper Domain
	scraperServices := scraperService.NewScraperService(s.log, scraperService.Config{
		ImageClass: s.cfg.Scraper.ImageClass,
	}, s.fetcher)
	scraperHandlers := scraperHandler.New(s.log, s.validator, s.middleware, scraperServices, s.cfg.RequestTimeout)

	// Fitting Domain
	fittingServices := fittingService.NewFittingService(s.log, fittingService.Config{
		FittedImagePath:  s.cfg.FittedImagePath,
		OutputPerRequest: s.cfg.OutputPerRequest,
	}, s.images, s.fetcher, s.redisServer, s.s3Client)
	fittingHandlers := fittingHandler.New(s.log, s.validator, s.middleware, fittingServices, s.cfg.RequestTimeout)

	s.handlers = append(s.handlers, measurementHandlers, scraperHandlers, fittingHandlers)
}

// Routes mounts the middleware chain, static files and every registered
// handler. Run calls it before listening.
func (s *Server) Routes() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	s.setupHealthCheck()
	if s.cfg.StaticFolder != "" {
		s.engine.Static("/static", s.cfg.StaticFolder)
	}

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	s.Routes()

	port := s.cfg.Port
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops the HTTP server and releases the outbound connections.
func (s *Server) Shutdown() error {
	err := s.engine.Shutdown()

	if s.detector != nil {
		s.detector.Close()
	}
	if s.geminiClient != nil {
		s.geminiClient.Close()
	}
	if s.redisServer != nil {
		if cerr := s.redisServer.Close(); cerr != nil {
			s.log.Warnf("Failed to close Redis client: %v", cerr)
		}
	}

	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
