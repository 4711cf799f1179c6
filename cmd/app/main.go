package main

import (
	"VirtualFitting/internal/config"
	"VirtualFitting/pkg/log"
	"VirtualFitting/pkg/redis"
	"errors"
	"github.com/joho/godotenv"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Fatalf("Error loading .env file: %v", err)
		}
		logger.Info("No .env file found, using process environment")
	}

	appConfig := config.LoadAppConfig()
	fiberApp := config.NewFiber(logger, appConfig)
	validator := config.NewValidator()

	options := []config.ServerOption{
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithAppConfig(appConfig),
		config.WithValidator(validator),
		config.WithMiddleware(),
		config.WithImageStore(),
		config.WithGeminiClient(),
		config.WithS3Client(),
		config.WithUtils(),
	}
	if appConfig.Redis.Addr != "" {
		options = append(options, config.WithRedisServer(redis.New(appConfig.Redis)))
	}

	server, err := config.NewServer(options...)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
