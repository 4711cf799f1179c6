package config

import (
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const minBodyLimit = 4 * 1024 * 1024

func NewFiber(logger *logrus.Logger, cfg AppConfig) *fiber.App {
	bodyLimit := int(cfg.MaxUploadSize) + 1024*1024
	if bodyLimit < minBodyLimit {
		bodyLimit = minBodyLimit
	}

	app := fiber.New(
		fiber.Config{
			AppName:           "Virtual Fitting Backend",
			BodyLimit:         bodyLimit,
			DisableKeepalive:  false,
			StrictRouting:     false,
			CaseSensitive:     true,
			EnablePrintRoutes: logger.IsLevelEnabled(logrus.DebugLevel),
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
		})

	return app
}
