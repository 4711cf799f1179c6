package scraperService

import (
	"context"

	"VirtualFitting/pkg/scraper"
	"github.com/sirupsen/logrus"
)

type IScraperService interface {
	ScrapeDressImages(ctx context.Context, pageURL string) ([]string, error)
}

type Config struct {
	ImageClass string
}

type scraperService struct {
	log     *logrus.Logger
	cfg     Config
	fetcher scraper.PageFetcher
}

func NewScraperService(log *logrus.Logger, cfg Config, fetcher scraper.PageFetcher) IScraperService {
	if cfg.ImageClass == "" {
		cfg.ImageClass = scraper.DefaultImageClass
	}
	return &scraperService{
		log:     log,
		cfg:     cfg,
		fetcher: fetcher,
	}
}
