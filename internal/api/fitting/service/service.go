package fittingService

import (
	"context"

	"VirtualFitting/internal/api/fitting"
	"VirtualFitting/internal/entity"
	"VirtualFitting/pkg/imagestore"
	"VirtualFitting/pkg/redis"
	"VirtualFitting/pkg/s3"
	"VirtualFitting/pkg/scraper"
	"github.com/sirupsen/logrus"
)

type IFittingService interface {
	FitDress(ctx context.Context, req fitting.FitRequest) (*entity.FittingResult, error)
}

type Config struct {
	FittedImagePath  string
	OutputPerRequest bool
}

type fittingService struct {
	log     *logrus.Logger
	cfg     Config
	images  imagestore.IImageStore
	fetcher scraper.PageFetcher
	store   redis.IRedis
	s3      s3.ItfS3
}

// NewFittingService builds the dress fitting pipeline. fetcher, store and
// s3Client are optional: without them remote dress images, stored
// measurements and the S3 mirror are unavailable.
func NewFittingService(
	log *logrus.Logger,
	cfg Config,
	images imagestore.IImageStore,
	fetcher scraper.PageFetcher,
	store redis.IRedis,
	s3Client s3.ItfS3,
) IFittingService {
	if cfg.FittedImagePath == "" {
		cfg.FittedImagePath = "static/fitted_image.jpg"
	}
	return &fittingService{
		log:     log,
		cfg:     cfg,
		images:  images,
		fetcher: fetcher,
		store:   store,
		s3:      s3Client,
	}
}
