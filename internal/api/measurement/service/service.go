package measurementService

import (
	"context"
	"mime/multipart"
	"time"

	"VirtualFitting/internal/api/measurement"
	"VirtualFitting/internal/entity"
	"VirtualFitting/pkg/imagestore"
	"VirtualFitting/pkg/pose"
	"VirtualFitting/pkg/redis"
	"VirtualFitting/pkg/utils"
	"github.com/sirupsen/logrus"
)

type IMeasurementService interface {
	ProcessUpload(ctx context.Context, file *multipart.FileHeader) (*measurement.UploadResult, error)
	MeasureFrame(ctx context.Context, frame []byte) (*entity.BodyMeasurements, error)
	GetMeasurements(ctx context.Context, filename string) (*entity.BodyMeasurements, error)
}

type Config struct {
	UploadDir          string
	AnnotatedImagePath string
	OutputPerRequest   bool
	MeasurementTTL     time.Duration
}

type measurementService struct {
	log      *logrus.Logger
	cfg      Config
	utils    utils.IUtils
	images   imagestore.IImageStore
	detector pose.LandmarkDetector
	store    redis.IRedis
}

// NewMeasurementService wires the upload pipeline. store may be nil, in which
// case measurements are not kept after the request.
func NewMeasurementService(
	log *logrus.Logger,
	cfg Config,
	utils utils.IUtils,
	images imagestore.IImageStore,
	detector pose.LandmarkDetector,
	store redis.IRedis,
) IMeasurementService {
	return &measurementService{
		log:      log,
		cfg:      cfg,
		utils:    utils,
		images:   images,
		detector: detector,
		store:    store,
	}
}
