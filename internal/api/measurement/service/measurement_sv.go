package measurementService

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"VirtualFitting/internal/api/measurement"
	"VirtualFitting/internal/entity"
	contextPkg "VirtualFitting/pkg/context"
	"VirtualFitting/pkg/imagestore"
	"VirtualFitting/pkg/log"
	"VirtualFitting/pkg/pose"
	"VirtualFitting/pkg/redis"
	"VirtualFitting/pkg/utils"
)

func (s *measurementService) ProcessUpload(ctx context.Context, file *multipart.FileHeader) (*measurement.UploadResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.utils.ValidateImageFile(file); err != nil {
		switch {
		case errors.Is(err, utils.ErrNoFile):
			return nil, measurement.ErrNoFilePart
		case errors.Is(err, utils.ErrFileTooLarge):
			return nil, measurement.ErrFileTooLarge
		default:
			return nil, measurement.ErrInvalidFileType
		}
	}

	filename := s.utils.SanitizeFilename(file.Filename)
	if filename == "" || s.utils.ValidateImageFile(&multipart.FileHeader{Filename: filename}) != nil {
		return nil, measurement.ErrInvalidFileType
	}

	path := filepath.Join(s.cfg.UploadDir, filename)
	if err := saveUpload(file, path); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"file_name":  filename,
			"error":      err.Error(),
		}).Error("Failed to store upload")
		return nil, measurement.ErrInternalServerError
	}

	img, err := s.images.Load(path)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"file_name":  filename,
			"error":      err.Error(),
		}).Warn("Uploaded file does not decode")
		_ = os.Remove(path)
		return nil, measurement.ErrInvalidImage
	}

	landmarks, m, err := s.measure(ctx, img)
	if err != nil {
		s.forgetMeasurements(ctx, filename)
		return nil, err
	}

	result := &measurement.UploadResult{
		Filename:     filename,
		Path:         path,
		Measurements: *m,
	}

	annotatedPath := s.cfg.AnnotatedImagePath
	if s.cfg.OutputPerRequest {
		annotatedPath = imagestore.Suffixed(annotatedPath, requestID)
	}
	if annotatedPath != "" {
		if err := s.images.Save(pose.Annotate(img, landmarks), annotatedPath); err != nil {
			s.log.WithFields(log.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to write annotated image")
		} else {
			result.AnnotatedImage = annotatedPath
		}
	}

	if s.store != nil {
		if err := s.store.SetMeasurements(ctx, filename, *m, s.cfg.MeasurementTTL); err != nil {
			s.log.WithFields(log.Fields{
				"request_id": requestID,
				"file_name":  filename,
				"error":      err.Error(),
			}).Warn("Failed to store measurements")
		}
	}

	s.log.WithFields(log.Fields{
		"request_id":     requestID,
		"file_name":      filename,
		"shoulder_width": m.ShoulderWidth,
		"waist_width":    m.WaistWidth,
		"height":         m.Height,
	}).Info("Body measurements extracted")

	return result, nil
}

func (s *measurementService) MeasureFrame(ctx context.Context, frame []byte) (*entity.BodyMeasurements, error) {
	img, err := s.images.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, measurement.ErrInvalidImage
	}

	_, m, err := s.measure(ctx, img)
	return m, err
}

func (s *measurementService) GetMeasurements(ctx context.Context, filename string) (*entity.BodyMeasurements, error) {
	if s.store == nil {
		return nil, measurement.ErrMeasurementsNotFound
	}

	m, err := s.store.GetMeasurements(ctx, s.utils.SanitizeFilename(filename))
	if errors.Is(err, redis.ErrNotFound) {
		return nil, measurement.ErrMeasurementsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get measurements: %w", err)
	}

	return &m, nil
}

func (s *measurementService) measure(ctx context.Context, img image.Image) (entity.Landmarks, *entity.BodyMeasurements, error) {
	landmarks, err := s.detector.Detect(ctx, img)
	if errors.Is(err, pose.ErrNoBodyDetected) {
		return nil, nil, measurement.ErrNoBodyDetected
	}
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Pose detection failed")
		return nil, nil, measurement.ErrDetectionFailed
	}

	m, err := pose.Measure(landmarks)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Incomplete body landmarks")
		return nil, nil, measurement.ErrNoBodyDetected
	}

	return landmarks, &m, nil
}

// forgetMeasurements drops what an earlier upload under the same name stored,
// since it no longer describes the file on disk.
func (s *measurementService) forgetMeasurements(ctx context.Context, filename string) {
	if s.store == nil {
		return
	}
	if err := s.store.DeleteMeasurements(ctx, filename); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"file_name":  filename,
			"error":      err.Error(),
		}).Warn("Failed to drop stale measurements")
	}
}

func saveUpload(file *multipart.FileHeader, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}

	return dst.Close()
}
