package fittingService

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/url"
	"path/filepath"

	"VirtualFitting/internal/api/fitting"
	"VirtualFitting/internal/entity"
	"VirtualFitting/pkg/compositor"
	contextPkg "VirtualFitting/pkg/context"
	"VirtualFitting/pkg/imagestore"
	"VirtualFitting/pkg/log"
	"VirtualFitting/pkg/pose"
	"VirtualFitting/pkg/redis"
	"github.com/disintegration/imaging"
)

func (s *fittingService) FitDress(ctx context.Context, req fitting.FitRequest) (*entity.FittingResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if req.UserImage == "" || req.DressImage == "" {
		return nil, fitting.ErrImagesRequired
	}

	measurements, err := s.resolveMeasurements(ctx, req)
	if err != nil {
		return nil, err
	}

	user, err := s.images.Load(req.UserImage)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"user_image": req.UserImage,
			"error":      err.Error(),
		}).Warn("User image could not be loaded")
		return nil, fitting.ErrUserImageLoad
	}

	dress, err := s.loadDress(ctx, req.DressImage)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id":  requestID,
			"dress_image": req.DressImage,
			"error":       err.Error(),
		}).Warn("Dress image could not be loaded")
		return nil, fitting.ErrDressImageLoad
	}

	base := compositor.ToNRGBA(user)
	placement, err := computePlacement(base.Bounds().Size(), measurements)
	if err != nil {
		return nil, err
	}

	// Only the part of the dress that lands on the photo is resized.
	fitted := base
	if visible := placement.Intersect(base.Bounds()); !visible.Empty() {
		src := imaging.Crop(dress, visibleSource(dress.Bounds(), placement, visible))
		overlay := imaging.Resize(src, visible.Dx(), visible.Dy(), imaging.Box)
		fitted = compositor.Overlay(base, overlay, visible.Min.X, visible.Min.Y)
	}

	outputPath := s.cfg.FittedImagePath
	if s.cfg.OutputPerRequest {
		outputPath = imagestore.Suffixed(outputPath, requestID)
	}
	if err := s.images.Save(fitted, outputPath); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       outputPath,
			"error":      err.Error(),
		}).Error("Failed to write fitted image")
		return nil, fmt.Errorf("%w: %v", fitting.ErrFitting, err)
	}

	result := &entity.FittingResult{
		FittedImage: filepath.ToSlash(outputPath),
		Offset:      entity.Offset{X: placement.Min.X, Y: placement.Min.Y},
		Width:       placement.Dx(),
		Height:      placement.Dy(),
	}

	if s.s3 != nil {
		location, err := s.s3.UploadImage(ctx, outputPath, filepath.Base(outputPath))
		if err != nil {
			s.log.WithFields(log.Fields{
				"request_id": requestID,
				"path":       outputPath,
				"error":      err.Error(),
			}).Warn("Failed to mirror fitted image to S3")
		} else if signed, err := s.s3.PresignUrl(location); err != nil {
			s.log.WithFields(log.Fields{
				"request_id": requestID,
				"location":   location,
				"error":      err.Error(),
			}).Warn("Failed to presign fitted image URL")
			result.FittedImageURL = location
		} else {
			result.FittedImageURL = signed
		}
	}

	s.log.WithFields(log.Fields{
		"request_id":  requestID,
		"user_image":  req.UserImage,
		"dress_image": req.DressImage,
		"full_frame":  measurements == nil,
		"offset_x":    placement.Min.X,
		"offset_y":    placement.Min.Y,
		"width":       placement.Dx(),
		"height":      placement.Dy(),
	}).Info("Dress fitted")

	return result, nil
}

func (s *fittingService) resolveMeasurements(ctx context.Context, req fitting.FitRequest) (*fitting.FitMeasurements, error) {
	if req.Measurements != nil {
		if req.Measurements.ShoulderWidth <= 0 || req.Measurements.Height <= 0 {
			return nil, fitting.ErrInvalidMeasurements
		}
		return req.Measurements, nil
	}

	if !req.UseStoredMeasurements {
		return nil, nil
	}

	if s.store == nil {
		return nil, fitting.ErrMeasurementsNotFound
	}

	stored, err := s.store.GetMeasurements(ctx, filepath.Base(filepath.FromSlash(req.UserImage)))
	if errors.Is(err, redis.ErrNotFound) {
		return nil, fitting.ErrMeasurementsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fitting.ErrFitting, err)
	}

	return &fitting.FitMeasurements{
		ShoulderWidth: stored.ShoulderWidth,
		WaistWidth:    stored.WaistWidth,
		Height:        stored.Height / pose.HeightCalibration,
	}, nil
}

func (s *fittingService) loadDress(ctx context.Context, identifier string) (image.Image, error) {
	u, err := url.Parse(identifier)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return s.images.Load(identifier)
	}

	if s.fetcher == nil {
		return nil, fmt.Errorf("remote dress images are not enabled: %s", identifier)
	}

	data, err := s.fetcher.Fetch(ctx, identifier)
	if err != nil {
		return nil, err
	}

	return s.images.Decode(bytes.NewReader(data))
}
