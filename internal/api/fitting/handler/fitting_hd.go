package fittingHandler

import (
	"VirtualFitting/internal/api/fitting"
	contextPkg "VirtualFitting/pkg/context"
	"VirtualFitting/pkg/handlerUtil"
	"VirtualFitting/pkg/log"
	"context"
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func (h *FittingHandler) FitDress(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.timeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req fitting.FitRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, fitting.ErrImagesRequired, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.Handle(ctx, requestID, validationError(err), ctx.Path(), "validate_request")
	}

	h.log.WithFields(log.Fields{
		"request_id":   requestID,
		"path":         ctx.Path(),
		"user_image":   req.UserImage,
		"dress_image":  req.DressImage,
		"measurements": req.Measurements != nil,
	}).Debug("Processing fitting request")

	result, err := h.fittingService.FitDress(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "fit_dress")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fitting.FitResponse{
			Message: "Fitting performed successfully",
			Results: *result,
		})
	}
}

// validationError maps a failed FitRequest validation to the domain error the
// client sees: missing images first, anything else is a bad measurement.
func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	for _, fe := range errs {
		if fe.StructField() == "UserImage" || fe.StructField() == "DressImage" {
			return fitting.ErrImagesRequired
		}
	}
	return fitting.ErrInvalidMeasurements
}
