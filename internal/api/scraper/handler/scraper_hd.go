package scraperHandler

import (
	"VirtualFitting/internal/api/scraper"
	contextPkg "VirtualFitting/pkg/context"
	"VirtualFitting/pkg/handlerUtil"
	"VirtualFitting/pkg/log"
	"context"
	"github.com/gofiber/fiber/v2"
)

func (h *ScraperHandler) ScrapeImages(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.timeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req scraper.ScrapeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, scraper.ErrURLRequired, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.Handle(ctx, requestID, scraper.ErrURLRequired, ctx.Path(), "validate_request")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"url":        req.URL,
	}).Debug("Processing scrape request")

	images, err := h.scraperService.ScrapeDressImages(c, req.URL)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "scrape_dress_images")
	}
	if images == nil {
		images = []string{}
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, scraper.ScrapeResponse{
			Message: "Images scraped successfully",
			Images:  images,
		})
	}
}
