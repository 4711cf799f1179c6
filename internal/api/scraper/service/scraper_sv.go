package scraperService

import (
	"context"
	"fmt"
	"net/url"

	scraperApi "VirtualFitting/internal/api/scraper"
	contextPkg "VirtualFitting/pkg/context"
	"VirtualFitting/pkg/log"
	"VirtualFitting/pkg/scraper"
)

func (s *scraperService) ScrapeDressImages(ctx context.Context, pageURL string) ([]string, error) {
	requestID := contextPkg.GetRequestID(ctx)
	if pageURL == "" {
		return nil, scraperApi.ErrURLRequired
	}

	u, err := url.Parse(pageURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"url":        pageURL,
		}).Warn("Rejected scrape URL")
		return nil, fmt.Errorf("%w: invalid URL %q: only absolute http(s) URLs are supported", scraperApi.ErrScrape, pageURL)
	}

	page, err := s.fetcher.Fetch(ctx, u.String())
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"url":        pageURL,
			"error":      err.Error(),
		}).Error("Failed to fetch retailer page")
		return nil, fmt.Errorf("%w: %v", scraperApi.ErrScrape, err)
	}

	images, err := scraper.ExtractImageURLs(page, u, s.cfg.ImageClass)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"url":        pageURL,
			"error":      err.Error(),
		}).Warn("No dress images extracted")
		return nil, fmt.Errorf("%w: %v", scraperApi.ErrScrape, err)
	}

	s.log.WithFields(log.Fields{
		"request_id": requestID,
		"url":        pageURL,
		"images":     len(images),
	}).Info("Dress images scraped")

	return images, nil
}
