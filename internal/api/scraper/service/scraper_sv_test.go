package scraperService

import (
	"context"
	"errors"
	"io"
	"testing"

	scraperApi "VirtualFitting/internal/api/scraper"
	"VirtualFitting/pkg/scraper"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages map[string]string
	err   error
	urls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	f.urls = append(f.urls, rawURL)
	if f.err != nil {
		return nil, f.err
	}
	page, ok := f.pages[rawURL]
	if !ok {
		return nil, errors.New("404 Not Found for url: " + rawURL)
	}
	return []byte(page), nil
}

func newService(fetcher scraper.PageFetcher, class string) IScraperService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewScraperService(logger, Config{ImageClass: class}, fetcher)
}

const productPage = `<html><body>
<img class="dress-360" src="https://cdn.example.com/a.jpg">
<img class="thumb" src="https://cdn.example.com/thumb.jpg">
<img class="large dress-360" src="/img/b.jpg">
</body></html>`

func TestScrapeDressImages(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{"https://shop.example.com/dress/1": productPage}}
	svc := newService(fetcher, "")

	images, err := svc.ScrapeDressImages(context.Background(), "https://shop.example.com/dress/1")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://shop.example.com/img/b.jpg"}, images)
	assert.Equal(t, []string{"https://shop.example.com/dress/1"}, fetcher.urls)
}

func TestScrapeDressImagesCustomClass(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{"http://shop.example.com/": productPage}}
	svc := newService(fetcher, "thumb")

	images, err := svc.ScrapeDressImages(context.Background(), "http://shop.example.com/")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/thumb.jpg"}, images)
}

func TestScrapeDressImagesNoneFound(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{"https://shop.example.com/": "<html><body><p>empty</p></body></html>"}}
	svc := newService(fetcher, "")

	_, err := svc.ScrapeDressImages(context.Background(), "https://shop.example.com/")

	require.Error(t, err)
	assert.ErrorIs(t, err, scraperApi.ErrScrape)
	assert.Contains(t, err.Error(), "No 360° images found")
}

func TestScrapeDressImagesFetchFailure(t *testing.T) {
	svc := newService(&fakeFetcher{err: errors.New("connection refused")}, "")

	_, err := svc.ScrapeDressImages(context.Background(), "https://shop.example.com/")

	assert.ErrorIs(t, err, scraperApi.ErrScrape)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestScrapeDressImagesRejectsURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want error
	}{
		{"empty", "", scraperApi.ErrURLRequired},
		{"relative", "/dress/1", scraperApi.ErrScrape},
		{"file scheme", "file:///etc/passwd", scraperApi.ErrScrape},
		{"no host", "https://", scraperApi.ErrScrape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{}
			svc := newService(fetcher, "")

			_, err := svc.ScrapeDressImages(context.Background(), tt.url)

			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, fetcher.urls)
		})
	}
}
