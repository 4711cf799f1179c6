package config

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"VirtualFitting/internal/entity"
	"VirtualFitting/pkg/pose"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDetector struct{}

func (stubDetector) Detect(context.Context, image.Image) (entity.Landmarks, error) {
	return entity.Landmarks{
		pose.Nose:          {X: 0.5, Y: 0.1},
		pose.LeftShoulder:  {X: 0.7, Y: 0.25},
		pose.RightShoulder: {X: 0.3, Y: 0.25},
		pose.LeftHip:       {X: 0.65, Y: 0.55},
		pose.RightHip:      {X: 0.35, Y: 0.55},
		pose.LeftAnkle:     {X: 0.6, Y: 0.9},
	}, nil
}

func (stubDetector) Close() {}

type stubFetcher struct {
	pages map[string][]byte
}

func (f stubFetcher) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	if page, ok := f.pages[rawURL]; ok {
		return page, nil
	}
	return nil, os.ErrNotExist
}

func pngBytes(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestServer(t *testing.T, fetcher stubFetcher) (*Server, AppConfig) {
	t.Helper()
	dir := t.TempDir()
	cfg := AppConfig{
		UploadFolder:       filepath.Join(dir, "uploads"),
		StaticFolder:       filepath.Join(dir, "static"),
		FittedImagePath:    filepath.Join(dir, "static", "fitted_image.png"),
		AnnotatedImagePath: filepath.Join(dir, "static", "annotated_image.jpg"),
		MaxUploadSize:      1 << 20,
	}
	require.NoError(t, os.MkdirAll(cfg.StaticFolder, 0o755))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	server, err := NewServer(
		WithFiber(NewFiber(logger, cfg)),
		WithLogger(logger),
		WithAppConfig(cfg),
		WithMiddleware(),
		WithImageStore(),
		WithPoseDetector(stubDetector{}),
		WithPageFetcher(fetcher),
		WithUtils(),
	)
	require.NoError(t, err)

	server.RegisterHandler()
	server.Routes()
	return server, cfg
}

func upload(t *testing.T, s *Server, filename string, content []byte) *http.Response {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := s.engine.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func postJSON(t *testing.T, s *Server, path, payload string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.engine.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func jsonBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	s, _ := newTestServer(t, stubFetcher{})

	resp, err := s.engine.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Server is Healthy!", jsonBody(t, resp)["message"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestUploadRejectsNonImages(t *testing.T) {
	s, cfg := newTestServer(t, stubFetcher{})

	resp := upload(t, s, "notes.txt", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid file type", jsonBody(t, resp)["error"])

	resp = upload(t, s, "photo.jpg", []byte("definitely not a jpeg"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	entries, _ := os.ReadDir(cfg.UploadFolder)
	assert.Empty(t, entries)
}

func TestUploadThenFitAndServeStatic(t *testing.T) {
	s, cfg := newTestServer(t, stubFetcher{})

	resp := upload(t, s, "user.png", pngBytes(t, 100, 200, color.NRGBA{A: 255}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := jsonBody(t, resp)
	assert.Equal(t, "Image uploaded successfully", body["message"])
	assert.Equal(t, "user.png", body["filename"])
	assert.InDelta(t, 0.4, body["user_data"].(map[string]interface{})["shoulder_width"], 1e-9)
	assert.FileExists(t, cfg.AnnotatedImagePath)

	require.NoError(t, os.WriteFile(filepath.Join(cfg.UploadFolder, "dress.png"), pngBytes(t, 10, 10, color.NRGBA{R: 255, A: 255}), 0o644))

	resp = postJSON(t, s, "/api/v1/fit", `{"user_image":"user.png","dress_image":"dress.png","measurements":{"shoulder_width":0.4,"height":0.6}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	results := jsonBody(t, resp)["results"].(map[string]interface{})
	assert.Equal(t, filepath.ToSlash(cfg.FittedImagePath), results["fitted_image"])
	assert.Equal(t, 30.0, results["offset"].(map[string]interface{})["x"])
	assert.Equal(t, 60.0, results["offset"].(map[string]interface{})["y"])

	resp, err := s.engine.Test(httptest.NewRequest(http.MethodGet, "/static/fitted_image.png", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFitMissingDressImage(t *testing.T) {
	s, _ := newTestServer(t, stubFetcher{})

	resp := postJSON(t, s, "/api/v1/fit", `{"user_image":"user.png"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Both user image and dress image are required", jsonBody(t, resp)["error"])
}

func TestScrapeEndToEnd(t *testing.T) {
	s, _ := newTestServer(t, stubFetcher{pages: map[string][]byte{
		"https://shop.example.com/dress": []byte(`<img class="dress-360" src="/360/1.jpg"><img class="dress-360" src="/360/2.jpg">`),
		"https://shop.example.com/empty": []byte(`<p>sold out</p>`),
	}})

	resp := postJSON(t, s, "/api/v1/scrape", `{"url":"https://shop.example.com/dress"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []interface{}{"https://shop.example.com/360/1.jpg", "https://shop.example.com/360/2.jpg"}, jsonBody(t, resp)["images"])

	resp = postJSON(t, s, "/api/v1/scrape", `{"url":"https://shop.example.com/empty"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, jsonBody(t, resp)["error"], "No 360° images found")

	resp = postJSON(t, s, "/api/v1/scrape", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNewServerRequiresEngineAndLogger(t *testing.T) {
	_, err := NewServer(WithLogger(logrus.New()))
	assert.Error(t, err)

	_, err = NewServer(WithFiber(NewFiber(logrus.New(), AppConfig{})))
	assert.Error(t, err)
}

func TestNewServerRejectsUnknownDetector(t *testing.T) {
	cfg := AppConfig{Pose: pose.Config{Detector: "openpose"}}
	logger := logrus.New()

	_, err := NewServer(WithFiber(NewFiber(logger, cfg)), WithLogger(logger), WithAppConfig(cfg))
	assert.Error(t, err)
}
