package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"VirtualFitting/pkg/pose"
	"VirtualFitting/pkg/redis"
	"VirtualFitting/pkg/s3"
	"VirtualFitting/pkg/scraper"
)

type AppConfig struct {
	Port               string
	UploadFolder       string
	StaticFolder       string
	FittedImagePath    string
	AnnotatedImagePath string
	OutputPerRequest   bool
	MaxUploadSize      int64
	RequestTimeout     time.Duration
	MeasurementTTL     time.Duration

	RequestRate float64
	BurstSize   int

	Pose    pose.Config
	Gemini  GeminiConfig
	Scraper ScraperConfig
	Redis   redis.Config
	S3      s3.Config
}

type GeminiConfig struct {
	APIKey    string
	ModelName string
}

type ScraperConfig struct {
	Timeout    time.Duration
	ImageClass string
	UserAgent  string
}

// LoadAppConfig reads the service configuration from the environment. Unset
// or malformed values fall back to their defaults.
func LoadAppConfig() AppConfig {
	static := getEnv("STATIC_FOLDER", "static")

	return AppConfig{
		Port:               getEnv("APP_PORT", "3000"),
		UploadFolder:       getEnv("UPLOAD_FOLDER", "uploads"),
		StaticFolder:       static,
		FittedImagePath:    getEnv("FITTED_IMAGE_PATH", filepath.Join(static, "fitted_image.jpg")),
		AnnotatedImagePath: getEnv("ANNOTATED_IMAGE_PATH", filepath.Join(static, "annotated_image.jpg")),
		OutputPerRequest:   getBool("OUTPUT_PER_REQUEST", false),
		MaxUploadSize:      int64(getInt("MAX_UPLOAD_SIZE", 16<<20)),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		MeasurementTTL:     getDuration("MEASUREMENT_TTL", 24*time.Hour),
		RequestRate:        getFloat("RATE_LIMIT", 50),
		BurstSize:          getInt("RATE_BURST", 100),
		Pose: pose.Config{
			Detector:   getEnv("POSE_DETECTOR", pose.DetectorWebsocket),
			ServiceURL: os.Getenv("POSE_SERVICE_URL"),
		},
		Gemini: GeminiConfig{
			APIKey:    os.Getenv("GEMINI_API_KEY"),
			ModelName: os.Getenv("GEMINI_MODEL_NAME"),
		},
		Scraper: ScraperConfig{
			Timeout:    getDuration("SCRAPER_TIMEOUT", 15*time.Second),
			ImageClass: getEnv("SCRAPER_IMAGE_CLASS", scraper.DefaultImageClass),
			UserAgent:  getEnv("SCRAPER_USER_AGENT", scraper.DefaultUserAgent),
		},
		Redis: redis.Config{
			Addr:     os.Getenv("REDIS_ADDRESS"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		S3: s3.Config{
			Region:          getEnv("AWS_REGION", "ap-southeast-1"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("AWS_BUCKET_NAME"),
			Prefix:          getEnv("AWS_BUCKET_PREFIX", "fitted"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
