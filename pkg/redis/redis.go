package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"VirtualFitting/internal/entity"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const measurementKeyPrefix = "measurements:"

var ErrNotFound = errors.New("measurements not found")

type IRedis interface {
	SetMeasurements(ctx context.Context, key string, m entity.BodyMeasurements, expiration time.Duration) error
	GetMeasurements(ctx context.Context, key string) (entity.BodyMeasurements, error)
	DeleteMeasurements(ctx context.Context, key string) error
	Close() error
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

type redisClient struct {
	client *redis.Client
}

func New(cfg Config) IRedis {
	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", cfg.Addr))

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return NewFromClient(client)
}

func NewFromClient(client *redis.Client) IRedis {
	return &redisClient{client: client}
}

func (r *redisClient) SetMeasurements(ctx context.Context, key string, m entity.BodyMeasurements, expiration time.Duration) error {
	payload, err := jsoniter.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode measurements: %w", err)
	}

	logrus.Debug(fmt.Sprintf("Setting measurements for key %s with expiration %v", key, expiration))
	if err := r.client.Set(ctx, measurementKeyPrefix+key, payload, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error setting measurements for key %s: %v", key, err))
		return err
	}
	return nil
}

func (r *redisClient) GetMeasurements(ctx context.Context, key string) (entity.BodyMeasurements, error) {
	var m entity.BodyMeasurements

	val, err := r.client.Get(ctx, measurementKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		logrus.Debug(fmt.Sprintf("Measurements not found for key %s", key))
		return m, ErrNotFound
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting measurements for key %s: %v", key, err))
		return m, err
	}

	if err := jsoniter.Unmarshal(val, &m); err != nil {
		return m, fmt.Errorf("decode measurements: %w", err)
	}
	return m, nil
}

func (r *redisClient) DeleteMeasurements(ctx context.Context, key string) error {
	result, err := r.client.Del(ctx, measurementKeyPrefix+key).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error deleting measurements for key %s: %v", key, err))
		return err
	}

	if result == 0 {
		logrus.Debug(fmt.Sprintf("Measurements key %s not found for deletion", key))
	}
	return nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
