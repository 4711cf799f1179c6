package redis

import (
	"context"
	"testing"
	"time"

	"VirtualFitting/internal/entity"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	store := NewFromClient(client)
	defer store.Close()

	ctx := context.Background()

	err := store.SetMeasurements(ctx, "user.jpg", entity.BodyMeasurements{ShoulderWidth: 0.4}, time.Minute)
	assert.Error(t, err)

	_, err = store.GetMeasurements(ctx, "user.jpg")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	assert.Error(t, store.DeleteMeasurements(ctx, "user.jpg"))
}

func newMiniredisStore(t *testing.T) (IRedis, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	store := NewFromClient(redis.NewClient(&redis.Options{Addr: server.Addr()}))
	t.Cleanup(func() { store.Close() })
	return store, server
}

func TestMeasurementsRoundTrip(t *testing.T) {
	store, server := newMiniredisStore(t)
	ctx := context.Background()
	want := entity.BodyMeasurements{ShoulderWidth: 0.41, WaistWidth: 0.3, Height: 136.5}

	require.NoError(t, store.SetMeasurements(ctx, "user.png", want, time.Hour))

	raw, err := server.Get("measurements:user.png")
	require.NoError(t, err)
	assert.JSONEq(t, `{"shoulder_width":0.41,"waist_width":0.3,"height":136.5}`, raw)
	assert.Equal(t, time.Hour, server.TTL("measurements:user.png"))

	got, err := store.GetMeasurements(ctx, "user.png")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetMeasurementsMissingKey(t *testing.T) {
	store, _ := newMiniredisStore(t)

	_, err := store.GetMeasurements(context.Background(), "absent.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMeasurementsExpire(t *testing.T) {
	store, server := newMiniredisStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetMeasurements(ctx, "user.png", entity.BodyMeasurements{ShoulderWidth: 0.4}, time.Minute))
	server.FastForward(2 * time.Minute)

	_, err := store.GetMeasurements(ctx, "user.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMeasurements(t *testing.T) {
	store, server := newMiniredisStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetMeasurements(ctx, "user.png", entity.BodyMeasurements{ShoulderWidth: 0.4}, 0))
	require.NoError(t, store.DeleteMeasurements(ctx, "user.png"))
	assert.False(t, server.Exists("measurements:user.png"))

	assert.NoError(t, store.DeleteMeasurements(ctx, "user.png"))
}

func TestGetMeasurementsCorruptValue(t *testing.T) {
	store, server := newMiniredisStore(t)
	require.NoError(t, server.Set("measurements:user.png", "not json"))

	_, err := store.GetMeasurements(context.Background(), "user.png")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
