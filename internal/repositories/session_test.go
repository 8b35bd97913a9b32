package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	err = rdb.Ping(ctx).Err()
	assert.NoError(t, err)

	repo := NewSessionRepository(rdb, 2*time.Second)

	t.Run("Set and Get", func(t *testing.T) {
		err := repo.Set(ctx, "jane@example.com", "token-id-1")
		assert.NoError(t, err)

		tokenID, err := repo.Get(ctx, "jane@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "token-id-1", tokenID)
	})

	t.Run("Set overwrites the pointer", func(t *testing.T) {
		assert.NoError(t, repo.Set(ctx, "jane@example.com", "token-id-1"))
		assert.NoError(t, repo.Set(ctx, "jane@example.com", "token-id-2"))

		tokenID, err := repo.Get(ctx, "jane@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "token-id-2", tokenID)
	})

	t.Run("Get missing session", func(t *testing.T) {
		_, err := repo.Get(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		assert.NoError(t, repo.Set(ctx, "gone@example.com", "token-id-3"))
		assert.NoError(t, repo.Delete(ctx, "gone@example.com"))

		_, err := repo.Get(ctx, "gone@example.com")
		assert.ErrorIs(t, err, ErrSessionNotFound)

		// deleting an absent session is not an error
		assert.NoError(t, repo.Delete(ctx, "gone@example.com"))
	})

	t.Run("Expires with token lifetime", func(t *testing.T) {
		assert.NoError(t, repo.Set(ctx, "brief@example.com", "token-id-4"))

		time.Sleep(3 * time.Second)

		_, err := repo.Get(ctx, "brief@example.com")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}
