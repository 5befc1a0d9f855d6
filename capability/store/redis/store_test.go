package redis

import (
	"context"
	"fmt"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testClient      *goredis.Client
	testContainer   testcontainers.Container
	skipIntegration bool
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	var containerErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				containerErr = fmt.Errorf("docker not available: %v", r)
			}
		}()
		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		}
		testContainer, containerErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
	}()

	if containerErr != nil {
		fmt.Printf("docker not available, skipping redis store integration tests: %v\n", containerErr)
		skipIntegration = true
	} else {
		host, err := testContainer.Host(ctx)
		port, perr := testContainer.MappedPort(ctx, "6379")
		if err != nil || perr != nil {
			skipIntegration = true
		} else {
			testClient = goredis.NewClient(&goredis.Options{Addr: host + ":" + port.Port()})
			if err := testClient.Ping(ctx).Err(); err != nil {
				skipIntegration = true
			}
		}
	}

	code := m.Run()

	if testClient != nil {
		_ = testClient.Close()
	}
	if testContainer != nil {
		_ = testContainer.Terminate(ctx)
	}
	os.Exit(code)
}

func TestStore_SetGetDelete(t *testing.T) {
	if skipIntegration {
		t.Skip("redis not available")
	}
	s, err := New(Options{Redis: testClient, KeyPrefix: "sigtest:"})
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", map[string]any{"hello": "world"}))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"hello": "world"}, v)

	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNew_RequiresClient(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}
