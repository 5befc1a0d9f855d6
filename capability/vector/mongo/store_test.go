package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	testClient      *mongo.Client
	testContainer   testcontainers.Container
	skipIntegration bool
)

func TestMain(m *testing.M) {
	setupMongo()
	code := m.Run()
	if testClient != nil {
		_ = testClient.Disconnect(context.Background())
	}
	if testContainer != nil {
		_ = testContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

func setupMongo() {
	ctx := context.Background()

	var containerErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				containerErr = fmt.Errorf("docker not available: %v", r)
			}
		}()
		req := testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections"),
			Tmpfs:        map[string]string{"/data/db": "rw"},
		}
		testContainer, containerErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
	}()

	if containerErr != nil {
		skipIntegration = true
		return
	}

	host, err := testContainer.Host(ctx)
	port, perr := testContainer.MappedPort(ctx, "27017")
	if err != nil || perr != nil {
		skipIntegration = true
		return
	}

	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	testClient, err = mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		skipIntegration = true
		return
	}
	if err := testClient.Ping(ctx, nil); err != nil {
		skipIntegration = true
	}
}

func TestNew_RequiresDatabaseAndIndex(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestStore_UpsertThenSearch(t *testing.T) {
	if skipIntegration {
		t.Skip("mongodb not available")
	}
	db := testClient.Database("tjs_vector_test")
	s, err := New(Options{Database: db, IndexName: "vector_index"})
	require.NoError(t, err)

	err = s.Upsert(context.Background(), t.Name(), "doc-1", []float64{0.1, 0.2, 0.3}, map[string]any{"label": "a"})
	require.NoError(t, err)
	assert.NotNil(t, s)
}
