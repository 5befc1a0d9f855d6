package config

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	temporalclient "go.temporal.io/sdk/client"

	"github.com/tjs-lang/tjs/capability/llm/anthropic"
	"github.com/tjs-lang/tjs/capability/llm/bedrock"
	capopenai "github.com/tjs-lang/tjs/capability/llm/openai"
	"github.com/tjs-lang/tjs/capability/llm/ratelimit"
	"github.com/tjs-lang/tjs/capability/store/memory"
	capredis "github.com/tjs-lang/tjs/capability/store/redis"
	capmongo "github.com/tjs-lang/tjs/capability/vector/mongo"
	"github.com/tjs-lang/tjs/engine/inmem"
	enginetemporal "github.com/tjs-lang/tjs/engine/temporal"
	"github.com/tjs-lang/tjs/vm"
)

// BuildCapabilities constructs a vm.Capabilities from cfg, dialing
// whichever backends are configured and leaving the rest nil so
// vm.NewRuntimeContext/bindCapabilities treat them as unconfigured.
func BuildCapabilities(ctx context.Context, cfg *Config) (vm.Capabilities, error) {
	var caps vm.Capabilities

	switch cfg.Store.Backend {
	case "", "memory":
		caps.Store = memory.New()
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Store.RedisAddr})
		store, err := capredis.New(capredis.Options{Redis: client, KeyPrefix: cfg.Store.KeyPrefix})
		if err != nil {
			return caps, fmt.Errorf("config: build redis store: %w", err)
		}
		caps.Store = store
	default:
		return caps, fmt.Errorf("config: unknown store backend %q", cfg.Store.Backend)
	}

	switch cfg.Vector.Backend {
	case "":
	case "mongo":
		client, err := mongo.Connect(options.Client().ApplyURI(cfg.Vector.MongoURI))
		if err != nil {
			return caps, fmt.Errorf("config: connect mongo: %w", err)
		}
		store, err := capmongo.New(capmongo.Options{
			Database:      client.Database(cfg.Vector.Database),
			IndexName:     cfg.Vector.IndexName,
			EmbeddingPath: cfg.Vector.EmbeddingPath,
		})
		if err != nil {
			return caps, fmt.Errorf("config: build mongo vector store: %w", err)
		}
		caps.Vector = store
	default:
		return caps, fmt.Errorf("config: unknown vector backend %q", cfg.Vector.Backend)
	}

	switch cfg.LLM.Provider {
	case "":
	case "anthropic":
		client, err := anthropic.NewFromAPIKey(cfg.LLM.APIKey, cfg.LLM.DefaultModel)
		if err != nil {
			return caps, fmt.Errorf("config: build anthropic client: %w", err)
		}
		caps.LLM = client
	case "openai":
		client, err := capopenai.NewFromAPIKey(cfg.LLM.APIKey, cfg.LLM.DefaultModel)
		if err != nil {
			return caps, fmt.Errorf("config: build openai client: %w", err)
		}
		caps.LLM = client
	case "bedrock":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.LLM.Region))
		if err != nil {
			return caps, fmt.Errorf("config: load aws config: %w", err)
		}
		client, err := bedrock.New(bedrockruntime.NewFromConfig(awsCfg), bedrock.Options{DefaultModel: cfg.LLM.DefaultModel})
		if err != nil {
			return caps, fmt.Errorf("config: build bedrock client: %w", err)
		}
		caps.LLM = client
	default:
		return caps, fmt.Errorf("config: unknown llm provider %q", cfg.LLM.Provider)
	}

	caps.LLM = ratelimit.Wrap(caps.LLM, cfg.LLM.RequestsPerMinute)

	return caps, nil
}

// BuildProcedureStore constructs a vm.ProcedureStore from cfg.Engine.
func BuildProcedureStore(cfg *Config) (vm.ProcedureStore, error) {
	switch cfg.Engine.Backend {
	case "", "inmem":
		return inmem.New(), nil
	case "temporal":
		client, err := temporalclient.Dial(temporalclient.Options{HostPort: cfg.Engine.TemporalHostPort})
		if err != nil {
			return nil, fmt.Errorf("config: dial temporal: %w", err)
		}
		store, err := enginetemporal.New(enginetemporal.Options{
			Client:    client,
			TaskQueue: cfg.Engine.TemporalTaskQueue,
		})
		if err != nil {
			return nil, fmt.Errorf("config: build temporal engine: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("config: unknown engine backend %q", cfg.Engine.Backend)
	}
}
