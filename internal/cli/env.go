package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"quizdeck-client/internal/app"
	"quizdeck-client/internal/config"
	"quizdeck-client/internal/infra/file"
	"quizdeck-client/internal/infra/memory"
	redisstore "quizdeck-client/internal/infra/redis"
	transport "quizdeck-client/internal/transport/http"
)

const defaultBaseURL = "http://localhost:5000/api"

// env wires config, durable storage, the session store, and the gateway
// client for one command run.
type env struct {
	cfg     config.Config
	storage app.Storage
	session *app.SessionStore
	gateway app.Gateway
}

func newEnv(ctx context.Context) (*env, error) {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultBaseURL
	}

	storage, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}

	session := app.NewSessionStore(ctx, storage)
	timeout := config.Duration(cfg.API.Timeout, 15*time.Second)
	gateway := transport.NewClient(cfg.API.BaseURL, timeout, session.Token)

	return &env{cfg: cfg, storage: storage, session: session, gateway: gateway}, nil
}

func openStorage(cfg config.Config) (app.Storage, error) {
	switch cfg.Storage.Driver {
	case "", "file":
		path := cfg.Storage.Path
		if path == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, "quizdeck", "session.json")
		}
		return file.Open(path)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		ttl := config.Duration(cfg.Storage.Redis.TTL, 0)
		return redisstore.NewStore(client, ttl), nil
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
