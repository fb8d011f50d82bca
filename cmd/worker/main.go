package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"artplatform-backend/internal/config"
	"artplatform-backend/internal/infrastructure/storage"
	"artplatform-backend/internal/shared"
	"artplatform-backend/pkg/logger"
)

// The worker drains the storage queue: when a record is deleted or its
// image replaced, the API enqueues the orphaned object key here instead of
// deleting inline, so a slow or flaky object store never delays a request.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.App.Environment)

	objectStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				shared.QueueStorage: 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(shared.TypeDeleteStorageObject, deleteStorageObjectHandler(objectStorage))

	log.Info().Msg("Starting background worker")
	if err := srv.Run(mux); err != nil {
		log.Fatal().Err(err).Msg("Worker failed")
	}
}

func deleteStorageObjectHandler(objectStorage storage.ObjectStorage) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload shared.DeleteStorageObjectPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}
		if payload.Key == "" {
			return fmt.Errorf("empty object key: %w", asynq.SkipRetry)
		}

		if err := objectStorage.Delete(ctx, payload.Key); err != nil {
			return fmt.Errorf("failed to delete object %s: %w", payload.Key, err)
		}

		log.Info().Str("key", payload.Key).Msg("Deleted orphaned storage object")
		return nil
	}
}
