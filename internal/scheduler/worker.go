package scheduler

import (
	"context"
	"fmt"

	"lookup_widget_backend/internal/metadata/service"
	"lookup_widget_backend/platform/config"
	"lookup_widget_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes background tasks from the asynq queue.
type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	metadata *service.Service
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, metadata *service.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 5
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		metadata: metadata,
		log:      log,
	}

	mux.HandleFunc(TaskMetadataCacheRefresh, w.handleMetadataCacheRefresh)

	return w, nil
}

func (w *Worker) handleMetadataCacheRefresh(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseMetadataCacheRefreshPayload(task)
	if err != nil {
		return err
	}

	if err := w.metadata.RefreshCache(ctx); err != nil {
		return err
	}

	w.log.Info("metadata cache refreshed",
		"entity_type", payload.EntityType,
		"reason", payload.Reason)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
