package scheduler

import (
	"context"
	"time"

	"lookup_widget_backend/internal/events"
	"lookup_widget_backend/platform/logger"
)

// RefreshDispatcher keeps the metadata cache warm. It re-enqueues a full
// refresh on a fixed interval and a targeted one whenever the catalog
// changes.
type RefreshDispatcher struct {
	client   RefreshScheduler
	interval time.Duration
	log      *logger.Logger
}

func NewRefreshDispatcher(client RefreshScheduler, interval time.Duration, log *logger.Logger) *RefreshDispatcher {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &RefreshDispatcher{client: client, interval: interval, log: log}
}

// SubscribeCatalogEvents registers the dispatcher on the event bus so
// catalog writes invalidate cached metadata promptly.
func (d *RefreshDispatcher) SubscribeCatalogEvents(bus events.Bus) {
	bus.Subscribe(events.CatalogChanged{}.EventName(), events.HandlerFunc(
		func(ctx context.Context, event events.Event) error {
			changed, ok := event.(events.CatalogChanged)
			if !ok {
				return nil
			}
			return d.client.ScheduleMetadataRefresh(ctx, MetadataCacheRefreshPayload{
				EntityType: changed.EntityType,
				Reason:     "catalog changed",
			})
		}))
}

// Run enqueues periodic full refreshes until the context is canceled.
func (d *RefreshDispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := d.client.ScheduleMetadataRefresh(ctx, MetadataCacheRefreshPayload{
				Reason: "periodic",
			})
			if err != nil {
				d.log.Error("metadata refresh enqueue failed", "error", err)
			}
		}
	}
}
