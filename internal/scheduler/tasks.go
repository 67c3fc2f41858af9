package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskMetadataCacheRefresh = "metadata.cache.refresh"

// MetadataCacheRefreshPayload scopes a refresh. An empty EntityType means
// the whole metadata cache is dropped.
type MetadataCacheRefreshPayload struct {
	EntityType string `json:"entityType,omitempty"`
	Reason     string `json:"reason"`
}

func NewMetadataCacheRefreshTask(payload MetadataCacheRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMetadataCacheRefresh, data), nil
}

func ParseMetadataCacheRefreshPayload(task *asynq.Task) (MetadataCacheRefreshPayload, error) {
	var payload MetadataCacheRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return MetadataCacheRefreshPayload{}, err
	}
	return payload, nil
}
