package transport

// EntityOption is one entry in the entity type dropdown.
type EntityOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FieldOption is one entry in a field picker dropdown.
type FieldOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// LabelsResponse maps field names to display labels.
type LabelsResponse struct {
	EntityType string            `json:"entityType"`
	Labels     map[string]string `json:"labels"`
}

// IconResponse carries the icon identifier for an entity type.
type IconResponse struct {
	EntityType string `json:"entityType"`
	Icon       string `json:"icon"`
}
