package httptransport

type CreateEntityRequest struct {
	EntityID   string            `json:"entity_id,omitempty"`
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type EntityDTO struct {
	EntityID   string            `json:"entity_id"`
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes"`
	CreatedAt  string            `json:"created_at"`
}

type EntityResponse struct {
	Entity EntityDTO `json:"entity"`
}

type ListEntitiesResponse struct {
	Items []EntityDTO `json:"items"`
}
