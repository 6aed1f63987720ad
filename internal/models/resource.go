package models

import "time"

// Resource is a space, piece of equipment or service allocated to an event.
type Resource struct {
	ID           int64          `json:"id"`
	EventID      int64          `json:"eventId"`
	ResourceType ResourceType   `json:"resourceType"`
	ResourceID   *int64         `json:"resourceId"`
	ResourceName string         `json:"resourceName"`
	Quantity     int            `json:"quantity"`
	Notes        string         `json:"notes"`
	Status       ResourceStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// ResourcePatch holds the optional fields of a partial resource update.
type ResourcePatch struct {
	ResourceName *string
	Quantity     *int
	Notes        *string
	Status       *ResourceStatus
}

// ResourceSummary counts the resources of one event.
type ResourceSummary struct {
	Total    int                    `json:"total"`
	ByType   map[ResourceType]int   `json:"byType"`
	ByStatus map[ResourceStatus]int `json:"byStatus"`
}
