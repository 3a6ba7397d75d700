package expert

import (
	"context"

	"expertbook/models"
)

// ListResult is one page of the expert catalogue in the shape the listing
// endpoint returns.
type ListResult struct {
	Experts     []models.Expert `json:"experts"`
	TotalPages  int64           `json:"totalPages"`
	CurrentPage int64           `json:"currentPage"`
}

// ListParams carries the listing filters and pagination.
type ListParams struct {
	Category string
	Search   string
	Page     int64
	Limit    int64
}

// Service defines the expert catalogue operations.
type Service interface {
	List(ctx context.Context, p ListParams) (*ListResult, error)
	GetByID(ctx context.Context, id string) (*models.Expert, error)

	// InvalidateListingCache drops cached listing pages, best effort.
	// Called after a successful booking so stale availability does not
	// outlive the cache TTL.
	InvalidateListingCache(ctx context.Context)
}
