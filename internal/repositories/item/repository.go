// Package item provides the repository interface and types for the shared
// item catalog (read-mostly reference data)
package item

import (
	"context"

	"github.com/animarpg/anima-api/internal/entities/anima"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=itemmock github.com/animarpg/anima-api/internal/repositories/item Repository

// PutInput contains parameters for storing a catalog item
type PutInput struct {
	Item *anima.Item
}

// PutOutput contains the result of storing a catalog item
type PutOutput struct {
	Item *anima.Item
}

// GetInput contains parameters for retrieving a catalog item
type GetInput struct {
	ID string
}

// GetOutput contains the result of retrieving a catalog item
type GetOutput struct {
	Item *anima.Item
}

// Repository defines the interface for item catalog storage
type Repository interface {
	// Put stores or replaces a catalog item
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Get retrieves a catalog item by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
}
