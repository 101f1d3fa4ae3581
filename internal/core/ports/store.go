package ports

import "go.trai.ch/labgen/internal/core/domain"

// StampStore defines the interface for storing and retrieving output stamps.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type StampStore interface {
	// Get retrieves the stamp of the given output path.
	// Returns nil, nil if not found.
	Get(output string) (*domain.Stamp, error)

	// Put stores the stamp.
	Put(stamp domain.Stamp) error
}
