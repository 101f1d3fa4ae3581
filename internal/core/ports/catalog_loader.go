// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/labgen/internal/core/domain"

// CatalogLoader defines the interface for loading the generation catalog.
//
//go:generate go run go.uber.org/mock/mockgen -source=catalog_loader.go -destination=mocks/mock_catalog_loader.go -package=mocks
type CatalogLoader interface {
	// Load reads the catalog at path. An empty path selects the catalog file in
	// the working directory, or the built-in catalog when there is none.
	Load(path string) (*domain.Catalog, error)
}
