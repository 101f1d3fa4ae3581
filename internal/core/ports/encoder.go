package ports

import (
	"io"

	"go.trai.ch/labgen/internal/core/domain"
)

// DocumentEncoder serializes a generated document.
type DocumentEncoder interface {
	// Encode writes the document to w.
	Encode(w io.Writer, doc *domain.Document) error
}
