package domain

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
)

const (
	// DocumentFilePerm is the mode generated documents are written with.
	DocumentFilePerm = 0o644
	// PrivateDirPerm is the mode of directories created for state files.
	PrivateDirPerm = 0o750
	// StateDir is created next to generated outputs to hold their stamps.
	StateDir = ".labgen"
	// StateFile is the stamp file inside StateDir.
	StateFile = "stamps.json"
)

// StatePathFor returns the stamp file of the output at path.
// Stamps sit beside the output, so they are found from any working directory.
func StatePathFor(output string) string {
	return filepath.Join(filepath.Dir(output), StateDir, StateFile)
}

// Stamp records what labgen last wrote to an output file.
type Stamp struct {
	Output      string    `json:"output,omitzero"`
	Digest      string    `json:"digest,omitzero"`
	Records     int       `json:"records,omitzero"`
	GeneratedAt time.Time `json:"generated_at,omitzero"`
}

// Digest returns the content digest used to compare generated documents.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// CheckStatus is the outcome of comparing an output file with its catalog.
type CheckStatus string

const (
	// CheckUpToDate means the file holds exactly what the catalog generates.
	CheckUpToDate CheckStatus = "up-to-date"
	// CheckStale means the catalog changed since the file was generated.
	CheckStale CheckStatus = "stale"
	// CheckModified means the file was edited after labgen wrote it.
	CheckModified CheckStatus = "modified"
	// CheckMissing means the output file does not exist.
	CheckMissing CheckStatus = "missing"
)
