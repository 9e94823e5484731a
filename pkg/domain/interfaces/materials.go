package interfaces

import (
	"context"

	"github.com/DevMountain/dmget/pkg/domain/model"
)

// MaterialsClient defines operations against the materials server
type MaterialsClient interface {
	// Fetch downloads the archive and returns its content. It never writes to disk.
	Fetch(ctx context.Context, archive model.RemoteArchive) ([]byte, error)
}

// StagedFile is a temporary archive owned by a single run
type StagedFile interface {
	// Path returns the absolute path of the temporary file
	Path() string
	// Remove deletes the temporary file. Calls after the first one are no-ops.
	Remove() error
}

// Stager persists fetched archives to temporary storage
type Stager interface {
	Stage(data []byte, filename string) (StagedFile, error)
}

// Extractor unpacks a staged archive without overwriting existing work
type Extractor interface {
	// Extract returns the project directory, i.e. the first top-level entry
	// joined to the target root, or "" for an archive without entries.
	Extract(ctx context.Context, stagedPath string, target model.ExtractionTarget) (string, error)
}

// Progress is notified as a run moves through its stages
type Progress interface {
	Start(req model.Request)
	Downloading(url string)
	Staged(path string)
	Extracting(dir string)
	CleanedUp(path string, err error)
}
