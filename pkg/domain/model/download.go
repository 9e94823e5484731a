package model

import "path/filepath"

// ExtractionTarget describes where an archive is unpacked
type ExtractionTarget struct {
	DestinationRoot string // User-configurable root, ~/src by default
	Subpath         string // Category-dependent segment, empty for exercises
}

// NewExtractionTarget builds the target for req under root
func NewExtractionTarget(root string, req Request) ExtractionTarget {
	return ExtractionTarget{
		DestinationRoot: root,
		Subpath:         req.Category.LocalPath(),
	}
}

// Root returns the directory top-level archive entries are written into
func (t ExtractionTarget) Root() string {
	return filepath.Join(t.DestinationRoot, t.Subpath)
}

// FetchResult represents the outcome of one download run
type FetchResult struct {
	State       State  // Last state reached (Done or Failed once Run returns)
	LastStage   State  // Last non-terminal stage entered
	URL         string // Archive URL that was requested
	StagedPath  string // Temporary file path, already removed when Run returns
	ExtractRoot string // Directory the archive was unpacked into
	ProjectDir  string // First top-level entry of the archive, empty if none
}
