package model

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultBaseURL is the materials server used when no --url is given
const DefaultBaseURL = "https://ed.devmountain.com/materials"

// DefaultDestination returns ~/src, or a relative "src" when the home
// directory cannot be determined
func DefaultDestination() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "src"
	}
	return filepath.Join(home, "src")
}

// Category selects the remote base path and the local destination subpath
type Category int

const (
	CategoryExercise Category = iota
	CategoryHomework
	CategoryDemo
)

// String returns the human-readable name of the category
func (c Category) String() string {
	switch c {
	case CategoryHomework:
		return "homework"
	case CategoryDemo:
		return "demo"
	default:
		return "exercise"
	}
}

// RemotePath returns the path segment appended to the base URL
func (c Category) RemotePath() string {
	switch c {
	case CategoryHomework:
		return "homework"
	case CategoryDemo:
		return "lectures"
	default:
		return "exercises"
	}
}

// LocalPath returns the segment placed between the destination root and the
// extracted project. Exercises are extracted directly into the root.
func (c Category) LocalPath() string {
	switch c {
	case CategoryHomework:
		return "homework"
	case CategoryDemo:
		return "demos"
	default:
		return ""
	}
}

// Variant selects starter or solution code
type Variant int

const (
	VariantStarter Variant = iota
	VariantSolution
)

// String returns the human-readable name of the variant
func (v Variant) String() string {
	if v == VariantSolution {
		return "solution"
	}
	return "starter"
}

// Request is one download asked for by the user
type Request struct {
	Slug     string
	Category Category
	Variant  Variant
}

// NewRequest builds a Request from the CLI flags. --demo takes precedence over
// --homework when both are given.
func NewRequest(slug string, homework, demo, solution bool) Request {
	req := Request{Slug: slug, Category: CategoryExercise, Variant: VariantStarter}
	switch {
	case demo:
		req.Category = CategoryDemo
	case homework:
		req.Category = CategoryHomework
	}
	if solution {
		req.Variant = VariantSolution
	}
	return req
}

// Validate checks the request before any network or filesystem activity
func (r Request) Validate() error {
	if strings.TrimSpace(r.Slug) == "" {
		return goerr.New("slug must not be empty", goerr.T(ErrTagInvalidRequest))
	}
	if r.Category == CategoryDemo && r.Variant == VariantSolution {
		return goerr.New("--solution and --demo can't be both passed as options because lecture demos don't have solutions",
			goerr.T(ErrTagIncompatibleFlags),
			goerr.V("slug", r.Slug),
		)
	}
	return nil
}

// Filename returns the archive file name, e.g. "making-decisions-solution.zip"
func (r Request) Filename() string {
	if r.Variant == VariantSolution {
		return r.Slug + "-solution.zip"
	}
	return r.Slug + ".zip"
}

// Archive resolves the remote archive for the request against base
func (r Request) Archive(base string) RemoteArchive {
	base = strings.TrimRight(base, "/")
	filename := r.Filename()
	return RemoteArchive{
		URL:      base + "/" + r.Category.RemotePath() + "/" + url.PathEscape(filename),
		Filename: filename,
		Slug:     r.Slug,
	}
}

// RemoteArchive is the resolved location of the archive on the materials server
type RemoteArchive struct {
	URL      string
	Filename string
	Slug     string
}
