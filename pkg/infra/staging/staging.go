package staging

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/DevMountain/dmget/pkg/domain/interfaces"
	"github.com/DevMountain/dmget/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type stager struct {
	dir string
}

// Option is a functional option for the stager
type Option func(*stager)

// WithDir stages files under dir instead of the system temp directory
func WithDir(dir string) Option {
	return func(s *stager) {
		s.dir = dir
	}
}

// New creates a stager writing to the system temp directory
func New(opts ...Option) interfaces.Stager {
	s := &stager{dir: os.TempDir()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stage writes data to {dir}/{filename}. A leftover file from an aborted run
// is overwritten.
func (s *stager) Stage(data []byte, filename string) (interfaces.StagedFile, error) {
	dir, err := filepath.Abs(s.dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve temporary directory",
			goerr.T(model.ErrTagIO),
			goerr.V("dir", s.dir),
		)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, goerr.Wrap(err, "failed to write temporary file "+path,
			goerr.T(model.ErrTagIO),
			goerr.V("path", path),
		)
	}

	return &File{path: path, size: int64(len(data))}, nil
}

// File is an archive written by Stage
type File struct {
	path string
	size int64
	once sync.Once
	err  error
}

// Path returns the absolute path of the file
func (f *File) Path() string {
	return f.path
}

// Size returns the number of bytes written
func (f *File) Size() int64 {
	return f.size
}

// Remove deletes the file once. A file that is already gone is not an error.
func (f *File) Remove() error {
	f.once.Do(func() {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			f.err = goerr.Wrap(err, "failed to remove temporary file "+f.path,
				goerr.T(model.ErrTagIO),
				goerr.V("path", f.path),
			)
		}
	})
	return f.err
}
