package staging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/DevMountain/dmget/pkg/domain/model"
	"github.com/DevMountain/dmget/pkg/infra/staging"
)

func TestStager_Stage(t *testing.T) {
	dir := t.TempDir()
	s := staging.New(staging.WithDir(dir))

	f, err := s.Stage([]byte("zip bytes"), "making-decisions.zip")
	gt.NoError(t, err)
	gt.Value(t, f.Path()).Equal(filepath.Join(dir, "making-decisions.zip"))
	gt.Value(t, filepath.IsAbs(f.Path())).Equal(true)

	content, err := os.ReadFile(f.Path())
	gt.NoError(t, err)
	gt.Value(t, string(content)).Equal("zip bytes")
}

func TestStager_Stage_OverwritesLeftover(t *testing.T) {
	dir := t.TempDir()
	leftover := filepath.Join(dir, "coding-intro-solution.zip")
	gt.NoError(t, os.WriteFile(leftover, []byte("stale content from an aborted run"), 0600))

	s := staging.New(staging.WithDir(dir))
	f, err := s.Stage([]byte("fresh"), "coding-intro-solution.zip")
	gt.NoError(t, err)
	gt.Value(t, f.Path()).Equal(leftover)

	content, err := os.ReadFile(leftover)
	gt.NoError(t, err)
	gt.Value(t, string(content)).Equal("fresh")
}

func TestStager_Stage_MissingDir(t *testing.T) {
	s := staging.New(staging.WithDir(filepath.Join(t.TempDir(), "does-not-exist")))

	f, err := s.Stage([]byte("zip bytes"), "making-decisions.zip")
	gt.Error(t, err)
	gt.Value(t, f).Nil()
	gt.Value(t, goerr.HasTag(err, model.ErrTagIO)).Equal(true)
}

func TestFile_Remove(t *testing.T) {
	s := staging.New(staging.WithDir(t.TempDir()))
	f, err := s.Stage([]byte("zip bytes"), "making-decisions.zip")
	gt.NoError(t, err)

	gt.NoError(t, f.Remove())
	_, err = os.Stat(f.Path())
	gt.Value(t, os.IsNotExist(err)).Equal(true)

	t.Run("second call is a no-op", func(t *testing.T) {
		// Recreate the file; a second Remove must not delete it again.
		gt.NoError(t, os.WriteFile(f.Path(), []byte("another run"), 0600))
		gt.NoError(t, f.Remove())
		_, err := os.Stat(f.Path())
		gt.NoError(t, err)
	})
}

func TestFile_Remove_AlreadyGone(t *testing.T) {
	s := staging.New(staging.WithDir(t.TempDir()))
	f, err := s.Stage([]byte("zip bytes"), "making-decisions.zip")
	gt.NoError(t, err)

	gt.NoError(t, os.Remove(f.Path()))
	gt.NoError(t, f.Remove())
}
