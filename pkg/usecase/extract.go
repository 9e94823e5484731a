package usecase

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/DevMountain/dmget/pkg/domain/interfaces"
	"github.com/DevMountain/dmget/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// macOS resource forks added by Finder's "Compress"
const macMetadataDir = "__MACOSX"

type extractor struct{}

// NewExtractor creates an Extractor for zip archives
func NewExtractor() interfaces.Extractor {
	return &extractor{}
}

// Extract unpacks the zip at stagedPath into target.Root(). Before anything is
// written under a top-level name, that name is checked against the disk and
// extraction aborts if it already exists.
func (x *extractor) Extract(ctx context.Context, stagedPath string, target model.ExtractionTarget) (string, error) {
	logger := ctxlog.From(ctx)
	root := target.Root()

	zr, err := zip.OpenReader(stagedPath)
	if err != nil {
		// zip.ErrInsecurePath comes back together with an open reader
		if zr != nil {
			zr.Close()
		}
		return "", goerr.Wrap(err, "failed to open archive",
			goerr.T(model.ErrTagInvalidArchive),
			goerr.V("path", stagedPath),
		)
	}
	defer zr.Close()

	if err := os.MkdirAll(root, 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create destination directory "+root,
			goerr.T(model.ErrTagIO),
			goerr.V("path", root),
		)
	}

	var projectDir string
	checked := make(map[string]struct{})

	for _, file := range zr.File {
		name, ok, err := entryName(file.Name)
		if err != nil {
			return "", err
		}
		if !ok {
			logger.Debug("Skipping archive entry", "name", file.Name)
			continue
		}

		top, _, _ := strings.Cut(name, "/")
		if _, seen := checked[top]; !seen {
			dest := filepath.Join(root, filepath.FromSlash(top))
			if err := ensureAbsent(dest); err != nil {
				return "", err
			}
			checked[top] = struct{}{}
			if projectDir == "" {
				projectDir = dest
			}
		}

		if err := x.extractFile(file, filepath.Join(root, filepath.FromSlash(name))); err != nil {
			return "", err
		}
	}

	logger.Debug("Extracted archive",
		"root", root,
		"entries", len(zr.File),
		"project_dir", projectDir,
	)

	return projectDir, nil
}

// entryName normalizes an archive entry name. ok is false for entries that are
// skipped rather than written.
func entryName(raw string) (name string, ok bool, err error) {
	name = path.Clean(strings.ReplaceAll(raw, `\`, "/"))
	if name == "." {
		return "", false, nil
	}
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", false, goerr.New("invalid file path detected in archive: "+raw,
			goerr.T(model.ErrTagInvalidArchive),
			goerr.V("name", raw),
		)
	}
	if name == macMetadataDir || strings.HasPrefix(name, macMetadataDir+"/") {
		return "", false, nil
	}
	return name, true, nil
}

// ensureAbsent fails when dest already exists, so a learner's work is never
// overwritten.
func ensureAbsent(dest string) error {
	_, err := os.Lstat(dest)
	switch {
	case err == nil:
		return goerr.New("can't extract files because "+dest+" already exists. "+
			"If you really want to overwrite it, delete "+dest+" and try again",
			goerr.T(model.ErrTagAlreadyExists),
			goerr.V("path", dest),
		)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return goerr.Wrap(err, "failed to check destination "+dest,
			goerr.T(model.ErrTagIO),
			goerr.V("path", dest),
		)
	}
}

// extractFile writes a single archive entry to destPath
func (x *extractor) extractFile(file *zip.File, destPath string) error {
	info := file.FileInfo()

	if info.IsDir() {
		if err := os.MkdirAll(destPath, 0755); err != nil {
			return goerr.Wrap(err, "failed to create directory "+destPath,
				goerr.T(model.ErrTagIO),
				goerr.V("path", destPath),
			)
		}
		return nil
	}

	// Links are not materialized; a link could point outside the destination.
	if info.Mode()&fs.ModeSymlink != 0 {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return goerr.Wrap(err, "failed to create parent directories "+filepath.Dir(destPath),
			goerr.T(model.ErrTagIO),
			goerr.V("path", destPath),
		)
	}

	rc, err := file.Open()
	if err != nil {
		return goerr.Wrap(err, "failed to open file in archive",
			goerr.T(model.ErrTagInvalidArchive),
			goerr.V("name", file.Name),
		)
	}
	defer rc.Close()

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return goerr.Wrap(err, "failed to create destination file "+destPath,
			goerr.T(model.ErrTagIO),
			goerr.V("path", destPath),
		)
	}

	if _, err := io.Copy(destFile, rc); err != nil {
		destFile.Close()
		return goerr.Wrap(err, "failed to copy file content to "+destPath,
			goerr.T(model.ErrTagIO),
			goerr.V("path", destPath),
		)
	}

	if err := destFile.Close(); err != nil {
		return goerr.Wrap(err, "failed to close "+destPath,
			goerr.T(model.ErrTagIO),
			goerr.V("path", destPath),
		)
	}

	return nil
}
