package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/DevMountain/dmget/pkg/domain/model"
	"github.com/DevMountain/dmget/pkg/usecase"
)

func TestExtractor_Extract_Success(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	archive := writeTestZip(t, []zipEntry{
		{name: "making-decisions/"},
		{name: "making-decisions/README.md", body: "# Making Decisions"},
		{name: "making-decisions/src/index.js", body: "console.log('hi');"},
	})

	projectDir, err := usecase.NewExtractor().Extract(ctx, archive, model.ExtractionTarget{DestinationRoot: root})
	gt.NoError(t, err)
	gt.Value(t, projectDir).Equal(filepath.Join(root, "making-decisions"))

	content, err := os.ReadFile(filepath.Join(root, "making-decisions", "README.md"))
	gt.NoError(t, err)
	gt.Value(t, string(content)).Equal("# Making Decisions")

	content, err = os.ReadFile(filepath.Join(root, "making-decisions", "src", "index.js"))
	gt.NoError(t, err)
	gt.Value(t, string(content)).Equal("console.log('hi');")
}

func TestExtractor_Extract_WithoutDirectoryEntries(t *testing.T) {
	root := t.TempDir()
	archive := writeTestZip(t, []zipEntry{
		{name: "coding-intro/index.html", body: "<html></html>"},
		{name: "coding-intro/css/main.css", body: "body {}"},
	})

	projectDir, err := usecase.NewExtractor().Extract(context.Background(), archive, model.ExtractionTarget{DestinationRoot: root})
	gt.NoError(t, err)
	gt.Value(t, projectDir).Equal(filepath.Join(root, "coding-intro"))

	_, err = os.Stat(filepath.Join(root, "coding-intro", "css", "main.css"))
	gt.NoError(t, err)
}

func TestExtractor_Extract_Subpath(t *testing.T) {
	root := t.TempDir()
	archive := writeTestZip(t, []zipEntry{
		{name: "coding-intro-solution/"},
		{name: "coding-intro-solution/main.js", body: "// solution"},
	})

	target := model.NewExtractionTarget(root, model.NewRequest("coding-intro", true, false, true))
	projectDir, err := usecase.NewExtractor().Extract(context.Background(), archive, target)
	gt.NoError(t, err)
	gt.Value(t, projectDir).Equal(filepath.Join(root, "homework", "coding-intro-solution"))

	_, err = os.Stat(filepath.Join(root, "homework", "coding-intro-solution", "main.js"))
	gt.NoError(t, err)
}

func TestExtractor_Extract_Collision(t *testing.T) {
	root := t.TempDir()
	existing := filepath.Join(root, "making-decisions")
	gt.NoError(t, os.MkdirAll(existing, 0755))
	gt.NoError(t, os.WriteFile(filepath.Join(existing, "index.js"), []byte("my own work"), 0644))

	archive := writeTestZip(t, []zipEntry{
		{name: "making-decisions/"},
		{name: "making-decisions/index.js", body: "starter code"},
		{name: "making-decisions/extra.js", body: "more starter code"},
	})

	projectDir, err := usecase.NewExtractor().Extract(context.Background(), archive, model.ExtractionTarget{DestinationRoot: root})
	gt.Error(t, err)
	gt.Value(t, projectDir).Equal("")
	gt.Value(t, goerr.HasTag(err, model.ErrTagAlreadyExists)).Equal(true)
	gt.Value(t, model.IsUserError(err)).Equal(true)
	gt.String(t, err.Error()).Contains(existing)
	gt.String(t, err.Error()).Contains("delete")

	// The learner's file is untouched and nothing from the archive was written
	content, err := os.ReadFile(filepath.Join(existing, "index.js"))
	gt.NoError(t, err)
	gt.Value(t, string(content)).Equal("my own work")

	_, err = os.Stat(filepath.Join(existing, "extra.js"))
	gt.Value(t, os.IsNotExist(err)).Equal(true)
}

func TestExtractor_Extract_CollisionOnFile(t *testing.T) {
	root := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("mine"), 0644))

	archive := writeTestZip(t, []zipEntry{
		{name: "notes.txt", body: "theirs"},
	})

	_, err := usecase.NewExtractor().Extract(context.Background(), archive, model.ExtractionTarget{DestinationRoot: root})
	gt.Value(t, goerr.HasTag(err, model.ErrTagAlreadyExists)).Equal(true)

	content, err := os.ReadFile(filepath.Join(root, "notes.txt"))
	gt.NoError(t, err)
	gt.Value(t, string(content)).Equal("mine")
}

func TestExtractor_Extract_LaterCollisionKeepsPrefix(t *testing.T) {
	root := t.TempDir()
	gt.NoError(t, os.MkdirAll(filepath.Join(root, "second"), 0755))

	archive := writeTestZip(t, []zipEntry{
		{name: "first/a.txt", body: "a"},
		{name: "second/b.txt", body: "b"},
	})

	_, err := usecase.NewExtractor().Extract(context.Background(), archive, model.ExtractionTarget{DestinationRoot: root})
	gt.Value(t, goerr.HasTag(err, model.ErrTagAlreadyExists)).Equal(true)
	gt.String(t, err.Error()).Contains(filepath.Join(root, "second"))

	// Files written before the collision are not rolled back
	_, err = os.Stat(filepath.Join(root, "first", "a.txt"))
	gt.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "second", "b.txt"))
	gt.Value(t, os.IsNotExist(err)).Equal(true)
}

func TestExtractor_Extract_EmptyArchive(t *testing.T) {
	root := t.TempDir()
	archive := writeTestZip(t, nil)

	projectDir, err := usecase.NewExtractor().Extract(context.Background(), archive, model.ExtractionTarget{DestinationRoot: root})
	gt.NoError(t, err)
	gt.Value(t, projectDir).Equal("")
}

func TestExtractor_Extract_SkipsMacMetadata(t *testing.T) {
	root := t.TempDir()
	archive := writeTestZip(t, []zipEntry{
		{name: "__MACOSX/"},
		{name: "__MACOSX/making-decisions/._index.js", body: "resource fork"},
		{name: "making-decisions/index.js", body: "starter"},
	})

	projectDir, err := usecase.NewExtractor().Extract(context.Background(), archive, model.ExtractionTarget{DestinationRoot: root})
	gt.NoError(t, err)
	gt.Value(t, projectDir).Equal(filepath.Join(root, "making-decisions"))

	_, err = os.Stat(filepath.Join(root, "__MACOSX"))
	gt.Value(t, os.IsNotExist(err)).Equal(true)
}

func TestExtractor_Extract_PathTraversal(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "src")
	archive := writeTestZip(t, []zipEntry{
		{name: "../evil.txt", body: "escaped"},
	})

	_, err := usecase.NewExtractor().Extract(context.Background(), archive, model.ExtractionTarget{DestinationRoot: root})
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, model.ErrTagInvalidArchive)).Equal(true)

	_, err = os.Stat(filepath.Join(base, "evil.txt"))
	gt.Value(t, os.IsNotExist(err)).Equal(true)
}

func TestExtractor_Extract_InvalidZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.zip")
	gt.NoError(t, os.WriteFile(path, []byte("this is not valid zip data"), 0600))

	_, err := usecase.NewExtractor().Extract(context.Background(), path, model.ExtractionTarget{DestinationRoot: t.TempDir()})
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, model.ErrTagInvalidArchive)).Equal(true)
}

type zipEntry struct {
	name string
	body string
}

// createTestZip builds a ZIP archive with entries in the given order
func createTestZip(t *testing.T, entries []zipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	for _, entry := range entries {
		writer, err := zipWriter.Create(entry.name)
		gt.NoError(t, err)

		if entry.body != "" {
			_, err = writer.Write([]byte(entry.body))
			gt.NoError(t, err)
		}
	}

	err := zipWriter.Close()
	gt.NoError(t, err)

	return buf.Bytes()
}

// writeTestZip writes a test ZIP archive to a temporary file and returns its path
func writeTestZip(t *testing.T, entries []zipEntry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "archive.zip")
	gt.NoError(t, os.WriteFile(path, createTestZip(t, entries), 0600))
	return path
}
