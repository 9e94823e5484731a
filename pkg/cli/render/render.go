// Package render prints the human-facing output of dmget. Everything here is
// presentation; the pipeline itself only reports events through
// interfaces.Progress.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DevMountain/dmget/pkg/domain/model"
	"github.com/fatih/color"
)

const name = "dmget"

var (
	bold    = color.New(color.Bold)
	subtask = color.New(color.FgBlue)
	hint    = color.New(color.FgGreen)
	command = color.New(color.FgCyan)
	muted   = color.New(color.FgHiBlack)

	taskPrefix    = color.New(color.BgBlue, color.FgBlack)
	cleanupPrefix = color.New(color.BgBlack, color.FgWhite)
	successPrefix = color.New(color.BgGreen, color.FgBlack)
	errorPrefix   = color.New(color.FgRed)
)

// Renderer writes progress to out and errors to errOut
type Renderer struct {
	out    io.Writer
	errOut io.Writer
}

// New creates a Renderer
func New(out, errOut io.Writer) *Renderer {
	return &Renderer{out: out, errOut: errOut}
}

// Banner prints the line shown at the start of every run
func (r *Renderer) Banner() {
	bold.Fprintf(r.out, "██████ Running %s...\n\n", name)
}

// Tldr prints usage examples
func (r *Renderer) Tldr() {
	examples := []struct{ desc, cmd string }{
		{"Download the starter code for a lab exercise:", "dmget making-decisions"},
		{"Download the solution code for a lab exercise:", "dmget making-decisions --solution"},
		{"Download the starter code for a homework assignment:", "dmget coding-intro --homework"},
		{"Download the demo code for a lecture:", "dmget coding-intro --demo"},
	}
	for _, ex := range examples {
		hint.Fprintln(r.out, ex.desc)
		fmt.Fprintf(r.out, "\n      %s\n\n", command.Sprint(ex.cmd))
	}
}

// HelpHint points a lost user at tldr and --help
func (r *Renderer) HelpHint() {
	r.task(" 💡 ", cleanupPrefix, "Need help?")
	hint.Fprintf(r.out, "To see examples of how to use %s, run:\n\n      %s\n\n",
		color.BlueString(name), command.Sprint("dmget tldr"))
	hint.Fprintf(r.out, "Or, get more detailed help with:\n\n      %s\n\n", command.Sprint("dmget --help"))
}

// Success prints the final message of a completed run
func (r *Renderer) Success(req model.Request, result *model.FetchResult) {
	bold.Fprintf(r.out, "%s Success!\n\n", successPrefix.Sprint(" ✔ "))

	if result.ProjectDir == "" {
		hint.Fprintln(r.out, "The archive was empty, so there is nothing to open.")
		return
	}

	projDir := AbbreviateHome(result.ProjectDir)
	hint.Fprintf(r.out, "To cd into the project directory and open it in VS Code, run:\n\n      %s\n      %s\n\n",
		command.Sprint("cd "+projDir), command.Sprint("code ."))

	if req.Variant == model.VariantStarter && req.Category != model.CategoryDemo {
		hint.Fprintf(r.out, "Download the solution by running the same command with the --solution flag (run %s for examples).\n",
			command.Sprint("dmget tldr"))
	}
}

// Error is the single channel through which failures reach the user
func (r *Renderer) Error(err error) {
	fmt.Fprintf(r.errOut, "%s %s\n", errorPrefix.Sprint("Error:"), err.Error())
}

// Start implements interfaces.Progress
func (r *Renderer) Start(req model.Request) {
	kind := req.Variant.String()
	if req.Category == model.CategoryDemo {
		kind = "demo"
	}
	r.task(" * ", taskPrefix, fmt.Sprintf("Setting up %s code for %s", kind, color.GreenString(req.Slug)))
}

// Downloading implements interfaces.Progress
func (r *Renderer) Downloading(url string) {
	subtask.Fprintf(r.out, "Downloading %s\n", url)
}

// Staged implements interfaces.Progress
func (r *Renderer) Staged(path string) {
	subtask.Fprintf(r.out, "Temporarily saved file to %s\n", path)
}

// Extracting implements interfaces.Progress
func (r *Renderer) Extracting(dir string) {
	subtask.Fprintf(r.out, "Extracting files to %s\n", AbbreviateHome(dir))
}

// CleanedUp implements interfaces.Progress
func (r *Renderer) CleanedUp(path string, err error) {
	r.task(" - ", cleanupPrefix, "Cleaning up temporary files...")
	if err != nil {
		muted.Fprintf(r.out, "Could not remove %s: %v\n", path, err)
		return
	}
	muted.Fprintf(r.out, "Removed %s\n", path)
}

func (r *Renderer) task(prefix string, c *color.Color, msg string) {
	bold.Fprintf(r.out, "%s %s\n", c.Sprint(prefix), msg)
}

// AbbreviateHome replaces the user's home directory prefix of p with "~"
func AbbreviateHome(p string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	rel, err := filepath.Rel(home, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	if rel == "." {
		return "~"
	}
	return "~" + string(filepath.Separator) + rel
}
