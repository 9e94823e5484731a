package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/DevMountain/dmget/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File holds the location of the optional TOML config file
type File struct {
	Path string
}

// FileValues are the settings a config file may provide
type FileValues struct {
	BaseURL     string `toml:"base_url"`
	Destination string `toml:"destination"`
}

// Flags returns CLI flags for config file location
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to a TOML config file (default: $XDG_CONFIG_HOME/dmget/config.toml)",
			Destination: &c.Path,
			Sources:     cli.EnvVars("DMGET_CONFIG"),
		},
	}
}

// DefaultConfigPath returns the config file looked up when --config is not given
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dmget", "config.toml")
}

// Load reads the config file. A missing default file yields nil values; a
// missing explicit file is an error.
func (c *File) Load() (*FileValues, error) {
	path := c.Path
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
		if path == "" {
			return nil, nil
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to read config file "+path,
			goerr.T(model.ErrTagInvalidRequest),
			goerr.V("path", path),
		)
	}

	var values FileValues
	if err := toml.Unmarshal(raw, &values); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file "+path,
			goerr.T(model.ErrTagInvalidRequest),
			goerr.V("path", path),
		)
	}

	values.Destination = expandHome(values.Destination)
	return &values, nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
