package config

import (
	"github.com/DevMountain/dmget/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Materials holds what to download and where to put it
type Materials struct {
	BaseURL     string
	Destination string
	Solution    bool
	Homework    bool
	Demo        bool
}

// Flags returns CLI flags for materials configuration
func (c *Materials) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "url",
			Aliases:     []string{"u"},
			Usage:       "base URL of exercises",
			Value:       model.DefaultBaseURL,
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("DMGET_URL"),
		},
		&cli.StringFlag{
			Name:        "path",
			Aliases:     []string{"p"},
			Usage:       "path to extract files",
			Value:       model.DefaultDestination(),
			Destination: &c.Destination,
			Sources:     cli.EnvVars("DMGET_PATH"),
		},
		&cli.BoolFlag{
			Name:        "solution",
			Usage:       "download the solution instead of the starter code",
			Destination: &c.Solution,
		},
		&cli.BoolFlag{
			Name:        "homework",
			Usage:       "download a homework assignment instead of an exercise",
			Destination: &c.Homework,
		},
		&cli.BoolFlag{
			Name:        "demo",
			Usage:       "download a lecture demo instead of an exercise",
			Destination: &c.Demo,
		},
	}
}

// Merge fills BaseURL and Destination from the config file unless they were
// given on the command line or through the environment
func (c *Materials) Merge(file *FileValues, isSet func(name string) bool) {
	if file == nil {
		return
	}
	if file.BaseURL != "" && !isSet("url") {
		c.BaseURL = file.BaseURL
	}
	if file.Destination != "" && !isSet("path") {
		c.Destination = file.Destination
	}
}

// Request builds the download request for slug
func (c *Materials) Request(slug string) model.Request {
	return model.NewRequest(slug, c.Homework, c.Demo, c.Solution)
}
