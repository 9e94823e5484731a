package config

import (
	"time"

	"github.com/DevMountain/dmget/pkg/domain/model"
	"github.com/DevMountain/dmget/pkg/domain/types"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Sentry holds error reporting configuration. Reporting is off without a DSN.
type Sentry struct {
	DSN string
	Env string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for reporting unexpected failures",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("DMGET_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Value:       "production",
			Destination: &c.Env,
			Sources:     cli.EnvVars("DMGET_SENTRY_ENV"),
		},
	}
}

// Configure initializes the Sentry client and returns a function flushing
// pending events
func (c *Sentry) Configure(runID string) (func(), error) {
	if c.DSN == "" {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
		Release:     "dmget@" + types.Version,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry",
			goerr.T(model.ErrTagInvalidRequest),
		)
	}

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("run_id", runID)
	})

	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}
