package cli

import (
	"context"

	"github.com/DevMountain/dmget/pkg/cli/config"
	"github.com/DevMountain/dmget/pkg/cli/render"
	"github.com/DevMountain/dmget/pkg/domain/model"
	"github.com/DevMountain/dmget/pkg/infra/materials"
	"github.com/DevMountain/dmget/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// tldrSlug prints examples instead of downloading anything
const tldrSlug = "tldr"

var tagMissingSlug = goerr.NewTag("missing_slug")

func isMissingSlug(err error) bool {
	return goerr.HasTag(err, tagMissingSlug)
}

func cmdGet(ctx context.Context, c *cli.Command, out *render.Renderer, materialsCfg *config.Materials, fileCfg *config.File) error {
	logger := ctxlog.From(ctx)

	out.Banner()

	slug := c.Args().First()
	switch slug {
	case "":
		return goerr.New("missing required argument 'slug'",
			goerr.T(model.ErrTagInvalidRequest),
			goerr.T(tagMissingSlug),
		)
	case tldrSlug:
		out.Tldr()
		return nil
	}

	values, err := fileCfg.Load()
	if err != nil {
		return err
	}
	materialsCfg.Merge(values, c.IsSet)

	logger.Debug("Resolved configuration",
		"base_url", materialsCfg.BaseURL,
		"destination", materialsCfg.Destination,
	)

	uc := usecase.NewFetch(materials.NewClient(),
		usecase.WithBaseURL(materialsCfg.BaseURL),
		usecase.WithDestination(materialsCfg.Destination),
		usecase.WithProgress(out),
	)

	req := materialsCfg.Request(slug)
	result, err := uc.Run(ctx, req)
	if err != nil {
		return err
	}

	out.Success(req, result)
	return nil
}
