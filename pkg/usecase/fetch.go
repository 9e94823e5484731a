package usecase

import (
	"context"

	"github.com/DevMountain/dmget/pkg/domain/interfaces"
	"github.com/DevMountain/dmget/pkg/domain/model"
	"github.com/DevMountain/dmget/pkg/infra/staging"
	"github.com/m-mizutani/ctxlog"
)

type fetchUseCase struct {
	client      interfaces.MaterialsClient
	stager      interfaces.Stager
	extractor   interfaces.Extractor
	progress    interfaces.Progress
	baseURL     string
	destination string
}

// Option is a functional option for the fetch use case
type Option func(*fetchUseCase)

// WithBaseURL sets the materials server base URL
func WithBaseURL(url string) Option {
	return func(uc *fetchUseCase) {
		uc.baseURL = url
	}
}

// WithDestination sets the local destination root
func WithDestination(dir string) Option {
	return func(uc *fetchUseCase) {
		uc.destination = dir
	}
}

// WithStager replaces the temporary staging backend
func WithStager(s interfaces.Stager) Option {
	return func(uc *fetchUseCase) {
		uc.stager = s
	}
}

// WithExtractor replaces the archive extractor
func WithExtractor(x interfaces.Extractor) Option {
	return func(uc *fetchUseCase) {
		uc.extractor = x
	}
}

// WithProgress sets the receiver of progress notifications
func WithProgress(p interfaces.Progress) Option {
	return func(uc *fetchUseCase) {
		uc.progress = p
	}
}

// NewFetch creates a new instance of FetchUseCase
func NewFetch(client interfaces.MaterialsClient, opts ...Option) interfaces.FetchUseCase {
	uc := &fetchUseCase{
		client:      client,
		stager:      staging.New(),
		extractor:   NewExtractor(),
		progress:    nopProgress{},
		baseURL:     model.DefaultBaseURL,
		destination: model.DefaultDestination(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run downloads and extracts the archive for req. The staged file, once
// created, is removed before Run returns regardless of the outcome.
func (uc *fetchUseCase) Run(ctx context.Context, req model.Request) (result *model.FetchResult, err error) {
	logger := ctxlog.From(ctx).With("slug", req.Slug)
	ctx = ctxlog.With(ctx, logger)

	result = &model.FetchResult{State: model.StateIdle, LastStage: model.StateIdle}
	defer func() {
		if err != nil {
			logger.Debug("Run failed",
				"stage", result.LastStage.String(),
				"kind", model.KindOf(err),
				"error", err,
			)
			result.State = model.StateFailed
		}
	}()

	if err := req.Validate(); err != nil {
		return result, err
	}
	uc.enter(ctx, result, model.StateResolving)
	uc.progress.Start(req)

	archive := req.Archive(uc.baseURL)
	result.URL = archive.URL

	uc.enter(ctx, result, model.StateFetching)
	uc.progress.Downloading(archive.URL)

	data, err := uc.client.Fetch(ctx, archive)
	if err != nil {
		return result, err
	}

	logger.Info("Downloaded archive", "url", archive.URL, "size_bytes", len(data))

	staged, err := uc.stager.Stage(data, archive.Filename)
	if err != nil {
		return result, err
	}
	defer uc.cleanup(ctx, staged)

	result.StagedPath = staged.Path()
	uc.enter(ctx, result, model.StateStaged)
	uc.progress.Staged(staged.Path())

	target := model.NewExtractionTarget(uc.destination, req)
	result.ExtractRoot = target.Root()

	uc.enter(ctx, result, model.StateExtracting)
	uc.progress.Extracting(target.Root())

	projectDir, err := uc.extractor.Extract(ctx, staged.Path(), target)
	if err != nil {
		return result, err
	}
	result.ProjectDir = projectDir

	uc.enter(ctx, result, model.StateDone)
	logger.Info("Extracted archive", "project_dir", projectDir)

	return result, nil
}

func (uc *fetchUseCase) enter(ctx context.Context, result *model.FetchResult, state model.State) {
	ctxlog.From(ctx).Debug("State transition",
		"from", result.State.String(),
		"to", state.String(),
	)
	result.State = state
	if !state.IsTerminal() {
		result.LastStage = state
	}
}

// cleanup removes the staged archive. Its failure is logged and reported but
// never replaces the outcome of the run.
func (uc *fetchUseCase) cleanup(ctx context.Context, staged interfaces.StagedFile) {
	logger := ctxlog.From(ctx)

	err := staged.Remove()
	if err != nil {
		logger.Warn("Failed to clean up temporary file",
			"path", staged.Path(),
			"error", err,
		)
	} else {
		logger.Debug("Cleaned up temporary file", "path", staged.Path())
	}

	uc.progress.CleanedUp(staged.Path(), err)
}

type nopProgress struct{}

func (nopProgress) Start(model.Request) {}
func (nopProgress) Downloading(string) {}
func (nopProgress) Staged(string) {}
func (nopProgress) Extracting(string) {}
func (nopProgress) CleanedUp(string, error) {}
