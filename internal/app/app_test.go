package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"iter"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/symcache/internal/adapters/logger"
	"go.trai.ch/symcache/internal/adapters/telemetry"
	"go.trai.ch/symcache/internal/app"
	"go.trai.ch/symcache/internal/core/domain"
	"go.trai.ch/symcache/internal/core/ports/mocks"
	"go.trai.ch/symcache/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type appFixture struct {
	loader    *mocks.MockConfigLoader
	locator   *mocks.MockBundleLocator
	extractor *mocks.MockSymbolExtractor
	store     *mocks.MockSymbolStore
	telemetry *mocks.MockTelemetry
	logger    *mocks.MockLogger
	stdout    bytes.Buffer
	stderr    bytes.Buffer
	app       *app.App
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &appFixture{
		loader:    mocks.NewMockConfigLoader(ctrl),
		locator:   mocks.NewMockBundleLocator(ctrl),
		extractor: mocks.NewMockSymbolExtractor(ctrl),
		store:     mocks.NewMockSymbolStore(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}

	pipe := pipeline.NewPipeline(f.locator, f.extractor, f.store, f.telemetry, f.logger)
	f.app = app.New(f.loader, pipe, f.telemetry, f.logger).WithOutput(&f.stdout, &f.stderr)
	return f
}

func bundles(items ...domain.Bundle) iter.Seq2[domain.Bundle, error] {
	return func(yield func(domain.Bundle, error) bool) {
		for _, b := range items {
			if !yield(b, nil) {
				return
			}
		}
	}
}

func (f *appFixture) expectVertices(n int, ctrl *gomock.Controller) {
	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Complete(gomock.Any()).Times(n)
	f.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).Return(context.Background(), vertex).Times(n)
}

func TestApp_Run_PrintsSummary(t *testing.T) {
	t.Parallel()

	f := newAppFixture(t)
	cfg := domain.DefaultConfig()

	f.loader.EXPECT().Load("").Return(cfg, nil)
	f.locator.EXPECT().Locate("bin", cfg.ScanOptions()).Return(bundles(), nil)
	f.telemetry.EXPECT().Close().Return(nil)

	err := f.app.Run(context.Background(), "bin", "sym", app.RunOptions{Quiet: true})
	require.NoError(t, err)
	assert.Equal(t, "rebuilt 0 out of 0 symbol files\n", f.stdout.String())
}

func TestApp_Run_FlagsOverrideConfig(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	f := newAppFixture(t)
	cfg := domain.DefaultConfig()
	cfg.Ignore = []string{"build"}

	bundle := domain.Bundle{Path: "/abs/bin/Foo.dSYM", ModTime: time.Unix(1000, 0)}
	wantTool := domain.Tool{Path: "/opt/dump_syms", HeaderFlag: "-i"}

	f.loader.EXPECT().Load("custom.yaml").Return(cfg, nil)
	f.locator.EXPECT().Locate("bin", domain.ScanOptions{Suffix: ".dSYM", Ignore: []string{"build"}}).Return(bundles(bundle), nil)
	f.expectVertices(1, ctrl)
	f.extractor.EXPECT().ExtractHeader(gomock.Any(), wantTool, bundle.Path).Return("not a header", nil)
	f.logger.EXPECT().Debug(gomock.Any()).Times(1)
	f.telemetry.EXPECT().Close().Return(nil)

	err := f.app.Run(context.Background(), "bin", "sym", app.RunOptions{
		ConfigPath: "custom.yaml",
		Tool:       "/opt/dump_syms",
		Jobs:       3,
		Quiet:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "rebuilt 0 out of 1 symbol files\n", f.stdout.String())
}

func TestApp_Run_ConfigError(t *testing.T) {
	t.Parallel()

	f := newAppFixture(t)
	f.loader.EXPECT().Load("").Return(domain.Config{}, zerr.Wrap(domain.ErrConfigParseFailed, "yaml: line 1"))

	err := f.app.Run(context.Background(), "bin", "sym", app.RunOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigParseFailed))
	assert.Empty(t, f.stdout.String())
}

func TestApp_Run_NegativeJobs(t *testing.T) {
	t.Parallel()

	f := newAppFixture(t)

	err := f.app.Run(context.Background(), "bin", "sym", app.RunOptions{Jobs: -1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidJobs))
}

func TestApp_Run_FatalErrorPrintsNoSummary(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	f := newAppFixture(t)
	bundle := domain.Bundle{Path: "/abs/bin/Foo.dSYM"}

	f.loader.EXPECT().Load("").Return(domain.DefaultConfig(), nil)
	f.locator.EXPECT().Locate("bin", gomock.Any()).Return(bundles(bundle), nil)
	f.expectVertices(1, ctrl)
	f.extractor.EXPECT().ExtractHeader(gomock.Any(), gomock.Any(), bundle.Path).
		Return("", zerr.Wrap(domain.ErrToolUnavailable, "exec: not found"))
	f.telemetry.EXPECT().Close().Return(nil)

	err := f.app.Run(context.Background(), "bin", "sym", app.RunOptions{Quiet: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrToolUnavailable))
	assert.Empty(t, f.stdout.String())
}

func TestApp_Run_RootNotFound(t *testing.T) {
	t.Parallel()

	f := newAppFixture(t)

	f.loader.EXPECT().Load("").Return(domain.DefaultConfig(), nil)
	f.locator.EXPECT().Locate("missing", gomock.Any()).Return(nil, zerr.Wrap(domain.ErrRootNotFound, "stat missing"))
	f.telemetry.EXPECT().Close().Return(nil)

	err := f.app.Run(context.Background(), "missing", "sym", app.RunOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRootNotFound))
}

func TestApp_Run_WarnsAboutFailedBundles(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	f := newAppFixture(t)
	bundle := domain.Bundle{Path: "/abs/bin/Foo.dSYM", ModTime: time.Unix(1000, 0)}

	f.loader.EXPECT().Load("").Return(domain.DefaultConfig(), nil)
	f.locator.EXPECT().Locate("bin", gomock.Any()).Return(bundles(bundle), nil)
	f.expectVertices(1, ctrl)
	f.extractor.EXPECT().ExtractHeader(gomock.Any(), gomock.Any(), bundle.Path).Return("MODULE mac x86_64 ABC Foo", nil)
	f.store.EXPECT().ResolvePath("sym", gomock.Any()).Return("", zerr.Wrap(domain.ErrCacheDirCreateFailed, "read-only file system"))
	f.logger.EXPECT().Warn(gomock.Any()).Times(2)
	f.telemetry.EXPECT().Close().Return(nil)

	err := f.app.Run(context.Background(), "bin", "sym", app.RunOptions{Quiet: true})
	require.NoError(t, err)
	assert.Equal(t, "rebuilt 0 out of 1 symbol files\n", f.stdout.String())
}

func TestApp_Run_VerboseRendersTelemetry(t *testing.T) {
	t.Parallel()

	f := newAppFixture(t)

	f.loader.EXPECT().Load("").Return(domain.DefaultConfig(), nil)
	f.locator.EXPECT().Locate("bin", gomock.Any()).Return(bundles(), nil)
	gomock.InOrder(
		f.telemetry.EXPECT().Close().Return(nil),
		f.telemetry.EXPECT().Render(&f.stderr).DoAndReturn(func(w io.Writer) error {
			_, err := io.WriteString(w, "recorded 0 bundles: 0 cached, 0 errored\n")
			return err
		}),
	)

	err := f.app.Run(context.Background(), "bin", "sym", app.RunOptions{Verbose: true, Quiet: true})
	require.NoError(t, err)
	assert.Equal(t, "recorded 0 bundles: 0 cached, 0 errored\n", f.stderr.String())
}

func TestApp_Run_QuietTelemetryWithoutVerbose(t *testing.T) {
	t.Parallel()

	f := newAppFixture(t)

	f.loader.EXPECT().Load("").Return(domain.DefaultConfig(), nil)
	f.locator.EXPECT().Locate("bin", gomock.Any()).Return(bundles(), nil)
	f.telemetry.EXPECT().Close().Return(nil)
	f.telemetry.EXPECT().Render(gomock.Any()).Times(0)

	err := f.app.Run(context.Background(), "bin", "sym", app.RunOptions{Quiet: true})
	require.NoError(t, err)
	assert.Empty(t, f.stderr.String())
}

func TestApp_Run_TelemetryNamesMalformedBundle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	locator := mocks.NewMockBundleLocator(ctrl)
	extractor := mocks.NewMockSymbolExtractor(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	tel := telemetry.New()

	bundle := domain.Bundle{Path: "/abs/bin/Broken.dSYM"}
	loader.EXPECT().Load("").Return(domain.DefaultConfig(), nil)
	locator.EXPECT().Locate("bin", gomock.Any()).Return(bundles(bundle), nil)
	extractor.EXPECT().ExtractHeader(gomock.Any(), gomock.Any(), bundle.Path).Return("garbage", nil)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	var stdout, stderr bytes.Buffer
	pipe := pipeline.NewPipeline(locator, extractor, mocks.NewMockSymbolStore(ctrl), tel, mockLogger)
	a := app.New(loader, pipe, tel, mockLogger).WithOutput(&stdout, &stderr)

	err := a.Run(context.Background(), "bin", "sym", app.RunOptions{Verbose: true, Quiet: true})
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "recorded 1 bundles: 0 cached, 1 errored")
	assert.Contains(t, stderr.String(), "Broken.dSYM: unexpected field count: malformed module header")
}

func TestApp_Run_JSONLogs(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	locator := mocks.NewMockBundleLocator(ctrl)
	extractor := mocks.NewMockSymbolExtractor(ctrl)

	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	var logs bytes.Buffer
	lg.SetOutput(&logs)

	bundle := domain.Bundle{Path: "/abs/bin/Broken.dSYM"}
	loader.EXPECT().Load("").Return(domain.DefaultConfig(), nil)
	locator.EXPECT().Locate("bin", gomock.Any()).Return(bundles(bundle), nil)
	extractor.EXPECT().ExtractHeader(gomock.Any(), gomock.Any(), bundle.Path).Return("garbage", nil)

	tel := telemetry.NewNoOp()
	pipe := pipeline.NewPipeline(locator, extractor, mocks.NewMockSymbolStore(ctrl), tel, lg)
	a := app.New(loader, pipe, tel, lg).WithOutput(&bytes.Buffer{}, &bytes.Buffer{})

	err := a.Run(context.Background(), "bin", "sym", app.RunOptions{JSON: true, Verbose: true, Quiet: true})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		assert.Equal(t, "DEBUG", entry["level"])
	}
	assert.Contains(t, logs.String(), "skipped /abs/bin/Broken.dSYM")

	lg.Error(zerr.Wrap(domain.ErrToolUnavailable, "exec: not found"))
	assert.Contains(t, logs.String(), `"msg":"operation failed"`)
}
