package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/kpumuk/incidentscope/internal/config"
	"github.com/kpumuk/incidentscope/internal/export"
	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/observability"
	"github.com/kpumuk/incidentscope/internal/scenes"
)

type exportOptions struct {
	scene  int
	start  string
	end    string
	format string
	out    string
	width  int
	height int
}

func newExportCmd() *cobra.Command {
	var opts exportOptions

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write a scene or date window to an SVG, HTML, XLSX or CSV file.",
		Example: "  incidentscope export --scene 2 --out summer.svg\n" +
			"  incidentscope export --start 2016-01-01 --end 2016-12-31 --out 2016.xlsx",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			logger, closeLog, err := observability.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			sceneList, err := loadScenes(cfg)
			if err != nil {
				return err
			}

			return runExport(cmd.Context(), exportEnv{
				cfg:       cfg,
				scenes:    sceneList,
				logger:    logger,
				telemetry: observability.NewMetrics(clockwork.NewRealClock()),
				stdout:    cmd.OutOrStdout(),
			}, opts)
		},
	}

	flags := exportCmd.Flags()
	flags.IntVar(&opts.scene, "scene", 0, "1-based scene number to export")
	flags.StringVar(&opts.start, "start", "", "window start date (YYYY-MM-DD)")
	flags.StringVar(&opts.end, "end", "", "window end date (YYYY-MM-DD)")
	flags.StringVar(&opts.format, "format", "", "svg, html, xlsx or csv (default from --out extension)")
	flags.StringVarP(&opts.out, "out", "o", "", "output file")
	flags.IntVar(&opts.width, "width", export.DefaultWidth, "image width in pixels")
	flags.IntVar(&opts.height, "height", export.DefaultHeight, "image height in pixels")
	_ = exportCmd.MarkFlagRequired("out")
	exportCmd.MarkFlagsMutuallyExclusive("scene", "start")
	exportCmd.MarkFlagsMutuallyExclusive("scene", "end")
	exportCmd.MarkFlagsRequiredTogether("start", "end")

	return exportCmd
}

type exportEnv struct {
	cfg       *config.Config
	scenes    []scenes.Scene
	logger    *slog.Logger
	telemetry *observability.Metrics
	stdout    io.Writer
}

func runExport(ctx context.Context, env exportEnv, opts exportOptions) error {
	format, err := exportFormat(opts)
	if err != nil {
		return err
	}
	if opts.scene == 0 && opts.start == "" {
		return errors.New("either --scene or --start and --end is required")
	}
	if opts.scene < 0 || opts.scene > len(env.scenes) {
		return fmt.Errorf("scene %d out of range 1..%d", opts.scene, len(env.scenes))
	}

	src, err := incidents.NewSource(env.cfg.DataSource, env.cfg.FetchTimeout)
	if err != nil {
		return err
	}
	loadCtx, cancel := context.WithTimeout(ctx, env.cfg.FetchTimeout)
	defer cancel()
	store, err := incidents.Load(loadCtx, src, env.cfg.LoadOptions())
	if err != nil {
		env.telemetry.LoadFailed()
		return err
	}
	env.telemetry.Loaded(store.Len(), len(store.Defects()))
	if store.IsEmpty() {
		return fmt.Errorf("no records loaded from %s", src)
	}

	chart, err := exportChart(store, env.scenes, opts)
	if err != nil {
		return err
	}
	chart.Regions = incidents.TopRegions(store.InWindow(chart.Window), env.cfg.TopRegions)
	chart.Width, chart.Height = opts.width, opts.height

	if err := export.WriteFile(opts.out, format, chart); err != nil {
		return err
	}
	env.telemetry.Exported(string(format))
	env.logger.Info("exported",
		"path", opts.out,
		"format", format,
		"window", chart.Window.String(),
		"days", len(chart.Aggregates),
	)
	_, _ = fmt.Fprintf(env.stdout, "wrote %s (%s, %s)\n", opts.out, format, chart.Window)
	return nil
}

func exportFormat(opts exportOptions) (export.Format, error) {
	if opts.format != "" {
		return export.ParseFormat(opts.format)
	}
	format, ok := export.FormatFromPath(opts.out)
	if !ok {
		return "", fmt.Errorf("cannot infer export format from %q, pass --format", opts.out)
	}
	return format, nil
}

// exportChart resolves the window and annotations of the export.
func exportChart(store *incidents.Store, sceneList []scenes.Scene, opts exportOptions) (export.Chart, error) {
	if opts.scene > 0 {
		scene := sceneList[opts.scene-1]
		window := scene.Window
		if scene.Interactive {
			window = store.Bounds()
		}
		return export.Chart{
			Title:       scene.Title,
			Window:      window,
			Aggregates:  store.Aggregate(window),
			Annotations: scene.AnnotationsIn(window),
		}, nil
	}

	window, err := incidents.ParseWindow(opts.start, opts.end)
	if err != nil {
		return export.Chart{}, err
	}
	bounds := store.Bounds()
	if window.End.Before(bounds.Start) || window.Start.After(bounds.End) {
		return export.Chart{}, fmt.Errorf("window %s is outside the dataset %s", window, bounds)
	}
	window = window.Clip(bounds)

	annotations := lo.UniqBy(
		lo.FlatMap(sceneList, func(s scenes.Scene, _ int) []scenes.Annotation {
			return s.AnnotationsIn(window)
		}),
		func(a scenes.Annotation) string { return a.Date.Format(time.DateOnly) + a.Label },
	)
	slices.SortStableFunc(annotations, func(a, b scenes.Annotation) int {
		return a.Date.Compare(b.Date)
	})
	return export.Chart{
		Title:       "Incidents " + window.String(),
		Window:      window,
		Aggregates:  store.Aggregate(window),
		Annotations: annotations,
	}, nil
}
