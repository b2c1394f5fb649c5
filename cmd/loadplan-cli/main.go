// loadplan-cli plans container loads from YAML job files without a GUI.
//
// Usage:
//   loadplan-cli pack job.yaml --pdf plan.pdf --xlsx manifest.xlsx
//   loadplan-cli estimate job.yaml

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/LoadPlan/internal/engine"
	"github.com/piwi3910/LoadPlan/internal/export"
	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/piwi3910/LoadPlan/internal/project"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type packOptions struct {
	pdf      string
	labels   string
	xlsx     string
	dxf      string
	pngDir   string
	compare  bool
	quiet    bool
	pngWidth int
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "loadplan-cli",
		Short:        "Plan container loads from YAML job files",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newPackCmd(), newEstimateCmd())
	return root
}

func newPackCmd() *cobra.Command {
	var opts packOptions

	cmd := &cobra.Command{
		Use:   "pack <job.yaml>",
		Short: "Place every box of a job and print the loading sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd.Context(), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.pdf, "pdf", "", "write a layer-by-layer PDF load plan")
	f.StringVar(&opts.labels, "labels", "", "write a PDF sheet of box labels")
	f.StringVar(&opts.xlsx, "xlsx", "", "write an Excel manifest")
	f.StringVar(&opts.dxf, "dxf", "", "write a 3D DXF wireframe")
	f.StringVar(&opts.pngDir, "png", "", "write layer images into this directory")
	f.IntVar(&opts.pngWidth, "png-width", 1200, "width of layer images in pixels")
	f.BoolVar(&opts.compare, "compare", false, "also plan the default what-if scenarios")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "only print the summary")
	return cmd
}

func newEstimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate <job.yaml>",
		Short: "Estimate the number of containers a job needs by volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := loadJob(args[0])
			if err != nil {
				return err
			}
			est := model.CalculateLoadEstimate(job.Items(), job.Container, job.Settings, job.WastePercent, job.PricePerContainer)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Box volume\t%.2f m³\n", est.TotalCubicMeters)
			fmt.Fprintf(w, "Usable volume\t%.2f m³\n", est.UsableVolume/1e9)
			fmt.Fprintf(w, "Exact\t%.2f\n", est.ContainersNeededExact)
			fmt.Fprintf(w, "Minimum\t%d\n", est.ContainersNeededMin)
			fmt.Fprintf(w, "With %.0f%% waste\t%d\n", est.WastePercent, est.ContainersWithWaste)
			if est.PricePerContainer > 0 {
				fmt.Fprintf(w, "Estimated cost\t%.2f\n", est.EstimatedCost)
			}
			return w.Flush()
		},
	}
}

func loadJob(path string) (project.Job, error) {
	inv, _, err := project.LoadOrCreateInventory()
	if err != nil {
		slog.Warn("failed to load inventory, using defaults", "error", err)
		inv = model.DefaultInventory()
	}
	return project.LoadJob(path, inv)
}

func runPack(ctx context.Context, path string, opts packOptions) error {
	job, err := loadJob(path)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	planner := engine.NewPlanner(job.Settings, slog.Default())
	result, err := planner.Plan(ctx, job.Container, job.Items())
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		slog.Warn("planning interrupted, writing partial load", "placed", len(result.Placements))
	default:
		return err
	}

	out := os.Stdout
	if !opts.quiet {
		printPlacements(out, result)
	}
	fmt.Fprintf(out, "\n%s: %d placed, %d unplaced, %.1f%% fill, %d layers\n",
		job.Name, len(result.Placements), result.UnplacedCount(), result.Efficiency(), len(result.Layers()))

	if opts.compare {
		printComparison(out, engine.CompareScenarios(ctx, engine.BuildDefaultScenarios(job.Settings), job.Container, job.Items(), slog.Default()))
	}

	return writeExports(result, job.Settings, opts)
}

func printPlacements(out *os.File, result model.LoadResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tLAYER\tID\tLABEL\tL x W x H\tX\tY\tZ")
	for _, info := range export.CollectLabelInfos(result) {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%.0f x %.0f x %.0f\t%.0f\t%.0f\t%.0f\n",
			info.Sequence, info.Layer, info.BoxID, info.Label,
			info.Length, info.Width, info.Height,
			info.X, info.Y, info.Z)
	}
	w.Flush()

	for _, b := range result.UnplacedBoxes {
		fmt.Fprintf(out, "unplaced: %s %s %.0f x %.0f x %.0f\n",
			b.ID, b.Label, b.Dimensions.Length, b.Dimensions.Width, b.Dimensions.Height)
	}
}

func printComparison(out *os.File, results []engine.ComparisonResult) {
	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tPLACED\tUNPLACED\tFILL\tLAYERS")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\t\n", r.Scenario.Name, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f%%\t%d\n",
			r.Scenario.Name, r.PlacedCount, r.UnplacedCount, r.FillPercent, r.Layers)
	}
	w.Flush()
}

func writeExports(result model.LoadResult, settings model.LoadSettings, opts packOptions) error {
	exports := []struct {
		path  string
		write func(string) error
	}{
		{opts.pdf, func(p string) error { return export.ExportPDF(p, result, settings) }},
		{opts.labels, func(p string) error { return export.ExportLabels(p, result) }},
		{opts.xlsx, func(p string) error { return export.ExportManifest(p, result) }},
		{opts.dxf, func(p string) error { return export.ExportDXF(p, result) }},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.write(e.path); err != nil {
			return fmt.Errorf("export %s: %w", e.path, err)
		}
		slog.Info("wrote export", "path", e.path)
	}

	if opts.pngDir != "" {
		if err := os.MkdirAll(opts.pngDir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", opts.pngDir, err)
		}
		paths, err := export.ExportLayerPNGs(opts.pngDir, result, opts.pngWidth)
		if err != nil {
			return fmt.Errorf("export images: %w", err)
		}
		slog.Info("wrote layer images", "dir", opts.pngDir, "count", len(paths))
	}
	return nil
}
