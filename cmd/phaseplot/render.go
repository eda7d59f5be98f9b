package main

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/phaseplot/internal/config"
	"github.com/san-kum/phaseplot/internal/export"
	"github.com/san-kum/phaseplot/internal/observability"
	"github.com/san-kum/phaseplot/internal/portrait"
	"github.com/san-kum/phaseplot/internal/render"
	"github.com/san-kum/phaseplot/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outputPath  string
	resolution  int
	dpi         int
	title       string
	preview     bool
	previewSVG  string
	previewCols int
	previewRows int
	noClip      bool
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [preset|scene.yaml]",
		Short: "render a phase portrait to png, svg or pdf",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file; extension selects the format")
	cmd.Flags().IntVar(&resolution, "resolution", 0, "direction field grid size (0 = scene or settings)")
	cmd.Flags().IntVar(&dpi, "dpi", 0, "raster resolution (0 = settings)")
	cmd.Flags().StringVar(&title, "title", "", "figure title")
	cmd.Flags().BoolVar(&preview, "preview", false, "print a terminal preview")
	cmd.Flags().StringVar(&previewSVG, "preview-svg", "", "write the terminal preview as svg")
	cmd.Flags().IntVar(&previewCols, "cols", 60, "preview width in characters")
	cmd.Flags().IntVar(&previewRows, "rows", 24, "preview height in characters")
	cmd.Flags().BoolVar(&noClip, "no-clip", false, "draw trajectories outside the viewport")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	scene, err := loadScene(args[0])
	if err != nil {
		return err
	}
	if outputPath == "" && !preview && previewSVG == "" {
		outputPath = sceneName(scene, args[0]) + ".png"
	}

	art, err := compute(cmd.Context(), scene, settings.Render.Resolution)
	if err != nil {
		return err
	}

	if outputPath != "" {
		rc := render.FromConfig(settings.Render)
		rc.Title = title
		if dpi > 0 {
			rc.DPI = dpi
		}
		if noClip {
			rc.ClipTrajectories = false
		}
		if err := render.Render(rc, art, outputPath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outputPath)
	}

	opts := viz.DefaultPreviewOptions()
	opts.Cols, opts.Rows = previewCols, previewRows
	opts.Clip = !noClip
	if preview {
		fmt.Println(viz.Preview(sceneName(scene, args[0]), art, opts))
	}
	if previewSVG != "" {
		f, err := os.Create(previewSVG)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.CanvasToSVG(f, viz.Draw(art, opts).Canvas, 4); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", previewSVG)
	}
	return nil
}

// compute builds the scene and evaluates its field and trajectories.
func compute(ctx context.Context, scene *config.Scene, fallbackRes int) (*portrait.Artifacts, error) {
	m, err := buildModel(scene)
	if err != nil {
		return nil, err
	}
	n := scene.GridResolution(fallbackRes)
	if resolution > 0 {
		n = resolution
	}
	if ctx == nil {
		ctx = context.Background()
	}
	art, err := m.Compute(ctx, n, n)
	if err != nil {
		return nil, err
	}
	for i, r := range art.Trajectories {
		if r.Err != nil {
			observability.GetLogger().Warn("Trajectory incomplete.",
				zap.Int("index", i),
				zap.Float64("x0", r.Condition.X),
				zap.Float64("y0", r.Condition.Y),
				zap.Error(r.Err))
		}
	}
	return art, nil
}

func sceneName(scene *config.Scene, arg string) string {
	if scene.Name != "" {
		return scene.Name
	}
	return arg
}
