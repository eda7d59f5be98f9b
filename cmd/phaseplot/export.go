package main

import (
	"fmt"
	"io"
	"os"

	"github.com/san-kum/phaseplot/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [preset|scene.yaml]",
		Short: "export computed trajectories and field samples",
		Long: `Formats:
  csv        trajectory samples (trajectory,label,branch,t,x,y)
  field-csv  direction field samples
  json       the whole portrait as one document
  run        a run directory with all of the above under -o (default .phaseplot)`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}
	cmd.Flags().StringVar(&exportFormat, "format", "csv", "csv, field-csv, json or run")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path (default stdout)")
	cmd.Flags().IntVar(&resolution, "resolution", 0, "direction field grid size (0 = scene or settings)")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	scene, err := loadScene(args[0])
	if err != nil {
		return err
	}
	art, err := compute(cmd.Context(), scene, settings.Render.Resolution)
	if err != nil {
		return err
	}
	name := sceneName(scene, args[0])

	if exportFormat == "run" {
		dir := exportOutput
		if dir == "" {
			dir = ".phaseplot"
		}
		st := export.NewStore(dir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(name, art)
		if err != nil {
			return err
		}
		fmt.Printf("saved run %s\n", id)
		return nil
	}

	var w io.Writer = os.Stdout
	if exportOutput != "" {
		f, ferr := os.Create(exportOutput)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	switch exportFormat {
	case "csv":
		return export.WriteTrajectoriesCSV(w, art.Trajectories)
	case "field-csv":
		return export.WriteFieldCSV(w, art.Field)
	case "json":
		return export.WriteJSON(w, export.NewDocument(name, art))
	default:
		return fmt.Errorf("unknown export format: %s", exportFormat)
	}
}
