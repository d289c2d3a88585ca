package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lintang-b-s/Voronoix/pkg/engine"
	"github.com/lintang-b-s/Voronoix/pkg/export"
	"github.com/lintang-b-s/Voronoix/pkg/logger"
	"github.com/lintang-b-s/Voronoix/pkg/visualizer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	styleErr   = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
)

type batchOptions struct {
	passes  int
	csvPath string
	pngPath string
	html    string
	video   string
	fps     int
}

func newBatchCmd() *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run a fixed number of passes without interaction and write the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.NewWithOptions(logLevel("warn"), []string{"stderr"})
			if err != nil {
				return err
			}
			defer log.Sync()
			return runBatch(cmd, opts, log)
		},
	}

	cmd.Flags().IntVar(&opts.passes, "passes", 10, "number of passes")
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "write the final grid as csv")
	cmd.Flags().StringVar(&opts.pngPath, "png", "", "write the final grid as a png heatmap")
	cmd.Flags().StringVar(&opts.html, "html", "", "write the final grid as an html heatmap")
	cmd.Flags().StringVar(&opts.video, "video", "", "record every pass into an mjpeg avi")
	cmd.Flags().IntVar(&opts.fps, "fps", visualizer.DEFAULT_FRAME_RATE, "video frame rate")
	return cmd
}

func runBatch(cmd *cobra.Command, opts batchOptions, log *zap.Logger) error {
	if opts.passes < 1 {
		return fmt.Errorf("passes must be at least 1, got %d", opts.passes)
	}
	cfg, err := newEngineConfig()
	if err != nil {
		return err
	}
	eng, err := engine.NewEngine(cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	var (
		recorder *visualizer.FrameRecorder
		frameErr error
	)
	if opts.video != "" {
		recorder, err = visualizer.NewFrameRecorder(opts.video, cfg.GridSize, visualizer.DEFAULT_CELL_PIXELS, opts.fps)
		if err != nil {
			return err
		}
		defer recorder.Close()
	}

	eng.OnPass(func(res engine.PassResult) {
		fmt.Fprintln(out, styleDim.Render(summary(res)))
		if recorder == nil || frameErr != nil {
			return
		}
		frameErr = recorder.AddFrame(eng.Snapshot())
	})

	if _, err := eng.Run(cmd.Context(), opts.passes); err != nil {
		return err
	}
	if frameErr != nil {
		return frameErr
	}

	snap := eng.Snapshot()
	fmt.Fprintln(out, styleTitle.Render(visualizer.DefaultTitle(snap)))

	if opts.csvPath != "" {
		if _, err := export.SaveCSV(opts.csvPath, snap.Labels); err != nil {
			return err
		}
		fmt.Fprintln(out, styleOK.Render("wrote "+opts.csvPath))
	}
	if opts.pngPath != "" {
		if err := visualizer.SavePNG(opts.pngPath, snap, visualizer.DefaultTitle(snap)); err != nil {
			return err
		}
		fmt.Fprintln(out, styleOK.Render("wrote "+opts.pngPath))
	}
	if opts.html != "" {
		if err := visualizer.SaveHTML(opts.html, snap); err != nil {
			return err
		}
		fmt.Fprintln(out, styleOK.Render("wrote "+opts.html))
	}
	if recorder != nil {
		frames := recorder.Frames()
		if err := recorder.Close(); err != nil {
			return err
		}
		fmt.Fprintln(out, styleOK.Render(fmt.Sprintf("wrote %s (%d frames)", opts.video, frames)))
	}
	return nil
}
