package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lintang-b-s/Voronoix/pkg/engine"
	"github.com/lintang-b-s/Voronoix/pkg/logger"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Interactive menu: advance passes, save csv, show the plot",
		RunE: func(cmd *cobra.Command, args []string) error {
			// keep log lines off the terminal ui.
			log, err := logger.NewWithOptions(logLevel("warn"), []string{"voronoix.log"})
			if err != nil {
				return err
			}
			defer log.Sync()

			cfg, err := newEngineConfig()
			if err != nil {
				return err
			}
			eng, err := engine.NewEngine(cfg, log)
			if err != nil {
				return err
			}

			model := newMenuModel(eng, outDir)
			first := eng.AdvancePass()
			model.setMessage(summary(first), false)

			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&outDir, "out", ".", "directory for saved csv and png files")
	return cmd
}
