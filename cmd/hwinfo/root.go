package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prabalesh/hwinfo/internal/collector"
	"github.com/prabalesh/hwinfo/internal/config"
	"github.com/prabalesh/hwinfo/internal/logging"
	"github.com/prabalesh/hwinfo/internal/output"
	"github.com/prabalesh/hwinfo/internal/ui"
)

type options struct {
	output     string
	configPath string
	tui        bool
	quiet      bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "hwinfo",
		Short: "Display hardware information of the local device",
		Long: `Display hardware information of the local device: system, boot time,
CPU, memory, swap, disks, network interfaces and GPUs.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path. Writes a .json file")
	cmd.Flags().StringVar(&opts.configPath, "config", config.DefaultPath(), "Config file path")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "Browse the report interactively")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print the report to stdout")

	return cmd
}

func run(ctx context.Context, stdout io.Writer, opts options) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	stats := collector.NewStatsCollector(
		collector.NewHostSource(),
		gpuReader(cfg.GPU),
		collector.Options{
			SampleInterval:     cfg.CPU.SampleInterval,
			AllPartitions:      cfg.Disk.AllPartitions,
			FirstPartitionOnly: cfg.Disk.FirstOnly,
		},
		log,
	)

	if opts.tui {
		p := tea.NewProgram(ui.NewApp(ctx, stats), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running interactive view: %w", err)
		}
		return nil
	}

	report := stats.GetReport(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	if opts.output != "" {
		path, err := output.WriteFile(opts.output, report)
		if err != nil {
			return err
		}
		log.Info("report written", zap.String("path", path))
	}

	if opts.quiet {
		return nil
	}
	return ui.Print(stdout, report)
}

func gpuReader(cfg config.GPUConfig) collector.GPUReader {
	if !cfg.Enabled {
		return nil
	}
	readers := collector.GPUReaders{collector.NewNvidiaSMI(cfg.NvidiaSMI, cfg.Timeout)}
	if cfg.SysfsFallback {
		readers = append(readers, collector.NewDRM(collector.DefaultDRMRoot))
	}
	return readers
}
