package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vkngwrapper/memsim/config"
	"github.com/vkngwrapper/memsim/report"
	"github.com/vkngwrapper/memsim/request"
	"github.com/vkngwrapper/memsim/simulation"
	"golang.org/x/exp/slog"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	format     string
	configPath string

	// Request flags, each overriding the matching key of the config file
	memoryFlag    string
	processesFlag string
	sizesFlag     string
	pageSizeFlag  string
	segmentsFlag  string
)

// logOutput receives every log line the command writes
var logOutput io.Writer = os.Stderr

var rootCmd = &cobra.Command{
	Use:   "memsim",
	Short: "Simulate paging and segmentation over a fixed address space",
	Long: `memsim places a fixed set of processes into a bounded address space twice:
once with fixed-size paging and once with first-fit segmentation. It reports
the frame table, the base/limit table and the first request that did not fit.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all logging except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVarP(&format, "format", "f", "", "Output format: table, map or json")
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "Read the request from a YAML file")

	rootCmd.PersistentFlags().StringVarP(&memoryFlag, "memory", "m", "", "Total memory in bytes")
	rootCmd.PersistentFlags().
		StringVarP(&processesFlag, "processes", "n", "", "Number of processes")
	rootCmd.PersistentFlags().
		StringVarP(&sizesFlag, "sizes", "s", "", "Comma-separated process sizes, e.g. 250,150")
	rootCmd.PersistentFlags().StringVarP(&pageSizeFlag, "page-size", "p", "", "Page size in bytes")
	rootCmd.PersistentFlags().
		StringVar(&segmentsFlag, "segments", "", "Segment sizes per process, e.g. \"100,200;150\"")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// options is everything a simulation run needs, after the config file and flags are merged
type options struct {
	raw    request.Raw
	format config.Format
	level  slog.Level
}

// resolveOptions loads the config file, if any, and applies flags on top of it
func resolveOptions() (*options, error) {
	cfg := &config.Config{}
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
	}

	opts := &options{raw: cfg.Raw()}
	overrideField(&opts.raw.TotalMemory, memoryFlag)
	overrideField(&opts.raw.Processes, processesFlag)
	overrideField(&opts.raw.ProcessSizes, sizesFlag)
	overrideField(&opts.raw.PageSize, pageSizeFlag)
	overrideField(&opts.raw.Segments, segmentsFlag)

	switch {
	case jsonOut:
		opts.format = config.FormatJSON
	case format != "":
		parsed, err := config.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		opts.format = parsed
	default:
		opts.format = cfg.FormatOrDefault()
	}

	switch {
	case quiet:
		opts.level = slog.LevelError
	case verbose:
		opts.level = slog.LevelDebug
	default:
		level, err := cfg.Level()
		if err != nil {
			return nil, err
		}
		opts.level = level
	}

	return opts, nil
}

func overrideField(field *string, flagValue string) {
	if flagValue != "" {
		*field = flagValue
	}
}

// newLogger builds the stderr logger shared by the command and the simulator
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: level}))
}

// runSimulation runs the allocators selected by mode and writes the report to stdout.
// Overflows are part of the report; only invalid requests fail the command.
func runSimulation(mode simulation.Mode) error {
	opts, err := resolveOptions()
	if err != nil {
		return err
	}

	logger := newLogger(opts.level)
	logger.Debug("memsim::runSimulation",
		slog.String("Mode", mode.String()),
		slog.String("Format", string(opts.format)),
		slog.String("Config", configPath))

	sim := simulation.New(logger)
	result, err := sim.RunRaw(opts.raw, mode)
	if err != nil {
		return err
	}

	return report.Write(os.Stdout, result, opts.format)
}
