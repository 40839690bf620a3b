// Command simcluster groups character records by text similarity.
//
// Usage:
//
//	simcluster run [file]                       stream protocol messages as JSON lines
//	simcluster similar [files...]               near-duplicate groups
//	simcluster groups -k 5 [files...]           about k groups
//	simcluster representatives -k 5 [files...]  one record per group
//	simcluster even -k 5 [files...]             exactly k groups
//
// Input is a request object or a bare JSON array of records; "-" or no file
// reads stdin. Settings come from --config, then flags.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/simcluster/config"
	"github.com/katalvlaran/simcluster/engine"
)

// settings are the flags shared by every subcommand.
type settings struct {
	configPath string
	method     string
	fields     []string
	threshold  float64
	count      int
	depth      int
	debug      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	s := &settings{}
	root := &cobra.Command{
		Use:           "simcluster",
		Short:         "Cluster character records by similarity",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&s.configPath, "config", "c", "", "YAML settings file")
	pf.StringVarP(&s.method, "method", "m", "", "field metric: levenshtein or sentence")
	pf.StringSliceVarP(&s.fields, "fields", "f", nil, "fields to compare (comma separated)")
	pf.Float64VarP(&s.threshold, "threshold", "t", 0, "similarity cutoff in [0, 1] for similar groups")
	pf.IntVarP(&s.count, "count", "k", 0, "number of groups or representatives")
	pf.IntVar(&s.depth, "depth", 0, "threshold search probe budget")
	pf.BoolVar(&s.debug, "debug", false, "debug logging")

	root.AddCommand(newRunCmd(s))
	for _, mode := range []engine.Mode{engine.ModeSimilar, engine.ModeGroups, engine.ModeRepresentatives, engine.ModeEven} {
		root.AddCommand(newGroupCmd(s, mode))
	}

	return root
}

// load resolves the effective configuration: file, then changed flags, then
// the subcommand's mode when it has one.
func (s *settings) load(cmd *cobra.Command, mode engine.Mode) (*config.Config, error) {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Method = s.method
	}
	if flags.Changed("fields") {
		cfg.Fields = s.fields
	}
	if flags.Changed("threshold") {
		cfg.Threshold = s.threshold
	}
	if flags.Changed("count") {
		cfg.Count = s.count
	}
	if flags.Changed("depth") {
		cfg.SearchDepth = s.depth
	}
	if mode != "" {
		cfg.Mode = string(mode)
	}
	if s.debug {
		cfg.Log.Level = zerolog.LevelDebugValue
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// logger writes human-readable logs to w; stdout is reserved for results.
func logger(cfg *config.Config, w io.Writer) zerolog.Logger {
	var out io.Writer = w
	if cfg.Log.Pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	l := zerolog.New(out).Level(cfg.LogLevel()).With().Timestamp().Logger()
	log.Logger = l

	return l
}
