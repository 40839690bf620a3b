package main

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/simcluster/engine"
	"github.com/katalvlaran/simcluster/record"
)

var groupShort = map[engine.Mode]string{
	engine.ModeSimilar:         "Show groups of near-duplicate records",
	engine.ModeGroups:          "Split records into about --count groups",
	engine.ModeRepresentatives: "Pick up to --count representative records",
	engine.ModeEven:            "Split records into exactly --count groups",
}

// outcome is the finished request for one input.
type outcome struct {
	input  string
	size   int
	result engine.Message
}

func newGroupCmd(s *settings, mode engine.Mode) *cobra.Command {
	var (
		all    bool
		asJSON bool
		jobs   int
	)
	cmd := &cobra.Command{
		Use:   string(mode) + " [files...]",
		Short: groupShort[mode],
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.load(cmd, mode)
			if err != nil {
				return err
			}
			l := logger(cfg, cmd.ErrOrStderr())
			paths, err := inputs(args)
			if err != nil {
				return err
			}
			eng := engine.New(engine.WithLogger(l))

			if jobs < 1 {
				jobs = 1
			}
			results := make([]outcome, len(paths))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(jobs)
			for i, p := range paths {
				i, p := i, p
				g.Go(func() error {
					req, err := readRequest(cmd.InOrStdin(), p, cfg)
					if err != nil {
						return fmt.Errorf("%s: %w", p, err)
					}
					req.Mode = string(mode)

					out := outcome{input: p, size: len(req.Characters)}
					for m := range eng.Run(ctx, req) {
						if !m.Terminal() {
							l.Debug().Str("input", p).Int("percent", m.Progress.Percent).Msg("Comparing")
							continue
						}
						out.result = m
					}
					if out.result.Type == engine.TypeFailed {
						return fmt.Errorf("%s: %w", p, out.result.Err)
					}
					results[i] = out
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, r := range results {
				if asJSON {
					if err := json.NewEncoder(w).Encode(r.result); err != nil {
						return fmt.Errorf("write output: %w", err)
					}
					continue
				}
				if len(results) > 1 {
					fmt.Fprintf(w, "%s\n", color.New(color.Bold).Sprint(inputLabel(r.input)))
				}
				printGroups(w, mode, r.size, r.result.Groups, all)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include records without any match")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result message as JSON")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "inputs processed in parallel")

	return cmd
}

func inputLabel(p string) string {
	if p == "-" {
		return "stdin"
	}
	return filepath.Base(p)
}

// printGroups renders groups for a terminal. Similar-mode singletons are
// hidden unless all is set; every other mode prints everything.
func printGroups(w io.Writer, mode engine.Mode, size int, groups [][]record.Record, all bool) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	if size == 0 {
		fmt.Fprintf(w, "%s\n", gray("No characters to compare."))
		return
	}

	shown := 0
	for _, grp := range groups {
		if mode == engine.ModeSimilar && len(grp) < 2 && !all {
			continue
		}
		shown++

		if mode == engine.ModeRepresentatives {
			fmt.Fprintf(w, "%s %s\n", green("●"), grp[0])
			continue
		}
		fmt.Fprintf(w, "%s %s\n", cyan(fmt.Sprintf("Group %d", shown)), gray(fmt.Sprintf("(%d)", len(grp))))
		for _, r := range grp {
			fmt.Fprintf(w, "  • %s\n", r)
		}
	}

	if shown == 0 {
		fmt.Fprintf(w, "%s\n", yellow("No similar characters found."))
	}
}
