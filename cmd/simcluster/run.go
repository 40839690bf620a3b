package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/simcluster/engine"
)

func newRunCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "run [file]",
		Short: "Stream progress and result messages as JSON lines",
		Long: `Run one clustering request and write every message to stdout, one JSON
object per line: {"type":"progress",...} while the similarity graph is built,
then a single {"type":"result",...} or {"type":"failed",...}.

Examples:
  simcluster run request.json
  cat characters.json | simcluster run -m levenshtein -t 0.9`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.load(cmd, "")
			if err != nil {
				return err
			}
			l := logger(cfg, cmd.ErrOrStderr())

			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			req, err := readRequest(cmd.InOrStdin(), path, cfg)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			var writeErr, failed error
			for m := range engine.New(engine.WithLogger(l)).Run(cmd.Context(), req) {
				if writeErr == nil {
					writeErr = enc.Encode(m)
				}
				if m.Type == engine.TypeFailed {
					failed = m.Err
				}
			}
			if writeErr != nil {
				return fmt.Errorf("write output: %w", writeErr)
			}
			if failed != nil {
				return fmt.Errorf("request failed: %w", failed)
			}

			return nil
		},
	}
}
