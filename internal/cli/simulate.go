package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/combine/internal/simulate"
)

func newSimulateCommand() *cobra.Command {
	cfg := simulate.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Submit a generated squad to a running server and show the ranking",
		Long: `Generates a squad, posts baseline batches, waits for the server to
assess them, posts retest batches and prints the top of the squad ranking.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := simulate.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			p := paletteFrom(cmd.Context())
			for _, phase := range []struct {
				name string
				t    simulate.Tally
			}{{"baseline", res.Baseline}, {"retest", res.Retest}} {
				fmt.Fprintf(out, "%-8s sent=%d accepted=%d duplicates=%d invalid=%d retries=%d\n",
					phase.name, phase.t.Sent, phase.t.Accepted, phase.t.Duplicates, phase.t.Invalid, phase.t.Retries)
			}
			fmt.Fprintf(out, "%s %d athletes in %s\n\n", p.head.Sprint("Done:"), len(res.Athletes), res.Duration.Round(time.Millisecond))
			renderSquad(out, p, res.Squad)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "combine server base URL")
	fl.IntVar(&cfg.Athletes, "athletes", cfg.Athletes, "squad size")
	fl.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "submissions per batch request")
	fl.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent batch requests")
	fl.IntVar(&cfg.Top, "top", cfg.Top, "squad entries to print")
	fl.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "generator seed")
	fl.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")
	fl.DurationVar(&cfg.Settle, "settle", cfg.Settle, "max wait for each phase to be processed")
	return cmd
}
