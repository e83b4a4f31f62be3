// Package cli implements combinectl, the command line front end for scoring
// athletes offline and driving a running combine server.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/okian/combine/pkg/logger"
)

// ErrColorMode is returned for an unknown --color value.
var ErrColorMode = errors.New("unsupported color mode")

// NewRootCommand builds the combinectl command tree.
func NewRootCommand() *cobra.Command {
	var colorMode string

	root := &cobra.Command{
		Use:           "combinectl",
		Short:         "Score athletic tests and drive a combine server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(
				logger.WithWriter(cmd.ErrOrStderr()),
				logger.WithLevel(slog.LevelWarn),
			); err != nil {
				return err
			}
			on, err := colorEnabled(colorMode, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			cmd.SetContext(withPalette(cmd.Context(), newPalette(on)))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize output (auto|on|off)")

	root.AddCommand(
		newScoreCommand(),
		newParseTimeCommand(),
		newOptionsCommand(),
		newSimulateCommand(),
	)
	return root
}

// Execute runs the root command and reports errors on stderr.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		return 1
	}
	return 0
}

func colorEnabled(mode string, out io.Writer) (bool, error) {
	switch strings.ToLower(mode) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("%w: %q (must be auto, on or off)", ErrColorMode, mode)
	}
}
