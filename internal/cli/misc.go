package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	service "github.com/okian/combine/internal/app"
)

func newParseTimeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "parse-time VALUE",
		Short:   "Parse a 1km time (mm:ss, mm.ss or whole minutes)",
		Example: "  combinectl parse-time 3.56",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := service.New().ParseTime(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%.4f min)\n", t.Display, t.Minutes)
			return nil
		},
	}
}

func newOptionsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "options",
		Short: "List genders, age groups, sports and tests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := service.New().Options()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(opts)
			}

			p := paletteFrom(cmd.Context())
			list := func(title string, items []string) {
				fmt.Fprintf(out, "%s %s\n", p.head.Sprint(title+":"), strings.Join(items, ", "))
			}
			genders := make([]string, len(opts.Genders))
			for i, g := range opts.Genders {
				genders[i] = string(g)
			}
			ages := make([]string, len(opts.AgeGroups))
			for i, a := range opts.AgeGroups {
				ages[i] = string(a)
			}
			list("Genders", genders)
			list("Age groups", ages)
			list("Sports", opts.Sports)
			fmt.Fprintf(out, "%s %s\n\n", p.head.Sprint("Default sport:"), opts.DefaultSport)

			rows := make([][]string, 0, len(opts.Tests))
			for _, t := range opts.Tests {
				better := "higher"
				if t.LowerIsBetter {
					better = "lower"
				}
				rows = append(rows, []string{string(t.ID), t.Label, t.Unit, better})
			}
			table(out, []string{"ID", "TEST", "UNIT", "BETTER"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
