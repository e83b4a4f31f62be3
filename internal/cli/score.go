package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	service "github.com/okian/combine/internal/app"
	"github.com/okian/combine/internal/domain/model"
	"github.com/okian/combine/internal/domain/training"
)

type scoreFlags struct {
	name      string
	gender    string
	ageGroup  string
	sport     string
	sprint    float64
	vertical  float64
	broad     float64
	strength  float64
	endurance string
	asJSON    bool
}

func newScoreCommand() *cobra.Command {
	var f scoreFlags
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one baseline test offline",
		Example: `  combinectl score --gender male --age-group 16-17 --sport Football \
    --sprint 3.3 --vertical 50 --broad 210 --strength 30 --endurance 4:40`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sub := f.submission(cmd)
			report, err := service.New().Assess(cmd.Context(), sub)
			if err != nil {
				return err
			}
			if f.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			renderReport(cmd.OutOrStdout(), paletteFrom(cmd.Context()), &report)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "athlete name")
	fl.StringVar(&f.gender, "gender", "", "male or female")
	fl.StringVar(&f.ageGroup, "age-group", "", "age group, e.g. 16-17")
	fl.StringVar(&f.sport, "sport", training.FallbackSport, "sport used to prioritise training")
	fl.Float64Var(&f.sprint, "sprint", 0, "20m sprint in seconds")
	fl.Float64Var(&f.vertical, "vertical", 0, "vertical jump in cm")
	fl.Float64Var(&f.broad, "broad", 0, "broad jump in cm")
	fl.Float64Var(&f.strength, "strength", 0, "push-up reps")
	fl.StringVar(&f.endurance, "endurance", "", "1km time as mm:ss or mm.ss")
	fl.BoolVar(&f.asJSON, "json", false, "print the report as JSON")
	return cmd
}

// submission leaves unset measurements nil so they are reported missing
// rather than scored as zero.
func (f *scoreFlags) submission(cmd *cobra.Command) model.Submission {
	opt := func(flag string, v float64) *float64 {
		if !cmd.Flags().Changed(flag) {
			return nil
		}
		return &v
	}
	return model.Submission{
		Name:      f.name,
		Kind:      string(model.KindBaseline),
		Gender:    f.gender,
		AgeGroup:  f.ageGroup,
		Sport:     f.sport,
		Sprint:    opt("sprint", f.sprint),
		Vertical:  opt("vertical", f.vertical),
		Broad:     opt("broad", f.broad),
		Strength:  opt("strength", f.strength),
		Endurance: f.endurance,
	}
}
