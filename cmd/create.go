package cmd

import (
	"github.com/lessbyless/lessbyless/pkg/tracker"

	"github.com/spf13/cobra"
)

var (
	createKind  string
	createStart string
	createValue float64
	createUnit  string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a tracker",
	Long: `The "create" command registers a new tracker. Cold-turkey trackers only
need a name; dose-decrease trackers also take a baseline usage, e.g.:

  lessbyless create coffee
  lessbyless create nicotine --kind dose_decrease --value 12 --unit mg`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		create(cmd, args[0])
	},
}

func create(cmd *cobra.Command, name string) {
	client, _, ok := loadClient(cmd)
	if !ok {
		return
	}

	rec, err := client.CreateTracker(cmd.Context(), name, tracker.Kind(createKind),
		createStart, createValue, tracker.Unit(createUnit))
	if err != nil {
		cmd.Println("Error creating tracker:", err)
		return
	}
	cmd.Printf("Created %s tracker %q (%s)\n", rec.Kind, rec.Name, rec.ID)
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&createKind, "kind", string(tracker.KindColdTurkey), "tracker kind (cold_turkey or dose_decrease)")
	createCmd.Flags().StringVar(&createStart, "start", "", "start timestamp (defaults to now)")
	createCmd.Flags().Float64Var(&createValue, "value", 0, "baseline usage value (dose_decrease only)")
	createCmd.Flags().StringVar(&createUnit, "unit", string(tracker.UnitMilligram), "baseline usage unit, mg or g (dose_decrease only)")
}
