package cmd

import (
	"strconv"

	"github.com/lessbyless/lessbyless/pkg/tracker"

	"github.com/spf13/cobra"
)

var logNote string

var logCmd = &cobra.Command{
	Use:   "log <tracker-id> <value> <unit>",
	Short: "Log a dose against a dose-decrease tracker",
	Long: `The "log" command records a dose, e.g.:

  lessbyless log 4f1c... 2.5 mg --note "rough morning"`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		logDose(cmd, args[0], args[1], args[2])
	},
}

func logDose(cmd *cobra.Command, id, rawValue, unit string) {
	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		cmd.Printf("Invalid dose value %q: %v\n", rawValue, err)
		return
	}

	client, _, ok := loadClient(cmd)
	if !ok {
		return
	}

	entry, err := client.AddDoseLog(cmd.Context(), id, value, tracker.Unit(unit), logNote)
	if err != nil {
		cmd.Println("Error logging dose:", err)
		return
	}
	cmd.Printf("Logged %g %s at %s\n", entry.Value, entry.Unit, entry.At)
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVar(&logNote, "note", "", "optional note for the dose entry")
}
