package cmd

import (
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <tracker-id>",
	Short: "Reset a cold-turkey streak",
	Long: `The "reset" command ends the current streak and starts a new one from now.
The finished streak is kept in the tracker's history for streak comparisons.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reset(cmd, args[0])
	},
}

func reset(cmd *cobra.Command, id string) {
	client, _, ok := loadClient(cmd)
	if !ok {
		return
	}

	rec, err := client.ResetTracker(cmd.Context(), id)
	if err != nil {
		cmd.Println("Error resetting tracker:", err)
		return
	}
	cmd.Printf("Reset %q, attempt #%d starts now\n", rec.Name, len(rec.ResetHistory)+1)
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
