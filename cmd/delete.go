package cmd

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <tracker-id>",
	Short: "Delete a tracker",
	Long:  `The "delete" command removes a tracker and all of its history.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deleteTracker(cmd, args[0])
	},
}

func deleteTracker(cmd *cobra.Command, id string) {
	client, _, ok := loadClient(cmd)
	if !ok {
		return
	}

	if err := client.DeleteTracker(cmd.Context(), id); err != nil {
		cmd.Println("Error deleting tracker:", err)
		return
	}
	cmd.Println("Deleted", id)
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
