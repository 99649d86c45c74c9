package cmd

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List trackers",
	Long:  `The "list" command shows every tracker with its id and kind.`,
	Run: func(cmd *cobra.Command, args []string) {
		list(cmd)
	},
}

func list(cmd *cobra.Command) {
	client, _, ok := loadClient(cmd)
	if !ok {
		return
	}

	recs, err := client.ListTrackers(cmd.Context())
	if err != nil {
		cmd.Println("Error fetching trackers:", err)
		return
	}
	if len(recs) == 0 {
		cmd.Println("No trackers yet.")
		return
	}
	for _, rec := range recs {
		cmd.Printf("%s  %-14s %s\n", rec.ID, rec.Kind, rec.Name)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
