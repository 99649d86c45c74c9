package cmd

import (
	"os"

	"github.com/lessbyless/lessbyless/internal/apiclient"
	"github.com/lessbyless/lessbyless/internal/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lessbyless",
	Short: "Track progress away from a habit, cold turkey or by tapering",
	Long: `
	LessByLess tracks the time since you quit something and the milestones you
	cross along the way, or the doses you still take while tapering off. It
	runs as an HTTP server with a CLI client in front of it.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func loadClient(cmd *cobra.Command) (*apiclient.Client, *config.Config, bool) {
	cfg, err := config.Load()
	if err != nil {
		cmd.Println("Error loading config file:", err)
		return nil, nil, false
	}
	return apiclient.New(cfg.APIBaseURL), cfg, true
}
