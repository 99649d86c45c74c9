package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/lessbyless/lessbyless/internal/config"
	"github.com/lessbyless/lessbyless/internal/notify"
	"github.com/lessbyless/lessbyless/internal/notify/resend"
	"github.com/lessbyless/lessbyless/internal/storage/bolt"

	"github.com/spf13/cobra"
)

var (
	scanCfg    *config.Config
	scanAPIKey string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one milestone-notification sweep",
	Long: `The "scan" command checks every cold-turkey tracker for milestones crossed
since the last notification and emails each one once. Intended for cron; the
server runs the same sweep on its own when notifications are configured.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if scanAPIKey = os.Getenv("LESSBYLESS_RESEND_API_KEY"); scanAPIKey == "" {
			return fmt.Errorf("LESSBYLESS_RESEND_API_KEY environment variable is not set")
		}

		var err error
		scanCfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("error loading config file: %v", err)
		}
		if scanCfg.NotifyEmail == "" {
			return fmt.Errorf("notify_email is not set in the config file")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return scan()
	},
}

func scan() error {
	store, err := bolt.Open(scanCfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	scanner := &notify.Scanner{
		Store: store,
		Notifier: &resend.Notifier{
			APIKey: scanAPIKey,
			From:   scanCfg.NotifyFrom,
			Email:  scanCfg.NotifyEmail,
		},
	}
	return scanner.Scan(time.Now())
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
