package cmd

import (
	"time"

	"github.com/lessbyless/lessbyless/internal/apiclient"
	"github.com/lessbyless/lessbyless/pkg/tracker"

	"github.com/spf13/cobra"
)

var statusWatch bool

var statusCmd = &cobra.Command{
	Use:   "status <tracker-id>",
	Short: "Show progress for a tracker",
	Long: `The "status" command shows what a tracker has achieved: elapsed time,
milestones and streak comparisons for cold-turkey trackers, dose totals for
dose-decrease trackers. With --watch it refreshes on the configured tick.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		status(cmd, args[0])
	},
}

func status(cmd *cobra.Command, id string) {
	client, cfg, ok := loadClient(cmd)
	if !ok {
		return
	}

	for {
		if !showStatus(cmd, client, id) {
			return
		}
		if !statusWatch {
			return
		}
		select {
		case <-cmd.Context().Done():
			return
		case <-time.After(cfg.TickInterval()):
		}
	}
}

// showStatus fetches the record fresh so a rename or edit shows up on the next
// watch tick. Returns false when the refresh loop should stop.
func showStatus(cmd *cobra.Command, client *apiclient.Client, id string) bool {
	rec, err := client.GetTracker(cmd.Context(), id)
	if err != nil {
		cmd.Println("Error fetching tracker:", err)
		return false
	}

	switch rec.Kind {
	case tracker.KindColdTurkey:
		printColdTurkeyStatus(cmd, client, rec)
	case tracker.KindDoseDecrease:
		printDosageStatus(cmd, client, rec)
	}
	return true
}

func printColdTurkeyStatus(cmd *cobra.Command, client *apiclient.Client, rec *tracker.Record) {
	prog, err := client.GetProgress(cmd.Context(), rec.ID)
	if err != nil {
		cmd.Println("Error fetching progress:", err)
		return
	}

	cmd.Printf("%s: %s\n", rec.Name, prog.Label)
	cmd.Printf("  tracked for %d day(s)\n", prog.DaysTracked)
	for _, m := range prog.Achieved {
		cmd.Printf("  [x] %s\n", m.Label)
	}
	if prog.Next != nil {
		cmd.Printf("  [ ] %s (%.0f%%)\n", prog.Next.Label, prog.ProgressToNext*100)
	}

	streaks, err := client.GetStreaks(cmd.Context(), rec.ID)
	if err != nil {
		cmd.Println("Error fetching streaks:", err)
		return
	}
	if streaks.Last != nil && !streaks.HasGoneLonger {
		cmd.Printf("  last streak beaten in %s\n", streaks.UntilLast)
	}
	if streaks.Record != nil && !streaks.HasHitRecord {
		cmd.Printf("  record beaten in %s\n", streaks.UntilRecord)
	}
	if streaks.Record != nil && streaks.HasHitRecord {
		cmd.Println("  this is your longest streak yet")
	}
}

func printDosageStatus(cmd *cobra.Command, client *apiclient.Client, rec *tracker.Record) {
	today, err := client.GetDosageToday(cmd.Context(), rec.ID)
	if err != nil {
		cmd.Println("Error fetching dosage:", err)
		return
	}

	cmd.Printf("%s: %g %s today\n", rec.Name, today.Value, today.Unit)
	if today.LastLogged != "" {
		cmd.Printf("  last logged %s\n", today.LastLogged)
	}

	daily, err := client.GetDosageDaily(cmd.Context(), rec.ID, 0)
	if err != nil {
		cmd.Println("Error fetching daily totals:", err)
		return
	}
	for _, day := range daily.Days {
		cmd.Printf("  %s  %g %s\n", day.Date, day.Value, daily.Unit)
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false, "keep refreshing until interrupted")
}
