package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mnemo-app/mnemo/internal/config"
	"github.com/mnemo-app/mnemo/internal/engine"
	"github.com/mnemo-app/mnemo/internal/store"
)

// The client commands work the local database directly; no running
// server is required.

func clientEngine() (*engine.Engine, *store.DB, error) {
	return openEngine(config.Load(), zap.NewNop().Sugar())
}

var queueLimit int

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the ranked review queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, db, err := clientEngine()
		if err != nil {
			return err
		}
		defer db.Close()

		now := time.Now().UTC()
		queue, stats, err := eng.Queue(now, queueLimit)
		if err != nil {
			return err
		}

		if len(queue) == 0 {
			fmt.Println("Nothing in the queue. All caught up!")
			return nil
		}

		tierNames := map[int]string{
			engine.TierDue:      "due",
			engine.TierCritical: "decay",
			engine.TierNew:      "new",
		}
		for i, e := range queue {
			marker := ""
			if e.Item.IsLeech {
				marker = "  [leech]"
			}
			fmt.Printf("%2d. #%-4d %-7s %-40s retention %5.1f%%%s\n",
				i+1, e.Item.ID, tierNames[e.Tier], e.Item.Title,
				e.Decay.RetentionPercent, marker)
		}
		fmt.Printf("\n%d due now, %d due today, ~%d min\n",
			stats.DueNow, stats.DueToday, stats.EstimatedMinutes)
		return nil
	},
}

var reviewSeconds int

var reviewCmd = &cobra.Command{
	Use:   "review <item-id> <quality>",
	Short: "Submit a review rating (0-5) for an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		quality, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quality %q", args[1])
		}

		eng, db, err := clientEngine()
		if err != nil {
			return err
		}
		defer db.Close()

		res, err := eng.SubmitReview(id, quality, reviewSeconds, time.Now().UTC())
		if err != nil {
			return err
		}

		fmt.Println(res.Message)
		if res.IsLeech {
			fmt.Println("This item keeps lapsing - consider suspending or restructuring it.")
		}
		return nil
	},
}

var heatmapDays int

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Show practice activity and streaks",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, db, err := clientEngine()
		if err != nil {
			return err
		}
		defer db.Close()

		hm, err := eng.Heatmap(time.Now().UTC(), heatmapDays)
		if err != nil {
			return err
		}

		glyphs := []rune(" .:*#")
		for _, d := range hm.Days {
			fmt.Print(string(glyphs[d.Level]))
		}
		fmt.Println()
		fmt.Printf("streak: %d day(s), longest: %d, practiced %d of the last %d days\n",
			hm.CurrentStreak, hm.LongestStreak, hm.TotalDaysPracticed, len(hm.Days))
		return nil
	},
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show retention health across all tracked items",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, db, err := clientEngine()
		if err != nil {
			return err
		}
		defer db.Close()

		now := time.Now().UTC()
		ov, err := eng.DecayOverview(now)
		if err != nil {
			return err
		}

		fmt.Printf("%d tracked: %d healthy, %d warning, %d critical\n",
			ov.TotalTracked, ov.HealthyCount, ov.WarningCount, ov.CriticalCount)
		fmt.Printf("average retention %.1f%%, %d due today\n", ov.AverageRetention, ov.DueToday)

		alerts, err := eng.CriticalItems(now, 5)
		if err != nil {
			return err
		}
		if len(alerts) > 0 {
			fmt.Println("\nworst items:")
			for _, a := range alerts {
				fmt.Printf("  #%-4d %-40s %5.1f%% (%s, %d days since practice)\n",
					a.ItemID, a.Title, a.RetentionPercent, a.Urgency, a.DaysSincePractice)
			}
		}
		return nil
	},
}

var suspendUndo bool

var suspendCmd = &cobra.Command{
	Use:   "suspend <item-id>",
	Short: "Suspend an item, or resume it with --undo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}

		eng, db, err := clientEngine()
		if err != nil {
			return err
		}
		defer db.Close()

		if suspendUndo {
			item, err := eng.Unsuspend(id, time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Printf("#%d resumed, next review %s\n", item.ID,
				item.NextReviewAt.Format("2006-01-02"))
			return nil
		}

		item, err := eng.Suspend(id)
		if err != nil {
			return err
		}
		fmt.Printf("#%d suspended\n", item.ID)
		return nil
	},
}

func init() {
	queueCmd.Flags().IntVar(&queueLimit, "limit", 20, "maximum queue entries")
	reviewCmd.Flags().IntVar(&reviewSeconds, "seconds", 0, "time spent on the review")
	heatmapCmd.Flags().IntVar(&heatmapDays, "days", 30, "trailing window in days")
	suspendCmd.Flags().BoolVar(&suspendUndo, "undo", false, "resume a suspended item")
}
