package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/analytics"
)

var (
	statsRecent  int
	statsJSON    bool
	statsCleanup bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show visitor and contact statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := analytics.Open(cfg.Analytics.Path)
		if err != nil {
			return fmt.Errorf("opening analytics: %w", err)
		}
		defer db.Close()

		ctx := context.Background()
		out := cmd.OutOrStdout()

		if statsCleanup {
			n, err := db.Cleanup(ctx, analytics.Retention)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "removed %d visitor records older than 12 months\n", n)
		}

		stats, err := db.Stats(ctx, statsRecent)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		if statsJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Total visits\t%d\n", stats.TotalVisitors)
		fmt.Fprintf(tw, "Unique visitors\t%d\n", stats.UniqueVisitors)
		fmt.Fprintf(tw, "Today\t%d\n", stats.VisitorsToday)
		fmt.Fprintf(tw, "Last 7 days\t%d\n", stats.VisitorsThisWeek)
		fmt.Fprintf(tw, "Contact sent / failed\t%d / %d\n", stats.ContactsSent, stats.ContactsFailed)
		if len(stats.TopPaths) > 0 {
			fmt.Fprintln(tw, "\nTop paths\t")
			for _, p := range stats.TopPaths {
				fmt.Fprintf(tw, "  %s\t%d\n", p.Path, p.Hits)
			}
		}
		if len(stats.RecentVisitors) > 0 {
			fmt.Fprintln(tw, "\nRecent visitors\t")
			for _, v := range stats.RecentVisitors {
				fmt.Fprintf(tw, "  %s\t%s\t%s\n", v.Timestamp.Format("2006-01-02 15:04"), v.HashedIP, v.Path)
			}
		}
		return tw.Flush()
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsRecent, "recent", 20, "number of recent visits to list")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print JSON")
	statsCmd.Flags().BoolVar(&statsCleanup, "cleanup", false, "purge visits past the retention window first")
	rootCmd.AddCommand(statsCmd)
}
