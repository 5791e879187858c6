package main

import (
	"fmt"
	"strings"

	"ftms-portal/internal/core/services"

	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show task statistics, pending reviews and recent activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireRoute(cmd.Context(), "/"); err != nil {
				return err
			}

			data, err := a.dashboard.Load(cmd.Context())
			if err != nil {
				return err
			}

			user := a.session.User()
			fmt.Printf("Dashboard for %s (%s)\n\n", user.Name, user.Role)
			fmt.Printf("  Total:       %d\n", data.Stats.Total)
			fmt.Printf("  Pending:     %d\n", data.Stats.Pending)
			fmt.Printf("  In progress: %d\n", data.Stats.InProgress)
			fmt.Printf("  Submitted:   %d\n", data.Stats.Submitted)
			fmt.Printf("  Completed:   %d\n", data.Stats.Completed)
			fmt.Printf("  Overdue:     %d\n", data.Stats.Overdue)

			if len(data.PendingReviews) > 0 {
				fmt.Println("\nPending reviews:")
				for _, t := range data.PendingReviews {
					fmt.Printf("  #%d %s (due %s)\n", t.ID, t.Title, t.DueAt.Local().Format("2006-01-02"))
				}
			}
			if len(data.RecentTasks) > 0 {
				fmt.Println("\nRecent tasks:")
				for _, t := range data.RecentTasks {
					fmt.Printf("  #%d %s [%s]\n", t.ID, t.Title, t.Status)
				}
			}
			return nil
		},
	}
}

func newChartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Show the task status breakdown as a text chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireRoute(cmd.Context(), "/"); err != nil {
				return err
			}

			data, err := a.dashboard.Load(cmd.Context())
			if err != nil {
				return err
			}
			printChart(data.Pie, data.Stats.Total)
			return nil
		},
	}
}

// printChart renders the pie segments as proportional horizontal bars
func printChart(segments []services.PieSegment, total int) {
	if total == 0 {
		fmt.Println("No tasks to chart")
		return
	}
	const width = 40
	for _, seg := range segments {
		bar := strings.Repeat("#", seg.Count*width/total)
		if bar == "" {
			bar = "#"
		}
		fmt.Printf("%-12s %-*s %d (%.0f%%)\n",
			seg.Label, width, bar, seg.Count, float64(seg.Count)*100/float64(total))
	}
}
