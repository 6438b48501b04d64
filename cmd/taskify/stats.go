package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/taskify/internal/model"
	"github.com/Joseda-hg/taskify/internal/stats"
)

var (
	statsDays int
	statsJSON bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts, completion rate and recent productivity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsDays < 1 || statsDays > 366 {
			return fmt.Errorf("--days must be between 1 and 366")
		}
		tasks, err := app.ws.Tasks.List(cmd.Context())
		if err != nil {
			return err
		}

		report := analytics{
			Summary:      stats.Summarize(tasks),
			Productivity: stats.Productivity(tasks, time.Now(), statsDays),
		}
		if statsJSON {
			return writeJSON(os.Stdout, report)
		}

		summary := report.Summary
		fmt.Println(titleStyle.Render("Tasks"))
		fmt.Printf("  total %d, pending %d, in progress %d, completed %d (%d%%)\n",
			summary.Total, summary.Pending, summary.InProgress, summary.Completed, summary.CompletionRate)

		if len(summary.Categories) > 0 {
			fmt.Println(titleStyle.Render("Categories"))
			for _, category := range summary.Categories {
				fmt.Printf("  %-16s %d\n", category.Category, category.Count)
			}
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Last %d days", statsDays)))
		for _, day := range report.Productivity {
			bar := statusStyles[model.StatusCompleted].Render(strings.Repeat("#", day.Completed))
			fmt.Printf("  %s  created %-3d completed %-3d %s\n", day.Date, day.Created, day.Completed, bar)
		}
		return nil
	},
}

type analytics struct {
	Summary      stats.Summary `json:"summary" yaml:"summary"`
	Productivity []stats.Day   `json:"productivity" yaml:"productivity"`
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntVar(&statsDays, "days", stats.DefaultDays, "days of productivity history")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
}
