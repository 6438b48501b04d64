package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/taskify/internal/search"
)

var (
	searchJSON  bool
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tasks and notes together, best match first",
	Long: `Search task titles and descriptions and note titles and contents.

Examples:
  taskify search report
  taskify search --json "weekly plan"
  taskify search -n 3 urgent`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the outcome as JSON")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (defaults to search_limit)")
}

type searchOutput struct {
	Query   string          `json:"query"`
	Status  search.Status   `json:"status"`
	Results []search.Result `json:"results"`
	Error   string          `json:"error,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	outcome := app.engine(searchLimit).Search(cmd.Context(), query)

	if searchJSON {
		output := searchOutput{Query: outcome.Query, Status: outcome.Status, Results: outcome.Results}
		if output.Results == nil {
			output.Results = []search.Result{}
		}
		if outcome.Err != nil {
			output.Error = outcome.Err.Error()
		}
		if err := writeJSON(os.Stdout, output); err != nil {
			return err
		}
		if outcome.Status == search.StatusFailed {
			return fmt.Errorf("search failed")
		}
		return nil
	}

	switch outcome.Status {
	case search.StatusIdle:
		fmt.Println(dimStyle.Render("Nothing to search for."))
	case search.StatusEmpty:
		fmt.Println(dimStyle.Render(fmt.Sprintf("No tasks or notes match %q.", query)))
	case search.StatusFailed:
		fmt.Fprintln(os.Stderr, errorStyle.Render("Search failed: "+outcome.Err.Error()))
		return fmt.Errorf("search failed")
	default:
		now := time.Now()
		for _, result := range outcome.Results {
			fmt.Println(formatResultLine(result, now))
		}
	}
	return nil
}
