package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/queries"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
)

const rule = 60

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printHeading(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, strings.Repeat("=", rule))
}

func printRankedTask(w io.Writer, t queries.RankedTaskDTO, withReasons bool) {
	fmt.Fprintf(w, "  %2d. [%6.2f] %s (%d min, %s)\n", t.Rank, t.Score, t.Text, t.EstimatedMinutes, t.Category)
	if withReasons && len(t.Reasons) > 0 {
		fmt.Fprintf(w, "             %s\n", strings.Join(t.Reasons, ", "))
	}
}

func printBucket(w io.Writer, title string, tasks []domain.PlannedTask) {
	fmt.Fprintf(w, "\n  %s\n", title)
	if len(tasks) == 0 {
		fmt.Fprintln(w, "    (nothing)")
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(w, "    - %s (%d min, score %.1f)\n", t.Text, t.Minutes, t.Score)
		if len(t.Reasons) > 0 {
			fmt.Fprintf(w, "      %s\n", strings.Join(t.Reasons, ", "))
		}
	}
}

func printPlan(w io.Writer, morning, quick, afternoon []domain.PlannedTask, totalMinutes int) {
	printBucket(w, "🐸 MORNING FOCUS", morning)
	printBucket(w, "⚡ QUICK WINS", quick)
	printBucket(w, "🌤  AFTERNOON", afternoon)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Total: %d min (%.1f h)\n", totalMinutes, float64(totalMinutes)/60)
}
