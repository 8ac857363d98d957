package extract

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/leefowlercu/unibundle/internal/styles"
)

const summaryWidth = 50

// WriteSummary renders the per-type result table followed by totals.
func WriteSummary(w io.Writer, stats *Stats, outputRoot string) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	printf("\n%s\n%s\n%s\n", styles.Rule(summaryWidth), styles.Title.Render("Extraction Summary"), styles.Rule(summaryWidth))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	rows := [][4]string{{"TYPE", "EXTRACTED", "FAILED", "SKIPPED"}}
	for _, t := range stats.Types() {
		c := stats.Counts(t)
		rows = append(rows, [4]string{t, strconv.Itoa(c.Success), strconv.Itoa(c.Failed), strconv.Itoa(c.Skipped)})
	}
	total := stats.Totals()
	rows = append(rows, [4]string{"TOTAL", strconv.Itoa(total.Success), strconv.Itoa(total.Failed), strconv.Itoa(total.Skipped)})

	for _, r := range rows {
		if err == nil {
			_, err = fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t\n", r[0], r[1], r[2], r[3])
		}
	}
	if err == nil {
		err = tw.Flush()
	}

	b := stats.Bundles
	printf("\n  %s %d found, %d opened, %d not bundles, %d errors\n",
		styles.Label.Render("Bundles:"), b.Total, b.Opened, b.NotBundle, b.Errored+b.Interrupted)
	if b.Normalized > 0 {
		printf("  %s %d\n", styles.Label.Render("Normalized:"), b.Normalized)
	}
	printf("  %s %s\n", styles.Label.Render("Output:"), outputRoot)
	if total.Failed > 0 {
		printf("  %s\n", styles.WarningText.Render(fmt.Sprintf("Export failures: %d; run with --log-level debug for details", total.Failed)))
	}
	if stats.Duration > 0 {
		printf("  %s %s\n", styles.Label.Render("Elapsed:"), stats.Duration.Round(time.Millisecond))
	}

	return err
}
