package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/omeyang/xforget/internal/bench"
	"github.com/omeyang/xforget/pkg/observability/xmetrics"
)

// printReports 以表格形式输出压测结果。
func printReports(out io.Writer, runID string, w bench.Workload, reports []bench.Report) error {
	fmt.Fprintf(out, "run=%s\n", runID)
	fmt.Fprintf(out, "capacity=%d workers=%d ops=%d keys=%d hot_keys=%s hot_finds=%d\n\n",
		w.Capacity, w.Workers, w.Ops, w.Keys, strings.Join(w.HotKeys, ","), w.HotFinds)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POLICY\tOPS\tHIT RATIO\tHOT MISSES\tHOT SURVIVORS\tSIZE\tELAPSED\tNS/OP")
	fmt.Fprintln(tw, "------\t---\t---------\t----------\t-------------\t----\t-------\t-----")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%d\t%.2f%%\t%d\t%d/%d\t%d\t%s\t%.1f\n",
			r.Policy,
			r.Ops,
			r.HitRatio()*100,
			r.HotReaderMisses,
			len(r.HotSurvivors), len(w.HotKeys),
			r.FinalSize,
			r.Elapsed.Round(time.Microsecond),
			r.NsPerOp(),
		)
	}
	return tw.Flush()
}

// printTotals 输出从 OpenTelemetry 收集到的指标累计值。
func printTotals(out io.Writer, cacheName string, t xmetrics.Totals) error {
	fmt.Fprintf(out, "\nmetrics (cache=%s)\n", cacheName)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\thit=%d miss=%d\n", xmetrics.MetricLookups, t.Hits, t.Misses)
	fmt.Fprintf(tw, "  %s\tnew=%d replace=%d\n", xmetrics.MetricInserts, t.Inserts, t.Replacements)
	fmt.Fprintf(tw, "  %s\t%d\n", xmetrics.MetricEvictions, t.Evictions)
	fmt.Fprintf(tw, "  %s\t%d\n", xmetrics.MetricSize, t.Size)
	return tw.Flush()
}
