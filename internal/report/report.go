// Package report renders ranked scan results for the console.
package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"routescout/internal/engine"
)

// Render writes one section per base, best route first. baseOrder fixes the
// section order (scan results are keyed by IATA in an unordered map).
func Render(w io.Writer, results map[string][]engine.RouteScore, baseOrder []string) {
	for _, iata := range baseOrder {
		scores, ok := results[iata]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\n%s - top %d routes\n", iata, len(scores))
		if len(scores) == 0 {
			fmt.Fprintln(w, "  no profitable routes found")
			continue
		}
		for i, rs := range scores {
			fmt.Fprintf(w, "  %2d. %s→%s %-22s %-28s %s/wk per flight\n",
				i+1, rs.FromIATA, rs.ToIATA, rs.ToCity, "("+rs.AircraftName+")", money(rs.Score))
		}
	}
}

func money(v int) string {
	if v < 0 {
		return "-$" + humanize.Comma(int64(-v))
	}
	return "$" + humanize.Comma(int64(v))
}
