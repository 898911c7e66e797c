// Package report formats attack timings and counts for terminal output.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatDuration renders d as "12.35ms", "2.35s", "1m 23s" or "1h 5m".
func FormatDuration(d time.Duration) string {
	s := d.Seconds()
	switch {
	case s < 1:
		return fmt.Sprintf("%.2fms", s*1000)
	case s < 60:
		return fmt.Sprintf("%.2fs", s)
	case s < 3600:
		return fmt.Sprintf("%dm %ds", int(s)/60, int(s)%60)
	default:
		return fmt.Sprintf("%dh %dm", int(s)/3600, int(s)%3600/60)
	}
}

// FormatCount renders n with thousands separators.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// WriteHeader writes a titled block listing params in key order.
func WriteHeader(w io.Writer, title string, params map[string]string) error {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	rule := strings.Repeat("=", 52)
	fmt.Fprintf(&b, "%s\n  %s\n%s\n", rule, title, rule)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %-12s %s\n", k+":", params[k])
	}
	_, err := io.WriteString(w, b.String())
	return err
}
