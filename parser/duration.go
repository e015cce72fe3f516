package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// unitDurations maps the humantime-style unit suffixes this format uses
// beyond what time.ParseDuration already understands. time.ParseDuration
// tops out at "h"; sqllogictest scripts also write "5d" and "2w" for
// longer sleeps, so those two extra units are handled by hand and
// everything else is delegated to the standard library.
var unitDurations = map[string]time.Duration{
	"d": 24 * time.Hour,
	"w": 7 * 24 * time.Hour,
}

// parseDuration parses a humantime-style duration such as "500ms", "5s",
// "2m", "1h", "3d", or "1w". Compound forms like "1h30m" are delegated to
// time.ParseDuration; a single trailing "d"/"w" unit is handled separately
// since the standard library doesn't support it.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	for unit, scale := range unitDurations {
		if strings.HasSuffix(s, unit) {
			numStr := strings.TrimSuffix(s, unit)
			n, err := strconv.ParseFloat(numStr, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid duration %q", s)
			}
			return time.Duration(n * float64(scale)), nil
		}
	}
	return 0, fmt.Errorf("invalid duration %q", s)
}

// formatDuration renders d back to the compact form parseDuration accepts,
// used by the unparser. It renders positive whole weeks as <n>w, other
// positive whole days as <n>d, and defers to time.Duration.String() for
// everything else.
func formatDuration(d time.Duration) string {
	switch {
	case d > 0 && d%unitDurations["w"] == 0:
		return fmt.Sprintf("%dw", d/unitDurations["w"])
	case d > 0 && d%unitDurations["d"] == 0:
		return fmt.Sprintf("%dd", d/unitDurations["d"])
	default:
		return d.String()
	}
}
