package cameras

import (
	"fmt"
	"time"
)

// FormatElapsed renders the time since startedAt (epoch seconds) as "M:SS",
// clamped at zero when the clock reads earlier than the start. The value is
// only recomputed when a snapshot is taken, so displayed time does not tick
// on its own between polls.
func FormatElapsed(startedAt int64, now time.Time) string {
	elapsed := now.Unix() - startedAt
	if elapsed < 0 {
		elapsed = 0
	}
	return fmt.Sprintf("%d:%02d", elapsed/60, elapsed%60)
}
