// Package transcript turns a free-text courtroom transcript into structured,
// role-attributed turns for storage and replay. The parser works on any
// transcript regardless of which generation path produced it.
package transcript

import (
	"fmt"
	"strings"

	"jurix/internal/types"
)

// roleMarkers in match priority order. A marker hit anywhere in the
// upper-cased line attributes the line to that role; the first marker in
// table order wins when several occur.
var roleMarkers = []struct {
	Marker string
	Role   string
}{
	{"JUDGE:", "Judge"},
	{"PROSECUTOR", "Prosecutor"},
	{"DEFENSE", "Defense"},
	{"WITNESS", "Witness"},
	{"COURT:", "Court"},
}

// Parse scans the transcript line by line. A role marker opens a new turn
// with the text after the marker; following lines accumulate into the turn
// until the next marker. Blank lines and `=`/`-` separator lines are skipped
// without closing the turn. Turns that end up with no message are discarded.
// Timestamps and durations are synthetic: turn n starts at 09:00 plus 15
// minutes per turn, and speaking time grows with message length.
//
// Marker-free input yields zero turns; that is a valid outcome, not an
// error.
func Parse(transcript string) []types.Turn {
	turns := make([]types.Turn, 0)

	var currentRole string
	var currentMessage []string

	flush := func() {
		if currentRole == "" || len(currentMessage) == 0 {
			return
		}
		message := strings.TrimSpace(strings.Join(currentMessage, " "))
		if message == "" {
			return
		}
		n := len(turns)
		turns = append(turns, types.Turn{
			Number:    n,
			Role:      currentRole,
			Message:   message,
			Timestamp: fmt.Sprintf("%02d:%02d:00", 9+n/4, (n*15)%60),
			Duration:  len(message)/20 + 3,
		})
	}

	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "=") || strings.HasPrefix(line, "-") {
			continue
		}

		role, rest, found := matchMarker(line)
		if found {
			flush()
			currentRole = role
			currentMessage = nil
			if rest != "" {
				currentMessage = append(currentMessage, rest)
			}
			continue
		}

		if currentRole != "" {
			currentMessage = append(currentMessage, line)
		}
	}
	flush()

	return turns
}

// matchMarker finds the first role marker occurring in the line and returns
// the role plus the text after the marker.
func matchMarker(line string) (role, rest string, found bool) {
	upper := strings.ToUpper(line)
	for _, rm := range roleMarkers {
		idx := strings.Index(upper, rm.Marker)
		if idx < 0 {
			continue
		}
		return rm.Role, strings.TrimSpace(line[idx+len(rm.Marker):]), true
	}
	return "", "", false
}
