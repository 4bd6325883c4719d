// Package parser parses the ISO-8601 duration encoding used by the YouTube
// Data API (contentDetails.duration, e.g. "PT1H2M3S").
package parser

import "strings"

// DurationSeconds converts an ISO-8601 duration string into total seconds.
//
// The parser is deliberately tolerant: the upstream is not a schema authority
// we control. Empty input or a missing "PT" prefix yields 0, and unrecognized
// unit letters are skipped without contributing to the total. It never fails.
func DurationSeconds(iso string) int {
	if !strings.HasPrefix(iso, "PT") {
		return 0
	}

	var hours, minutes, seconds, num int
	for _, ch := range iso[2:] {
		switch {
		case ch >= '0' && ch <= '9':
			num = num*10 + int(ch-'0')
			continue
		case ch == 'H':
			hours = num
		case ch == 'M':
			minutes = num
		case ch == 'S':
			seconds = num
		}
		// Unit consumed or unknown letter: either way the pending number resets.
		num = 0
	}

	return hours*3600 + minutes*60 + seconds
}
