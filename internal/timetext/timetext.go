// Package timetext parses human time expressions from journal text into
// minute-of-day intervals and durations.
package timetext

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
)

var (
	rangeRe  = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s*-\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
	singleRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2})|\s*(am|pm))\b`)

	parenDurRe = regexp.MustCompile(`(?i)\(\s*(\d+)\s*(hours?|hrs?|minutes?|mins?)\s*\)`)

	minutesRe  = regexp.MustCompile(`(?i)\b(\d+)\s*(?:minutes?|mins?)\b`)
	hoursRe    = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:hours?|hrs?)\b`)
	pomodoroRe = regexp.MustCompile(`(?i)\b(\d+)\s*pomodoros?\b`)
)

// normalizeSeparators folds the accepted range separators (en dash,
// em dash, " to ") into a plain hyphen.
func normalizeSeparators(s string) string {
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.ReplaceAll(s, "—", "-")
	s = strings.ReplaceAll(s, " to ", "-")
	return s
}

// findRange locates the best range candidate in text, as a submatch index
// slice. A match carrying a clock marker (minutes or a meridiem on either
// side) wins over a bare digit pair, and a bare pair embedded in a longer
// digit-hyphen run (a date like 2025-08-01) is never a candidate.
func findRange(text string) []int {
	matches := rangeRe.FindAllStringSubmatchIndex(text, -1)
	for _, m := range matches {
		if hasClockMarker(m) {
			return m
		}
	}
	for _, m := range matches {
		if !inDigitHyphenRun(text, m[0], m[1]) {
			return m
		}
	}
	return nil
}

// hasClockMarker reports whether either side of a range match carries
// explicit minutes or a meridiem.
func hasClockMarker(m []int) bool {
	for _, g := range []int{2, 3, 5, 6} {
		if m[2*g] >= 0 {
			return true
		}
	}
	return false
}

func inDigitHyphenRun(s string, start, end int) bool {
	if start > 0 && s[start-1] == '-' {
		return true
	}
	return end < len(s) && s[end] == '-'
}

// matchGroup extracts capture group i from a submatch index slice.
func matchGroup(s string, m []int, i int) string {
	if m[2*i] < 0 {
		return ""
	}
	return s[m[2*i]:m[2*i+1]]
}

// resolveClock converts a matched hour/minute/meridiem triple to minutes
// from midnight. Bare hours 1-7 with no meridiem and no explicit minutes
// are treated as PM (afternoon bias); callers needing AM must write it
// explicitly.
func resolveClock(hourStr, minStr, meridiem string) (int, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, false
	}
	minute := 0
	if minStr != "" {
		minute, err = strconv.Atoi(minStr)
		if err != nil || minute > 59 {
			return 0, false
		}
	}

	switch strings.ToLower(meridiem) {
	case "am":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return 0, false
		}
		// Afternoon bias for bare small hours.
		if hour >= 1 && hour <= 7 && minStr == "" {
			hour += 12
		}
	}

	return hour*60 + minute, true
}

// ParseTimeWindow extracts a time interval from free text.
// Accepted forms: "HH:MM-HH:MM" (24-hour or am/pm, mixed separators) and a
// single time followed by an optional "(N hours|minutes)" annotation, which
// defaults to 60 minutes. Returns false when no time token is present, the
// digits are malformed, or the resolved end is not after the start.
func ParseTimeWindow(text string) (domain.TimeInterval, bool) {
	text = normalizeSeparators(text)

	if m := findRange(text); m != nil {
		start, ok := resolveClock(matchGroup(text, m, 1), matchGroup(text, m, 2), matchGroup(text, m, 3))
		if !ok {
			return domain.TimeInterval{}, false
		}
		end, ok := resolveClock(matchGroup(text, m, 4), matchGroup(text, m, 5), matchGroup(text, m, 6))
		if !ok {
			return domain.TimeInterval{}, false
		}
		iv, err := domain.NewTimeInterval(start, end)
		if err != nil {
			return domain.TimeInterval{}, false
		}
		return iv, true
	}

	if m := singleRe.FindStringSubmatch(text); m != nil {
		start, ok := resolveClock(m[1], m[2], m[3])
		if !ok {
			return domain.TimeInterval{}, false
		}
		dur := 60
		if pm := parenDurRe.FindStringSubmatch(text); pm != nil {
			n, err := strconv.Atoi(pm[1])
			if err != nil {
				return domain.TimeInterval{}, false
			}
			if strings.HasPrefix(strings.ToLower(pm[2]), "h") {
				dur = n * 60
			} else {
				dur = n
			}
		}
		end := start + dur
		if end > domain.MinutesPerDay {
			end = domain.MinutesPerDay
		}
		iv, err := domain.NewTimeInterval(start, end)
		if err != nil {
			return domain.TimeInterval{}, false
		}
		return iv, true
	}

	return domain.TimeInterval{}, false
}

// ParsePlanLine parses one plan-line candidate into its interval and the
// task text with the time expression stripped. Returns false when the line
// carries no parseable time window.
func ParsePlanLine(text string) (domain.TimeInterval, string, bool) {
	normalized := normalizeSeparators(text)

	var loc []int
	if m := findRange(normalized); m != nil {
		loc = m[:2]
	} else {
		loc = singleRe.FindStringIndex(normalized)
	}
	if loc == nil {
		return domain.TimeInterval{}, "", false
	}

	iv, ok := ParseTimeWindow(normalized)
	if !ok {
		return domain.TimeInterval{}, "", false
	}

	task := normalized[:loc[0]] + normalized[loc[1]:]
	task = parenDurRe.ReplaceAllString(task, "")
	task = strings.Trim(task, " \t:-•")
	if task == "" {
		return domain.TimeInterval{}, "", false
	}
	return iv, task, true
}

// InferDurationMinutes scans free text for an explicit duration and returns
// the first strong match: minute counts (floored at 15), hour counts
// (floored at 30), or "N pomodoro(s)" at 25 minutes each. Falls back to
// def when nothing matches.
func InferDurationMinutes(text string, def int) int {
	if m := minutesRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			if n < 15 {
				n = 15
			}
			return n
		}
	}
	if m := hoursRe.FindStringSubmatch(text); m != nil {
		f, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			n := int(f * 60)
			if n < 30 {
				n = 30
			}
			return n
		}
	}
	if m := pomodoroRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			return 25 * n
		}
	}
	return def
}

// ClockToMinutes converts "HH:MM" to minutes from midnight.
func ClockToMinutes(clock string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid clock %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock %q", clock)
	}
	return h*60 + m, nil
}

// MinutesToClock renders minutes from midnight as "HH:MM".
func MinutesToClock(min int) string {
	if min < 0 {
		min = 0
	}
	if min >= domain.MinutesPerDay {
		min = domain.MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
