// Package timing converts endurance times between free text, fractional
// minutes and M:SS display strings.
//
// The dot form is minutes.seconds, not decimal minutes: "3.56" is three
// minutes fifty-six seconds.
package timing

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const secondsPerMinute = 60

var (
	digitsPattern = regexp.MustCompile(`^\d+$`)
	dotPattern    = regexp.MustCompile(`^(\d+)\.(\d{1,2})$`)
)

// ParseMinutes parses "mm:ss", "mm.ss" or a whole number of minutes and
// returns fractional minutes. Failures wrap ErrInvalidTime.
func ParseMinutes(text string) (float64, error) {
	v := strings.TrimSpace(text)
	if v == "" {
		return 0, ErrEmptyTime
	}

	if left, right, ok := strings.Cut(v, ":"); ok {
		return fromParts(strings.TrimSpace(left), strings.TrimSpace(right), v)
	}

	if m := dotPattern.FindStringSubmatch(v); m != nil {
		return fromParts(m[1], m[2], v)
	}

	if digitsPattern.MatchString(v) {
		mins, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTime, text, err)
		}
		return mins, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidTime, text)
}

func fromParts(minPart, secPart, raw string) (float64, error) {
	if !digitsPattern.MatchString(minPart) || !digitsPattern.MatchString(secPart) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}
	mins, err := strconv.ParseFloat(minPart, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTime, raw, err)
	}
	secs, err := strconv.Atoi(secPart)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTime, raw, err)
	}
	if secs >= secondsPerMinute {
		return 0, fmt.Errorf("%w: %q", ErrSecondsOutOfRange, raw)
	}
	return mins + float64(secs)/secondsPerMinute, nil
}

// FormatMMSS renders fractional minutes as M:SS, rounded to the nearest
// second. There is no hour rollover. Negative input is rendered as -M:SS.
func FormatMMSS(minutes float64) string {
	total := int64(math.Round(minutes * secondsPerMinute))
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	m := total / secondsPerMinute
	s := total % secondsPerMinute
	return fmt.Sprintf("%s%d:%02d", sign, m, s)
}
