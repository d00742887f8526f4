package duration

import (
	"math"
	"strconv"
	"strings"
	"time"

	"shutdowntimer/internal/core/model"
)

const (
	maxHours   = 23
	maxMinutes = 59
	zeroField  = "00"
)

// maxSeconds is the largest second count a time.Duration can hold.
const maxSeconds = uint64(math.MaxInt64 / int64(time.Second))

// Seconds assembles a total second count from three text fields.
// A field that is not a non-negative integer counts as zero. One leading
// plus sign is accepted.
func Seconds(hours, minutes, seconds string) uint64 {
	h := parseField(hours)
	m := parseField(minutes)
	s := parseField(seconds)

	return h*60*60 + m*60 + s
}

// Of returns the assembled duration of the form fields, saturating at the
// largest representable duration.
func Of(fields model.DurationFields) time.Duration {
	total := Seconds(fields.Hours, fields.Minutes, fields.Seconds)
	if total > maxSeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(total) * time.Second
}

// ClampHours bounds an hour field into [0,23].
func ClampHours(value string) string {
	return clamp(value, maxHours)
}

// ClampMinutes bounds a minute or second field into [0,59].
func ClampMinutes(value string) string {
	return clamp(value, maxMinutes)
}

// ClampFields applies the hour and minute clamps to every field.
func ClampFields(fields model.DurationFields) model.DurationFields {
	return model.DurationFields{
		Hours:   ClampHours(fields.Hours),
		Minutes: ClampMinutes(fields.Minutes),
		Seconds: ClampMinutes(fields.Seconds),
	}
}

func parseField(value string) uint64 {
	parsed, err := strconv.ParseUint(strings.TrimPrefix(value, "+"), 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// clamp keeps in-range input untouched so leading zeros survive.
func clamp(value string, upper int64) string {
	parsed, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return zeroField
	}
	if parsed > upper {
		return strconv.FormatInt(upper, 10)
	}
	if parsed < 0 {
		return zeroField
	}
	return value
}
