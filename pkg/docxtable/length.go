package docxtable

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Length is a distance in English Metric Units (EMU)
type Length int64

// Unit conversions
const (
	EMUPerInch       Length = 914400
	EMUPerCentimeter Length = 360000
	EMUPerPoint      Length = 12700
	EMUPerTwip       Length = 635
)

// Inches converts inches to a Length, rounding to the nearest EMU
func Inches(inches float64) Length {
	return Length(math.Round(inches * float64(EMUPerInch)))
}

// Cm converts centimeters to a Length
func Cm(cm float64) Length {
	return Length(math.Round(cm * float64(EMUPerCentimeter)))
}

// Pt converts points to a Length
func Pt(points float64) Length {
	return Length(math.Round(points * float64(EMUPerPoint)))
}

// Twips converts twentieths of a point to a Length
func Twips(twips int) Length {
	return Length(twips) * EMUPerTwip
}

// EMU returns the raw EMU value
func (l Length) EMU() int64 {
	return int64(l)
}

// Inches returns the length in inches
func (l Length) Inches() float64 {
	return float64(l) / float64(EMUPerInch)
}

// Cm returns the length in centimeters
func (l Length) Cm() float64 {
	return float64(l) / float64(EMUPerCentimeter)
}

// Pt returns the length in points
func (l Length) Pt() float64 {
	return float64(l) / float64(EMUPerPoint)
}

// Twips returns the length in twentieths of a point, rounded to the nearest
// twip. This is the unit widths are stored in on disk.
func (l Length) Twips() int {
	return int(math.Round(float64(l) / float64(EMUPerTwip)))
}

// String formats the length in inches
func (l Length) String() string {
	return fmt.Sprintf("%gin", l.Inches())
}

var lengthUnits = []struct {
	suffix string
	per    Length
}{
	{"emu", 1},
	{"in", EMUPerInch},
	{"cm", EMUPerCentimeter},
	{"mm", EMUPerCentimeter / 10},
	{"pt", EMUPerPoint},
	{"tw", EMUPerTwip},
	{"dxa", EMUPerTwip},
}

// ParseLength reads a length such as "1.5in", "2cm", "12pt" or "1440tw".
// A bare number is a count of EMU.
func ParseLength(s string) (Length, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	per := Length(1)
	number := s
	for _, unit := range lengthUnits {
		if strings.HasSuffix(s, unit.suffix) {
			per = unit.per
			number = strings.TrimSpace(strings.TrimSuffix(s, unit.suffix))
			break
		}
	}
	value, err := strconv.ParseFloat(number, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, NewLookupError("length", s)
	}
	if math.Abs(value) >= float64(math.MaxInt64/per) {
		return 0, NewLookupError("length", s)
	}
	if value < 0 {
		return 0, NewOperationError("length", "width cannot be negative")
	}
	return Length(math.Round(value * float64(per))), nil
}
