// Copyright 2018-2019 The logrange Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dtformat

import (
	"strings"

	"github.com/jrivets/gorivets"
	"github.com/logrange/chrono/pkg/util"
)

type (
	// Calendar is the source of calendar fields for formatting. Month is in
	// [1..12], Weekday is in [0..6] where 0 is Sunday.
	Calendar interface {
		Year() int
		Month() int
		Day() int
		Weekday() int
		Hour() int
		Minute() int
		Second() int
	}

	formatField struct {
		typ   int
		width int
		value string
	}

	// Formatter keeps a pre-compiled pattern. The Formatter is immutable and
	// could be used from different go-routines simultaneously.
	Formatter struct {
		pattern string
		fields  []formatField
	}
)

const (
	frmtFldConst = iota
	frmtFldHour12
	frmtFldHour24
	frmtFldMinute
	frmtFldSecond
	frmtFldAmPm
	frmtFldDay
	frmtFldWeekday
	frmtFldMonth
	frmtFldMonthName
	frmtFldYear
)

// DefaultPattern is used when no pattern is provided
const DefaultPattern = "yyyy-MM-ddTHH:mm:ss"

var (
	weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	monthNames   = [12]string{"January", "February", "March", "April", "May", "June", "July",
		"August", "September", "October", "November", "December"}
)

// NewFormatter compiles the pattern. The pattern is scanned left to right and
// runs of the same directive character are substituted by calendar fields:
//
// h, hh	- 12-hour without and with leading zero
// H, HH	- 24-hour without and with leading zero
// m, mm	- minute
// s, ss	- second
// t, tt	- first letter of the AM/PM designator, the full designator
// d, dd	- day of month
// ddd		- abbreviated weekday name, e.g. Mon
// dddd		- full weekday name, e.g. Monday
// M, MM	- month number
// MMM		- abbreviated month name, e.g. Feb
// MMMM		- full month name, e.g. February
// y...		- year zero padded to the run length, e.g. yyyy -> 2019
//
// A '*' right after a run is consumed and selects the padded or the full
// form. Text in apostrophes is copied as is, without the apostrophes. Any
// other character is copied to the result. Empty pattern means DefaultPattern.
func NewFormatter(pattern string) *Formatter {
	if pattern == "" {
		pattern = DefaultPattern
	}

	fields := make([]formatField, 0, 10)
	var lit strings.Builder
	flushLit := func() {
		if lit.Len() > 0 {
			fields = append(fields, formatField{typ: frmtFldConst, value: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); {
		c := pattern[i]
		if c == '\'' {
			end := strings.IndexByte(pattern[i+1:], '\'')
			if end < 0 {
				lit.WriteString(pattern[i+1:])
				break
			}
			lit.WriteString(pattern[i+1 : i+1+end])
			i += end + 2
			continue
		}

		if !strings.ContainsRune("hHmstdMy", rune(c)) {
			lit.WriteByte(c)
			i++
			continue
		}

		n := 1
		for i+n < len(pattern) && pattern[i+n] == c {
			n++
		}
		i += n
		if i < len(pattern) && pattern[i] == '*' {
			i++
			if n < 2 {
				n = 2
			}
		}

		flushLit()
		fields = append(fields, runField(c, n))
	}
	flushLit()

	return &Formatter{pattern: pattern, fields: fields}
}

func runField(c byte, n int) formatField {
	switch c {
	case 'h':
		return formatField{typ: frmtFldHour12, width: gorivets.Min(n, 2)}
	case 'H':
		return formatField{typ: frmtFldHour24, width: gorivets.Min(n, 2)}
	case 'm':
		return formatField{typ: frmtFldMinute, width: gorivets.Min(n, 2)}
	case 's':
		return formatField{typ: frmtFldSecond, width: gorivets.Min(n, 2)}
	case 't':
		return formatField{typ: frmtFldAmPm, width: gorivets.Min(n, 2)}
	case 'd':
		if n <= 2 {
			return formatField{typ: frmtFldDay, width: n}
		}
		return formatField{typ: frmtFldWeekday, width: n}
	case 'M':
		if n <= 2 {
			return formatField{typ: frmtFldMonth, width: n}
		}
		return formatField{typ: frmtFldMonthName, width: n}
	}
	return formatField{typ: frmtFldYear, width: n}
}

// Pattern returns the pattern the formatter was compiled from
func (f *Formatter) Pattern() string {
	return f.pattern
}

// Format formats the calendar fields of c
func (f *Formatter) Format(c Calendar) string {
	var buf strings.Builder
	for _, ff := range f.fields {
		switch ff.typ {
		case frmtFldConst:
			buf.WriteString(ff.value)
		case frmtFldHour12:
			h := c.Hour() % 12
			if h == 0 {
				h = 12
			}
			buf.WriteString(util.PadInt(h, ff.width))
		case frmtFldHour24:
			buf.WriteString(util.PadInt(c.Hour(), ff.width))
		case frmtFldMinute:
			buf.WriteString(util.PadInt(c.Minute(), ff.width))
		case frmtFldSecond:
			buf.WriteString(util.PadInt(c.Second(), ff.width))
		case frmtFldAmPm:
			ampm := "AM"
			if c.Hour() >= 12 {
				ampm = "PM"
			}
			buf.WriteString(ampm[:ff.width])
		case frmtFldDay:
			buf.WriteString(util.PadInt(c.Day(), ff.width))
		case frmtFldWeekday:
			buf.WriteString(name(weekdayNames[:], c.Weekday(), ff.width))
		case frmtFldMonth:
			buf.WriteString(util.PadInt(c.Month(), ff.width))
		case frmtFldMonthName:
			buf.WriteString(name(monthNames[:], c.Month()-1, ff.width))
		case frmtFldYear:
			buf.WriteString(util.PadInt(c.Year(), ff.width))
		}
	}
	return buf.String()
}

// Format formats c in accordance with the pattern, see NewFormatter
func Format(c Calendar, pattern string) string {
	return NewFormatter(pattern).Format(c)
}

// WeekdayName returns the English name of the week day d, 0 is Sunday
func WeekdayName(d int) string {
	return name(weekdayNames[:], d, 4)
}

// MonthName returns the English name of the month m in [1..12]
func MonthName(m int) string {
	return name(monthNames[:], m-1, 4)
}

// name returns the full name for run width 4 and more, or the 3-letter
// abbreviation otherwise
func name(names []string, idx, width int) string {
	if idx < 0 || idx >= len(names) {
		return ""
	}
	if width >= 4 {
		return names[idx]
	}
	return names[idx][:3]
}
