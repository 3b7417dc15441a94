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

// Package tick contains the conversion table between ticks (100-nanosecond
// units) and calendar units of the proleptic Gregorian calendar, together
// with the basic calendar functions built on top of it.
package tick

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	TicksPerMillisecond = int64(10000)
	TicksPerSecond      = TicksPerMillisecond * 1000 // 10,000,000
	TicksPerMinute      = TicksPerSecond * 60        // 600,000,000
	TicksPerHour        = TicksPerMinute * 60        // 36,000,000,000
	TicksPerDay         = TicksPerHour * 24          // 864,000,000,000

	MillisPerSecond = int64(1000)
	MillisPerMinute = MillisPerSecond * 60 //     60,000
	MillisPerHour   = MillisPerMinute * 60 //  3,600,000
	MillisPerDay    = MillisPerHour * 24   // 86,400,000

	DaysPerYear     = int64(365)
	DaysPer4Years   = DaysPerYear*4 + 1     // 1461
	DaysPer100Years = DaysPer4Years*25 - 1  // 36524
	DaysPer400Years = DaysPer100Years*4 + 1 // 146097

	// DaysTo1970 is the number of days from 0001-01-01 to 1970-01-01
	DaysTo1970 = DaysPer400Years*4 + DaysPer100Years*3 + DaysPer4Years*17 + DaysPerYear
	// DaysTo10000 is the number of days from 0001-01-01 to 10000-01-01
	DaysTo10000 = DaysPer400Years*25 - 366

	MinYear = 1
	MaxYear = 9999

	MinTicks = int64(0)
	MaxTicks = DaysTo10000*TicksPerDay - 1
	// MaxMillis is the exclusive bound of a millisecond offset which could be
	// applied to a tick count without leaving [MinTicks, MaxTicks]
	MaxMillis = DaysTo10000 * MillisPerDay

	// UnixEpochTicks is the tick count of 1970-01-01 00:00:00
	UnixEpochTicks = DaysTo1970 * TicksPerDay
)

var (
	ErrOutOfRange      = fmt.Errorf("value is out of range")
	ErrIntervalTooLong = fmt.Errorf("interval too long")
	ErrDurationTooLong = fmt.Errorf("duration too long")
)

var (
	daysToMonth365 = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}
	daysToMonth366 = [13]int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}
)

// DaysToMonth returns the cumulative day-count table for a leap (leap == true)
// or a common year. The value at index m is the number of days elapsed in the
// year before month m+1, so t[m] - t[m-1] is the number of days in month m.
func DaysToMonth(leap bool) [13]int {
	if leap {
		return daysToMonth366
	}
	return daysToMonth365
}

// IsLeapYear returns whether year is a leap year. The year must be in
// [MinYear..MaxYear], ErrOutOfRange is returned otherwise.
func IsLeapYear(year int) (bool, error) {
	if year < MinYear || year > MaxYear {
		return false, errors.Wrapf(ErrOutOfRange, "year=%d must be in [%d..%d]", year, MinYear, MaxYear)
	}
	return isLeap(year), nil
}

// DaysInMonth returns the number of days in the month of the year provided.
func DaysInMonth(year, month int) (int, error) {
	if month < 1 || month > 12 {
		return 0, errors.Wrapf(ErrOutOfRange, "month=%d must be in [1..12]", month)
	}
	leap, err := IsLeapYear(year)
	if err != nil {
		return 0, err
	}
	days := DaysToMonth(leap)
	return days[month] - days[month-1], nil
}

// DateToTicks returns the tick count of the midnight of the date provided.
func DateToTicks(year, month, day int) (int64, error) {
	dim, err := DaysInMonth(year, month)
	if err != nil {
		return 0, err
	}
	if day < 1 || day > dim {
		return 0, errors.Wrapf(ErrOutOfRange, "day=%d must be in [1..%d] for %d-%d", day, dim, year, month)
	}

	days := DaysToMonth(isLeap(year))
	y := int64(year - 1)
	n := y*DaysPerYear + y/4 - y/100 + y/400 + int64(days[month-1]) + int64(day-1)
	return n * TicksPerDay, nil
}

// TimeToTicks returns the tick count of the time of day provided.
func TimeToTicks(hour, minute, second int) (int64, error) {
	if hour < 0 || hour >= 24 {
		return 0, errors.Wrapf(ErrOutOfRange, "hour=%d must be in [0..24)", hour)
	}
	if minute < 0 || minute >= 60 {
		return 0, errors.Wrapf(ErrOutOfRange, "minute=%d must be in [0..60)", minute)
	}
	if second < 0 || second >= 60 {
		return 0, errors.Wrapf(ErrOutOfRange, "second=%d must be in [0..60)", second)
	}
	return int64(hour*3600+minute*60+second) * TicksPerSecond, nil
}

// CheckTicks returns ErrOutOfRange if the ticks value is not a valid
// calendar position
func CheckTicks(ticks int64) error {
	if ticks < MinTicks || ticks > MaxTicks {
		return errors.Wrapf(ErrOutOfRange, "ticks=%d must be in [%d..%d]", ticks, MinTicks, MaxTicks)
	}
	return nil
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
