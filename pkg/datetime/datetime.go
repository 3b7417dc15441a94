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

package datetime

import (
	"math"
	"time"

	"github.com/jrivets/gorivets"
	"github.com/logrange/chrono/pkg/dtformat"
	"github.com/logrange/chrono/pkg/tick"
	"github.com/logrange/chrono/pkg/timespan"
	"github.com/pkg/errors"
	"gopkg.in/vmihailenco/msgpack.v2"
)

type (
	// DateTime represents an instant of the proleptic Gregorian calendar
	// between 0001-01-01 00:00:00 and 9999-12-31 23:59:59.9999999. The value
	// is the number of ticks (100-nanosecond units) elapsed since
	// 0001-01-01 00:00:00. DateTime is immutable, all the operations return
	// new values, so it can be shared between go-routines freely.
	DateTime struct {
		ticks int64
	}

	// DayOfWeek specifies the day of the week, 0 is Sunday
	DayOfWeek int
)

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

const (
	maxMonths = 120000
	maxYears  = 10000
)

var (
	MinValue = DateTime{tick.MinTicks}
	MaxValue = DateTime{tick.MaxTicks}
)

func (d DayOfWeek) String() string {
	return dtformat.WeekdayName(int(d))
}

// New returns the midnight of the date provided. ErrOutOfRange is returned if
// the year, the month or the day are not valid.
func New(year, month, day int) (DateTime, error) {
	t, err := tick.DateToTicks(year, month, day)
	if err != nil {
		return MinValue, err
	}
	return DateTime{t}, nil
}

// NewTime returns the DateTime for the date and the time of the day provided
func NewTime(year, month, day, hour, minute, second int) (DateTime, error) {
	return NewTimeMs(year, month, day, hour, minute, second, 0)
}

// NewTimeMs returns the DateTime for the date, the time of the day and the
// millisecond provided. The millisecond must be in [0..1000)
func NewTimeMs(year, month, day, hour, minute, second, millisecond int) (DateTime, error) {
	if millisecond < 0 || millisecond >= 1000 {
		return MinValue, errors.Wrapf(tick.ErrOutOfRange, "millisecond=%d must be in [0..1000)", millisecond)
	}

	dt, err := tick.DateToTicks(year, month, day)
	if err != nil {
		return MinValue, err
	}

	tt, err := tick.TimeToTicks(hour, minute, second)
	if err != nil {
		return MinValue, err
	}

	return DateTime{dt + tt + int64(millisecond)*tick.TicksPerMillisecond}, nil
}

// FromTicks returns the DateTime for the ticks provided. ErrOutOfRange is
// returned if ticks is not in [tick.MinTicks..tick.MaxTicks]
func FromTicks(ticks int64) (DateTime, error) {
	if err := tick.CheckTicks(ticks); err != nil {
		return MinValue, err
	}
	return DateTime{ticks}, nil
}

// FromTime returns the DateTime with calendar fields of t read in t's
// location. The precision is truncated to milliseconds.
func FromTime(t time.Time) (DateTime, error) {
	return NewTimeMs(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(time.Millisecond))
}

// FromUnixMilli returns the DateTime which is ms milliseconds after
// 1970-01-01 00:00:00
func FromUnixMilli(ms int64) (DateTime, error) {
	if ms < -tick.UnixEpochTicks/tick.TicksPerMillisecond || ms > (tick.MaxTicks-tick.UnixEpochTicks)/tick.TicksPerMillisecond {
		return MinValue, errors.Wrapf(tick.ErrOutOfRange, "unix milliseconds=%d", ms)
	}
	return DateTime{tick.UnixEpochTicks + ms*tick.TicksPerMillisecond}, nil
}

// Now returns the current DateTime read from the clock
func Now(clock Clock) (DateTime, error) {
	return FromTime(clock.Now())
}

// Today returns the midnight of the current date read from the clock
func Today(clock Clock) (DateTime, error) {
	dt, err := Now(clock)
	if err != nil {
		return dt, err
	}
	return dt.Date(), nil
}

// dateParts decomposes the ticks into the year, month, day and day of year.
// The days number is peeled by 400, 100, 4 and 1 year periods. The last
// 100-year and 1-year periods are one day longer, so their counts are capped
// by 3.
func (dt DateTime) dateParts() (year, month, day, dayOfYear int) {
	n := dt.ticks / tick.TicksPerDay

	y400 := n / tick.DaysPer400Years
	n -= y400 * tick.DaysPer400Years

	y100 := n / tick.DaysPer100Years
	if y100 == 4 {
		y100 = 3
	}
	n -= y100 * tick.DaysPer100Years

	y4 := n / tick.DaysPer4Years
	n -= y4 * tick.DaysPer4Years

	y1 := n / tick.DaysPerYear
	if y1 == 4 {
		y1 = 3
	}
	n -= y1 * tick.DaysPerYear

	year = int(y400*400+y100*100+y4*4+y1) + 1
	dayOfYear = int(n) + 1

	leap := y1 == 3 && (y4 != 24 || y100 == 3)
	days := tick.DaysToMonth(leap)
	month = 1
	for int(n) >= days[month] {
		month++
	}
	day = int(n) - days[month-1] + 1
	return
}

// Year returns the year in [1..9999]
func (dt DateTime) Year() int {
	y, _, _, _ := dt.dateParts()
	return y
}

// Month returns the month in [1..12]
func (dt DateTime) Month() int {
	_, m, _, _ := dt.dateParts()
	return m
}

// Day returns the day of the month in [1..31]
func (dt DateTime) Day() int {
	_, _, d, _ := dt.dateParts()
	return d
}

// DayOfYear returns the day of the year in [1..366]
func (dt DateTime) DayOfYear() int {
	_, _, _, yd := dt.dateParts()
	return yd
}

func (dt DateTime) DayOfWeek() DayOfWeek {
	return DayOfWeek((dt.ticks/tick.TicksPerDay + 1) % 7)
}

// Weekday returns the day of week as int, 0 is Sunday
func (dt DateTime) Weekday() int {
	return int(dt.DayOfWeek())
}

func (dt DateTime) Hour() int {
	return int(dt.ticks / tick.TicksPerHour % 24)
}

func (dt DateTime) Minute() int {
	return int(dt.ticks / tick.TicksPerMinute % 60)
}

func (dt DateTime) Second() int {
	return int(dt.ticks / tick.TicksPerSecond % 60)
}

func (dt DateTime) Millisecond() int {
	return int(dt.ticks / tick.TicksPerMillisecond % 1000)
}

// Ticks returns number of 100-nanosecond intervals since 0001-01-01 00:00:00
func (dt DateTime) Ticks() int64 {
	return dt.ticks
}

// ToTicks is same as Ticks
func (dt DateTime) ToTicks() int64 {
	return dt.ticks
}

// Date returns the midnight of the dt date
func (dt DateTime) Date() DateTime {
	return DateTime{dt.ticks - dt.ticks%tick.TicksPerDay}
}

// TimeOfDay returns the interval elapsed since the midnight
func (dt DateTime) TimeOfDay() timespan.TimeSpan {
	return timespan.New(dt.ticks % tick.TicksPerDay)
}

// AddTicks returns dt shifted by value ticks. ErrOutOfRange is returned if
// the result is out of [MinValue..MaxValue]
func (dt DateTime) AddTicks(value int64) (DateTime, error) {
	if value > tick.MaxTicks-dt.ticks || value < tick.MinTicks-dt.ticks {
		return dt, errors.Wrapf(tick.ErrOutOfRange, "could not add %d ticks to %d", value, dt.ticks)
	}
	return DateTime{dt.ticks + value}, nil
}

// add adds the fractional number of units of scale milliseconds, the result
// is rounded to the nearest millisecond.
func (dt DateTime) add(value float64, scale int64) (DateTime, error) {
	if math.IsNaN(value) {
		return dt, errors.Wrapf(tick.ErrOutOfRange, "NaN could not be added")
	}
	millis := value * float64(scale)
	if millis >= 0 {
		millis += 0.5
	} else {
		millis -= 0.5
	}
	if millis <= -float64(tick.MaxMillis) || millis >= float64(tick.MaxMillis) {
		return dt, errors.Wrapf(tick.ErrOutOfRange, "%f milliseconds could not be added", value*float64(scale))
	}
	return dt.AddTicks(int64(millis) * tick.TicksPerMillisecond)
}

// AddDays adds the fractional number of days, rounded to the nearest
// millisecond. The value could be negative.
func (dt DateTime) AddDays(value float64) (DateTime, error) {
	return dt.add(value, tick.MillisPerDay)
}

func (dt DateTime) AddHours(value float64) (DateTime, error) {
	return dt.add(value, tick.MillisPerHour)
}

func (dt DateTime) AddMinutes(value float64) (DateTime, error) {
	return dt.add(value, tick.MillisPerMinute)
}

func (dt DateTime) AddSeconds(value float64) (DateTime, error) {
	return dt.add(value, tick.MillisPerSecond)
}

// AddMilliseconds adds the number of milliseconds rounded to the nearest
// integer
func (dt DateTime) AddMilliseconds(value float64) (DateTime, error) {
	return dt.add(value, 1)
}

// AddMonths adds the number of months to dt. The day is moved down to the
// last day of the resulting month if the month is shorter. The time of the
// day is kept. The months must be in [-120000..120000].
func (dt DateTime) AddMonths(months int) (DateTime, error) {
	if months < -maxMonths || months > maxMonths {
		return dt, errors.Wrapf(tick.ErrOutOfRange, "months=%d must be in [%d..%d]", months, -maxMonths, maxMonths)
	}

	y, m, d, _ := dt.dateParts()
	i := m - 1 + months
	if i >= 0 {
		m = i%12 + 1
		y += i / 12
	} else {
		m = 12 + (i+1)%12
		y += (i - 11) / 12
	}
	if y < tick.MinYear || y > tick.MaxYear {
		return dt, errors.Wrapf(tick.ErrOutOfRange, "the year %d of the result must be in [%d..%d]", y, tick.MinYear, tick.MaxYear)
	}

	dim, err := tick.DaysInMonth(y, m)
	if err != nil {
		return dt, err
	}
	if d > dim {
		d = dim
	}

	t, err := tick.DateToTicks(y, m, d)
	if err != nil {
		return dt, err
	}
	return DateTime{t + dt.ticks%tick.TicksPerDay}, nil
}

// AddYears adds the number of years to dt. February 29 becomes February 28
// if the resulting year is not leap. The years must be in [-10000..10000].
func (dt DateTime) AddYears(years int) (DateTime, error) {
	if years < -maxYears || years > maxYears {
		return dt, errors.Wrapf(tick.ErrOutOfRange, "years=%d must be in [%d..%d]", years, -maxYears, maxYears)
	}
	return dt.AddMonths(years * 12)
}

// Add returns dt shifted by the interval
func (dt DateTime) Add(ts timespan.TimeSpan) (DateTime, error) {
	return dt.AddTicks(ts.Ticks())
}

// Subtract returns the interval between other and dt, it is positive if dt
// is after other.
func (dt DateTime) Subtract(other DateTime) timespan.TimeSpan {
	return timespan.New(dt.ticks - other.ticks)
}

// SubtractTime returns dt shifted back by the interval. ErrOutOfRange is
// returned if the result is out of [MinValue..MaxValue]
func (dt DateTime) SubtractTime(ts timespan.TimeSpan) (DateTime, error) {
	v := ts.Ticks()
	if v > dt.ticks-tick.MinTicks || v < dt.ticks-tick.MaxTicks {
		return dt, errors.Wrapf(tick.ErrOutOfRange, "could not subtract %d ticks from %d", v, dt.ticks)
	}
	return DateTime{dt.ticks - v}, nil
}

// DaysBetween returns the absolute difference between dt and other in
// fractional days
func (dt DateTime) DaysBetween(other DateTime) float64 {
	return float64(gorivets.AbsInt64(dt.ticks-other.ticks)) / float64(tick.TicksPerDay)
}

func (dt DateTime) Equals(other DateTime) bool {
	return dt.ticks == other.ticks
}

// EqualsTime normalizes t by FromTime and compares the result with dt. A time
// out of the DateTime range is never equal.
func (dt DateTime) EqualsTime(t time.Time) bool {
	other, err := FromTime(t)
	return err == nil && dt.ticks == other.ticks
}

// CompareTo returns -1 if dt is earlier than other, 1 if it is later and 0
// if they are the same
func (dt DateTime) CompareTo(other DateTime) int {
	switch {
	case dt.ticks < other.ticks:
		return -1
	case dt.ticks > other.ticks:
		return 1
	}
	return 0
}

func (dt DateTime) Before(other DateTime) bool {
	return dt.ticks < other.ticks
}

func (dt DateTime) After(other DateTime) bool {
	return dt.ticks > other.ticks
}

// ToTime returns time.Time with calendar fields of dt in the location loc.
// The nil loc is treated as UTC.
func (dt DateTime) ToTime(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d, _ := dt.dateParts()
	nanos := int(dt.ticks%tick.TicksPerSecond) * 100
	return time.Date(y, time.Month(m), d, dt.Hour(), dt.Minute(), dt.Second(), nanos, loc)
}

// UnixMilli returns number of milliseconds elapsed since 1970-01-01 00:00:00,
// the result is negative for earlier dates.
func (dt DateTime) UnixMilli() int64 {
	return (dt.ticks - tick.UnixEpochTicks) / tick.TicksPerMillisecond
}

// Format formats dt in accordance with the pattern, see dtformat.NewFormatter
func (dt DateTime) Format(pattern string) string {
	return dtformat.Format(dt, pattern)
}

// String returns dt in dtformat.DefaultPattern
func (dt DateTime) String() string {
	return dt.Format(dtformat.DefaultPattern)
}

// EncodeMsgpack writes the DateTime as its ticks number
func (dt DateTime) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeInt64(dt.ticks)
}

// DecodeMsgpack reads the DateTime written by EncodeMsgpack
func (dt *DateTime) DecodeMsgpack(dec *msgpack.Decoder) error {
	t, err := dec.DecodeInt64()
	if err != nil {
		return errors.Wrapf(err, "could not decode DateTime")
	}
	if err = tick.CheckTicks(t); err != nil {
		return err
	}
	dt.ticks = t
	return nil
}
