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

package timespan

import (
	"math"
	"strconv"
	"strings"

	"github.com/jrivets/gorivets"
	"github.com/logrange/chrono/pkg/tick"
	"github.com/logrange/chrono/pkg/util"
	"github.com/pkg/errors"
	"gopkg.in/vmihailenco/msgpack.v2"
)

type (
	// TimeSpan represents a signed time interval stored as a number of ticks
	// (100-nanosecond units). TimeSpan is immutable, all the operations return
	// new values.
	TimeSpan struct {
		ticks int64
	}
)

const (
	millisecondsPerTick = 1.0 / float64(tick.TicksPerMillisecond)
	secondsPerTick      = 1.0 / float64(tick.TicksPerSecond)
	minutesPerTick      = 1.0 / float64(tick.TicksPerMinute)
	hoursPerTick        = 1.0 / float64(tick.TicksPerHour)
	daysPerTick         = 1.0 / float64(tick.TicksPerDay)

	// MaxMilliseconds and MinMilliseconds are bounds of the intervals
	// expressed in milliseconds
	MaxMilliseconds = math.MaxInt64 / tick.TicksPerMillisecond
	MinMilliseconds = math.MinInt64 / tick.TicksPerMillisecond
)

var (
	Zero     = TimeSpan{}
	MaxValue = TimeSpan{math.MaxInt64}
	MinValue = TimeSpan{math.MinInt64}
)

// New returns the TimeSpan of ticks provided
func New(ticks int64) TimeSpan {
	return TimeSpan{ticks}
}

// FromHMS returns the TimeSpan of hours, minutes and seconds provided
func FromHMS(hours, minutes, seconds int) (TimeSpan, error) {
	return FromDHMSM(0, hours, minutes, seconds, 0)
}

// FromDHMS returns the TimeSpan of days, hours, minutes and seconds provided
func FromDHMS(days, hours, minutes, seconds int) (TimeSpan, error) {
	return FromDHMSM(days, hours, minutes, seconds, 0)
}

// FromDHMSM returns the TimeSpan of days, hours, minutes, seconds and
// milliseconds provided. The components could be negative or exceed their
// natural period. ErrIntervalTooLong is returned if the total number of
// milliseconds is out of [MinMilliseconds..MaxMilliseconds]
func FromDHMSM(days, hours, minutes, seconds, milliseconds int) (TimeSpan, error) {
	fms := (((float64(days)*24+float64(hours))*60+float64(minutes))*60+float64(seconds))*1000 + float64(milliseconds)
	if fms > float64(MaxMilliseconds) || fms < float64(MinMilliseconds) {
		return Zero, errors.Wrapf(tick.ErrIntervalTooLong, "%dd %dh %dm %ds %dms", days, hours, minutes, seconds, milliseconds)
	}

	// the result fits int64, so the wrapping arithmetic gives the exact value
	ms := (((int64(days)*24+int64(hours))*60+int64(minutes))*60+int64(seconds))*1000 + int64(milliseconds)
	return TimeSpan{ms * tick.TicksPerMillisecond}, nil
}

// FromDays returns the TimeSpan of the fractional number of days, rounded to
// the nearest millisecond.
func FromDays(value float64) (TimeSpan, error) {
	return interval(value, float64(tick.MillisPerDay))
}

// FromHours returns the TimeSpan of the fractional number of hours, rounded to
// the nearest millisecond.
func FromHours(value float64) (TimeSpan, error) {
	return interval(value, float64(tick.MillisPerHour))
}

// FromMinutes returns the TimeSpan of the fractional number of minutes,
// rounded to the nearest millisecond.
func FromMinutes(value float64) (TimeSpan, error) {
	return interval(value, float64(tick.MillisPerMinute))
}

// FromSeconds returns the TimeSpan of the fractional number of seconds,
// rounded to the nearest millisecond.
func FromSeconds(value float64) (TimeSpan, error) {
	return interval(value, float64(tick.MillisPerSecond))
}

// FromMilliseconds returns the TimeSpan of the number of milliseconds, rounded
// to the nearest integer.
func FromMilliseconds(value float64) (TimeSpan, error) {
	return interval(value, 1)
}

func interval(value, scale float64) (TimeSpan, error) {
	if math.IsNaN(value) {
		return Zero, errors.Wrapf(tick.ErrIntervalTooLong, "NaN is not an interval")
	}
	millis := value * scale
	if millis >= 0 {
		millis += 0.5
	} else {
		millis -= 0.5
	}
	if millis >= float64(MaxMilliseconds) || millis <= float64(MinMilliseconds) {
		return Zero, errors.Wrapf(tick.ErrIntervalTooLong, "%f milliseconds", value*scale)
	}
	return TimeSpan{int64(millis) * tick.TicksPerMillisecond}, nil
}

// Ticks returns number of ticks in the interval
func (ts TimeSpan) Ticks() int64 {
	return ts.ticks
}

// Days returns the days component of the interval
func (ts TimeSpan) Days() int {
	return int(ts.ticks / tick.TicksPerDay)
}

// Hours returns the hours component of the interval, it is in (-24..24)
func (ts TimeSpan) Hours() int {
	return int((ts.ticks / tick.TicksPerHour) % 24)
}

// Minutes returns the minutes component of the interval, it is in (-60..60)
func (ts TimeSpan) Minutes() int {
	return int((ts.ticks / tick.TicksPerMinute) % 60)
}

// Seconds returns the seconds component of the interval, it is in (-60..60)
func (ts TimeSpan) Seconds() int {
	return int((ts.ticks / tick.TicksPerSecond) % 60)
}

// Milliseconds returns the milliseconds component of the interval, it is
// in (-1000..1000)
func (ts TimeSpan) Milliseconds() int {
	return int((ts.ticks / tick.TicksPerMillisecond) % 1000)
}

func (ts TimeSpan) TotalDays() float64 {
	return float64(ts.ticks) * daysPerTick
}

func (ts TimeSpan) TotalHours() float64 {
	return float64(ts.ticks) * hoursPerTick
}

func (ts TimeSpan) TotalMinutes() float64 {
	return float64(ts.ticks) * minutesPerTick
}

func (ts TimeSpan) TotalSeconds() float64 {
	return float64(ts.ticks) * secondsPerTick
}

// TotalMilliseconds returns the interval in fractional milliseconds clamped
// to [MinMilliseconds..MaxMilliseconds]
func (ts TimeSpan) TotalMilliseconds() float64 {
	tmp := float64(ts.ticks) * millisecondsPerTick
	if tmp > float64(MaxMilliseconds) {
		return float64(MaxMilliseconds)
	}
	if tmp < float64(MinMilliseconds) {
		return float64(MinMilliseconds)
	}
	return tmp
}

// Add returns the sum of ts and other. ErrIntervalTooLong is returned if the
// result overflows.
func (ts TimeSpan) Add(other TimeSpan) (TimeSpan, error) {
	res := ts.ticks + other.ticks
	// overflow if signs of operands are identical and the result's sign is opposite
	if (ts.ticks < 0) == (other.ticks < 0) && (ts.ticks < 0) != (res < 0) {
		return Zero, errors.Wrapf(tick.ErrIntervalTooLong, "%d + %d", ts.ticks, other.ticks)
	}
	return TimeSpan{res}, nil
}

// Subtract returns the difference of ts and other. ErrIntervalTooLong is
// returned if the result overflows.
func (ts TimeSpan) Subtract(other TimeSpan) (TimeSpan, error) {
	res := ts.ticks - other.ticks
	// overflow if signs of operands are different and the result's sign
	// differs from the first operand sign
	if (ts.ticks < 0) != (other.ticks < 0) && (ts.ticks < 0) != (res < 0) {
		return Zero, errors.Wrapf(tick.ErrIntervalTooLong, "%d - %d", ts.ticks, other.ticks)
	}
	return TimeSpan{res}, nil
}

// Duration returns the absolute value of ts. ErrDurationTooLong is returned
// for MinValue.
func (ts TimeSpan) Duration() (TimeSpan, error) {
	if ts.ticks == MinValue.ticks {
		return Zero, errors.Wrapf(tick.ErrDurationTooLong, "%d has no absolute value", ts.ticks)
	}
	return TimeSpan{gorivets.AbsInt64(ts.ticks)}, nil
}

// Negate returns -ts. ErrIntervalTooLong is returned for MinValue.
func (ts TimeSpan) Negate() (TimeSpan, error) {
	if ts.ticks == MinValue.ticks {
		return Zero, errors.Wrapf(tick.ErrIntervalTooLong, "%d could not be negated", ts.ticks)
	}
	return TimeSpan{-ts.ticks}, nil
}

// CompareTo returns -1 if ts is shorter than other, 1 if it is longer and 0
// if they are equal
func (ts TimeSpan) CompareTo(other TimeSpan) int {
	switch {
	case ts.ticks < other.ticks:
		return -1
	case ts.ticks > other.ticks:
		return 1
	}
	return 0
}

func (ts TimeSpan) Equals(other TimeSpan) bool {
	return ts.ticks == other.ticks
}

// String returns the interval in [-][d.]hh:mm:ss[.fffffff] form
func (ts TimeSpan) String() string {
	var sb strings.Builder
	u := uint64(ts.ticks)
	if ts.ticks < 0 {
		sb.WriteByte('-')
		u = uint64(-(ts.ticks + 1)) + 1
	}

	t := int64(u % uint64(tick.TicksPerDay))
	if days := u / uint64(tick.TicksPerDay); days != 0 {
		sb.WriteString(strconv.FormatUint(days, 10))
		sb.WriteByte('.')
	}
	sb.WriteString(util.PadInt(int(t/tick.TicksPerHour), 2))
	sb.WriteByte(':')
	sb.WriteString(util.PadInt(int(t/tick.TicksPerMinute%60), 2))
	sb.WriteByte(':')
	sb.WriteString(util.PadInt(int(t/tick.TicksPerSecond%60), 2))
	if frac := t % tick.TicksPerSecond; frac != 0 {
		sb.WriteByte('.')
		sb.WriteString(util.PadInt(int(frac), 7))
	}
	return sb.String()
}

// EncodeMsgpack writes the interval as its ticks number
func (ts TimeSpan) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeInt64(ts.ticks)
}

// DecodeMsgpack reads the interval written by EncodeMsgpack
func (ts *TimeSpan) DecodeMsgpack(dec *msgpack.Decoder) error {
	t, err := dec.DecodeInt64()
	if err != nil {
		return errors.Wrapf(err, "could not decode TimeSpan")
	}
	ts.ticks = t
	return nil
}
