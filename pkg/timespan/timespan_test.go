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
	"testing"

	"github.com/logrange/chrono/pkg/tick"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gopkg.in/vmihailenco/msgpack.v2"
)

func TestFromComponents(t *testing.T) {
	ts, err := FromHMS(1, 2, 3)
	assert.Nil(t, err)
	assert.Equal(t, (3600+120+3)*tick.TicksPerSecond, ts.Ticks())

	ts, err = FromDHMS(2, 1, 2, 3)
	assert.Nil(t, err)
	assert.Equal(t, 2*tick.TicksPerDay+(3600+120+3)*tick.TicksPerSecond, ts.Ticks())

	ts, err = FromDHMSM(1, 2, 3, 4, 5)
	assert.Nil(t, err)
	assert.Equal(t, 1, ts.Days())
	assert.Equal(t, 2, ts.Hours())
	assert.Equal(t, 3, ts.Minutes())
	assert.Equal(t, 4, ts.Seconds())
	assert.Equal(t, 5, ts.Milliseconds())

	// components are normalized
	ts, err = FromHMS(0, 90, 0)
	assert.Nil(t, err)
	assert.Equal(t, 1, ts.Hours())
	assert.Equal(t, 30, ts.Minutes())
}

func TestFromComponentsTooLong(t *testing.T) {
	_, err := FromDHMSM(math.MaxInt32, math.MaxInt32, 0, 0, 0)
	if errors.Cause(err) != tick.ErrIntervalTooLong {
		t.Fatal("expecting ErrIntervalTooLong, but err=", err)
	}

	_, err = FromDHMS(-20000000, 0, 0, 0)
	if errors.Cause(err) != tick.ErrIntervalTooLong {
		t.Fatal("expecting ErrIntervalTooLong, but err=", err)
	}

	_, err = FromDHMS(10000000, 0, 0, 0)
	assert.Nil(t, err)
}

func TestNegativeComponents(t *testing.T) {
	ts, err := FromHours(-1.5)
	assert.Nil(t, err)
	assert.Equal(t, 0, ts.Days())
	assert.Equal(t, -1, ts.Hours())
	assert.Equal(t, -30, ts.Minutes())
	assert.Equal(t, 0, ts.Seconds())
	assert.InDelta(t, -1.5, ts.TotalHours(), 1e-9)
	assert.Equal(t, "-01:30:00", ts.String())
}

func TestFromFractions(t *testing.T) {
	ts, err := FromDays(1.5)
	assert.Nil(t, err)
	assert.Equal(t, 36*tick.TicksPerHour, ts.Ticks())
	assert.InDelta(t, 1.5, ts.TotalDays(), 1e-9)
	assert.InDelta(t, 36.0, ts.TotalHours(), 1e-9)
	assert.InDelta(t, 36.0*60, ts.TotalMinutes(), 1e-9)
	assert.InDelta(t, 36.0*3600, ts.TotalSeconds(), 1e-9)
	assert.InDelta(t, 36.0*3600*1000, ts.TotalMilliseconds(), 1e-6)

	ts, err = FromMinutes(1)
	assert.Nil(t, err)
	assert.Equal(t, tick.TicksPerMinute, ts.Ticks())

	ts, err = FromSeconds(0.0004)
	assert.Nil(t, err)
	assert.Equal(t, Zero, ts)

	ts, err = FromSeconds(0.0006)
	assert.Nil(t, err)
	assert.Equal(t, tick.TicksPerMillisecond, ts.Ticks())

	ts, err = FromMilliseconds(-2.5)
	assert.Nil(t, err)
	assert.Equal(t, -3*tick.TicksPerMillisecond, ts.Ticks())

	_, err = FromDays(math.MaxFloat64)
	assert.Equal(t, tick.ErrIntervalTooLong, errors.Cause(err))
	_, err = FromDays(math.NaN())
	assert.Equal(t, tick.ErrIntervalTooLong, errors.Cause(err))
}

func TestTotalMillisecondsClamp(t *testing.T) {
	assert.Equal(t, float64(MaxMilliseconds), MaxValue.TotalMilliseconds())
	assert.Equal(t, float64(MinMilliseconds), MinValue.TotalMilliseconds())
}

func TestAddSubtract(t *testing.T) {
	a := New(100)
	b := New(-30)

	res, err := a.Add(b)
	assert.Nil(t, err)
	assert.Equal(t, int64(70), res.Ticks())

	res, err = a.Subtract(b)
	assert.Nil(t, err)
	assert.Equal(t, int64(130), res.Ticks())

	res, err = MaxValue.Add(MinValue)
	assert.Nil(t, err)
	assert.Equal(t, int64(-1), res.Ticks())

	_, err = MaxValue.Add(New(1))
	assert.Equal(t, tick.ErrIntervalTooLong, errors.Cause(err))

	_, err = MinValue.Add(New(-1))
	assert.Equal(t, tick.ErrIntervalTooLong, errors.Cause(err))

	_, err = MinValue.Subtract(New(1))
	assert.Equal(t, tick.ErrIntervalTooLong, errors.Cause(err))

	_, err = Zero.Subtract(MinValue)
	assert.Equal(t, tick.ErrIntervalTooLong, errors.Cause(err))

	res, err = New(-1).Subtract(MinValue)
	assert.Nil(t, err)
	assert.Equal(t, MaxValue, res)
}

func TestDurationNegate(t *testing.T) {
	d, err := New(-25).Duration()
	assert.Nil(t, err)
	assert.Equal(t, New(25), d)

	d, err = New(25).Duration()
	assert.Nil(t, err)
	assert.Equal(t, New(25), d)

	_, err = MinValue.Duration()
	assert.Equal(t, tick.ErrDurationTooLong, errors.Cause(err))

	n, err := New(25).Negate()
	assert.Nil(t, err)
	assert.Equal(t, New(-25), n)

	_, err = MinValue.Negate()
	assert.Equal(t, tick.ErrIntervalTooLong, errors.Cause(err))
}

func TestCompareEquals(t *testing.T) {
	assert.Equal(t, -1, New(1).CompareTo(New(2)))
	assert.Equal(t, 1, New(2).CompareTo(New(1)))
	assert.Equal(t, 0, New(2).CompareTo(New(2)))
	assert.Equal(t, -1, MinValue.CompareTo(MaxValue))

	assert.True(t, New(7).Equals(New(7)))
	assert.False(t, New(7).Equals(New(-7)))
}

func TestString(t *testing.T) {
	assert.Equal(t, "00:00:00", Zero.String())

	ts, _ := FromDHMSM(1, 2, 3, 4, 5)
	assert.Equal(t, "1.02:03:04.0050000", ts.String())

	ts, _ = FromDHMS(-3, 0, 0, 1)
	assert.Equal(t, "-2.23:59:59", ts.String())

	assert.Equal(t, "10675199.02:48:05.4775807", MaxValue.String())
	assert.Equal(t, "-10675199.02:48:05.4775808", MinValue.String())
}

func TestMsgpack(t *testing.T) {
	ts, _ := FromDHMSM(1, 2, 3, 4, 5)
	buf, err := msgpack.Marshal(ts)
	if err != nil {
		t.Fatal("expecting no error, but err=", err)
	}

	var ts2 TimeSpan
	if err = msgpack.Unmarshal(buf, &ts2); err != nil {
		t.Fatal("expecting no error, but err=", err)
	}
	assert.Equal(t, ts, ts2)
}
