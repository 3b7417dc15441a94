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

package dtexpr

import (
	"math"
	"sort"

	"github.com/logrange/chrono/pkg/datetime"
	"github.com/logrange/chrono/pkg/tick"
	"github.com/logrange/chrono/pkg/timespan"
	"github.com/pkg/errors"
)

// functions contains the top-level functions. The names are lower-cased,
// the lookup is case-insensitive.
var functions = map[string]function{
	"now":         {0, 0, nowFn},
	"today":       {0, 0, todayFn},
	"date":        {3, 7, dateFn},
	"ticks":       {1, 1, ticksFn},
	"unix":        {1, 1, unixFn},
	"span":        {1, 5, spanFn},
	"days":        {1, 1, spanOf(timespan.FromDays)},
	"hours":       {1, 1, spanOf(timespan.FromHours)},
	"minutes":     {1, 1, spanOf(timespan.FromMinutes)},
	"seconds":     {1, 1, spanOf(timespan.FromSeconds)},
	"millis":      {1, 1, spanOf(timespan.FromMilliseconds)},
	"leap":        {1, 1, leapFn},
	"daysinmonth": {2, 2, daysInMonthFn},
	"compare":     {2, 2, compareFn},
}

var dtMethods = map[string]dtMethod{
	"addticks":        {1, 1, addTicksFn},
	"adddays":         {1, 1, addFloatOf(datetime.DateTime.AddDays)},
	"addhours":        {1, 1, addFloatOf(datetime.DateTime.AddHours)},
	"addminutes":      {1, 1, addFloatOf(datetime.DateTime.AddMinutes)},
	"addseconds":      {1, 1, addFloatOf(datetime.DateTime.AddSeconds)},
	"addmilliseconds": {1, 1, addFloatOf(datetime.DateTime.AddMilliseconds)},
	"addmonths":       {1, 1, addIntOf(datetime.DateTime.AddMonths)},
	"addyears":        {1, 1, addIntOf(datetime.DateTime.AddYears)},
	"year":            {0, 0, intOf(datetime.DateTime.Year)},
	"month":           {0, 0, intOf(datetime.DateTime.Month)},
	"day":             {0, 0, intOf(datetime.DateTime.Day)},
	"dayofyear":       {0, 0, intOf(datetime.DateTime.DayOfYear)},
	"hour":            {0, 0, intOf(datetime.DateTime.Hour)},
	"minute":          {0, 0, intOf(datetime.DateTime.Minute)},
	"second":          {0, 0, intOf(datetime.DateTime.Second)},
	"millisecond":     {0, 0, intOf(datetime.DateTime.Millisecond)},
	"dayofweek":       {0, 0, dayOfWeekFn},
	"ticks":           {0, 0, dtTicksFn},
	"unixmilli":       {0, 0, unixMilliFn},
	"date":            {0, 0, dateOfFn},
	"timeofday":       {0, 0, timeOfDayFn},
	"format":          {0, 1, formatFn},
}

var tsMethods = map[string]tsMethod{
	"days":              {tsIntOf(timespan.TimeSpan.Days)},
	"hours":             {tsIntOf(timespan.TimeSpan.Hours)},
	"minutes":           {tsIntOf(timespan.TimeSpan.Minutes)},
	"seconds":           {tsIntOf(timespan.TimeSpan.Seconds)},
	"milliseconds":      {tsIntOf(timespan.TimeSpan.Milliseconds)},
	"totaldays":         {tsFloatOf(timespan.TimeSpan.TotalDays)},
	"totalhours":        {tsFloatOf(timespan.TimeSpan.TotalHours)},
	"totalminutes":      {tsFloatOf(timespan.TimeSpan.TotalMinutes)},
	"totalseconds":      {tsFloatOf(timespan.TimeSpan.TotalSeconds)},
	"totalmilliseconds": {tsFloatOf(timespan.TimeSpan.TotalMilliseconds)},
	"ticks":             {func(ts timespan.TimeSpan) (interface{}, error) { return ts.Ticks(), nil }},
	"duration":          {func(ts timespan.TimeSpan) (interface{}, error) { return ts.Duration() }},
	"negate":            {func(ts timespan.TimeSpan) (interface{}, error) { return ts.Negate() }},
}

// FunctionNames returns sorted names of the functions
func FunctionNames() []string {
	return sortedKeys(len(functions), func(add func(string)) {
		for n := range functions {
			add(n)
		}
	})
}

// DateTimeMethods returns sorted names of the DateTime methods
func DateTimeMethods() []string {
	return sortedKeys(len(dtMethods), func(add func(string)) {
		for n := range dtMethods {
			add(n)
		}
	})
}

// TimeSpanMethods returns sorted names of the TimeSpan methods
func TimeSpanMethods() []string {
	return sortedKeys(len(tsMethods), func(add func(string)) {
		for n := range tsMethods {
			add(n)
		}
	})
}

func sortedKeys(n int, walk func(add func(string))) []string {
	res := make([]string, 0, n)
	walk(func(s string) { res = append(res, s) })
	sort.Strings(res)
	return res
}

//===================== functions =====================

func nowFn(e *Evaluator, _ []interface{}) (interface{}, error) {
	return datetime.Now(e.Clock)
}

func todayFn(e *Evaluator, _ []interface{}) (interface{}, error) {
	return datetime.Today(e.Clock)
}

// dateFn accepts date(y, m, d), date(y, m, d, h, mi, s) and
// date(y, m, d, h, mi, s, ms)
func dateFn(_ *Evaluator, args []interface{}) (interface{}, error) {
	if len(args) != 3 && len(args) != 6 && len(args) != 7 {
		return nil, errors.Errorf("date() expects 3, 6 or 7 arguments, but %d provided", len(args))
	}
	var f [7]int
	for i := range args {
		v, err := argInt(args, i)
		if err != nil {
			return nil, err
		}
		f[i] = v
	}
	return datetime.NewTimeMs(f[0], f[1], f[2], f[3], f[4], f[5], f[6])
}

func ticksFn(_ *Evaluator, args []interface{}) (interface{}, error) {
	t, err := argInt64(args, 0)
	if err != nil {
		return nil, err
	}
	return datetime.FromTicks(t)
}

func unixFn(_ *Evaluator, args []interface{}) (interface{}, error) {
	ms, err := argInt64(args, 0)
	if err != nil {
		return nil, err
	}
	return datetime.FromUnixMilli(ms)
}

// spanFn accepts span(ticks), span(h, m, s), span(d, h, m, s) and
// span(d, h, m, s, ms)
func spanFn(_ *Evaluator, args []interface{}) (interface{}, error) {
	if len(args) == 1 {
		if s, ok := args[0].(string); ok {
			return timespan.Parse(s)
		}
		t, err := argInt64(args, 0)
		if err != nil {
			return nil, err
		}
		return timespan.New(t), nil
	}

	if len(args) == 2 {
		return nil, errors.Errorf("span() expects 1, 3, 4 or 5 arguments, but 2 provided")
	}

	var f [5]int
	for i := range args {
		v, err := argInt(args, i)
		if err != nil {
			return nil, err
		}
		f[i] = v
	}

	switch len(args) {
	case 3:
		return timespan.FromHMS(f[0], f[1], f[2])
	case 4:
		return timespan.FromDHMS(f[0], f[1], f[2], f[3])
	}
	return timespan.FromDHMSM(f[0], f[1], f[2], f[3], f[4])
}

func spanOf(from func(float64) (timespan.TimeSpan, error)) func(*Evaluator, []interface{}) (interface{}, error) {
	return func(_ *Evaluator, args []interface{}) (interface{}, error) {
		v, err := argFloat(args, 0)
		if err != nil {
			return nil, err
		}
		return from(v)
	}
}

func leapFn(_ *Evaluator, args []interface{}) (interface{}, error) {
	y, err := argInt(args, 0)
	if err != nil {
		return nil, err
	}
	return tick.IsLeapYear(y)
}

func daysInMonthFn(_ *Evaluator, args []interface{}) (interface{}, error) {
	y, err := argInt(args, 0)
	if err != nil {
		return nil, err
	}
	m, err := argInt(args, 1)
	if err != nil {
		return nil, err
	}
	d, err := tick.DaysInMonth(y, m)
	if err != nil {
		return nil, err
	}
	return int64(d), nil
}

// compareFn compares two DateTimes, two TimeSpans or two numbers, it
// returns -1, 0 or 1
func compareFn(_ *Evaluator, args []interface{}) (interface{}, error) {
	switch l := args[0].(type) {
	case datetime.DateTime:
		if r, ok := args[1].(datetime.DateTime); ok {
			return int64(l.CompareTo(r)), nil
		}
	case timespan.TimeSpan:
		if r, ok := args[1].(timespan.TimeSpan); ok {
			return int64(l.CompareTo(r)), nil
		}
	case int64, float64:
		lf, _ := argFloat(args, 0)
		rf, err := argFloat(args, 1)
		if err != nil {
			return nil, err
		}
		switch {
		case lf < rf:
			return int64(-1), nil
		case lf > rf:
			return int64(1), nil
		}
		return int64(0), nil
	}
	return nil, errors.Errorf("could not compare %s and %s", TypeName(args[0]), TypeName(args[1]))
}

//===================== DateTime methods =====================

func addTicksFn(_ *Evaluator, dt datetime.DateTime, args []interface{}) (interface{}, error) {
	v, err := argInt64(args, 0)
	if err != nil {
		return nil, err
	}
	return dt.AddTicks(v)
}

func addFloatOf(add func(datetime.DateTime, float64) (datetime.DateTime, error)) func(*Evaluator, datetime.DateTime, []interface{}) (interface{}, error) {
	return func(_ *Evaluator, dt datetime.DateTime, args []interface{}) (interface{}, error) {
		v, err := argFloat(args, 0)
		if err != nil {
			return nil, err
		}
		return add(dt, v)
	}
}

func addIntOf(add func(datetime.DateTime, int) (datetime.DateTime, error)) func(*Evaluator, datetime.DateTime, []interface{}) (interface{}, error) {
	return func(_ *Evaluator, dt datetime.DateTime, args []interface{}) (interface{}, error) {
		v, err := argInt(args, 0)
		if err != nil {
			return nil, err
		}
		return add(dt, v)
	}
}

func intOf(get func(datetime.DateTime) int) func(*Evaluator, datetime.DateTime, []interface{}) (interface{}, error) {
	return func(_ *Evaluator, dt datetime.DateTime, _ []interface{}) (interface{}, error) {
		return int64(get(dt)), nil
	}
}

func dayOfWeekFn(_ *Evaluator, dt datetime.DateTime, _ []interface{}) (interface{}, error) {
	return dt.DayOfWeek(), nil
}

func dtTicksFn(_ *Evaluator, dt datetime.DateTime, _ []interface{}) (interface{}, error) {
	return dt.Ticks(), nil
}

func unixMilliFn(_ *Evaluator, dt datetime.DateTime, _ []interface{}) (interface{}, error) {
	return dt.UnixMilli(), nil
}

func dateOfFn(_ *Evaluator, dt datetime.DateTime, _ []interface{}) (interface{}, error) {
	return dt.Date(), nil
}

func timeOfDayFn(_ *Evaluator, dt datetime.DateTime, _ []interface{}) (interface{}, error) {
	return dt.TimeOfDay(), nil
}

func formatFn(e *Evaluator, dt datetime.DateTime, args []interface{}) (interface{}, error) {
	if len(args) == 0 {
		return dt.Format(e.DefaultPattern()), nil
	}
	p, ok := args[0].(string)
	if !ok {
		return nil, errors.Errorf("format() expects a pattern string, but %s provided", TypeName(args[0]))
	}
	return dt.Format(p), nil
}

//===================== TimeSpan methods =====================

func tsIntOf(get func(timespan.TimeSpan) int) func(timespan.TimeSpan) (interface{}, error) {
	return func(ts timespan.TimeSpan) (interface{}, error) {
		return int64(get(ts)), nil
	}
}

func tsFloatOf(get func(timespan.TimeSpan) float64) func(timespan.TimeSpan) (interface{}, error) {
	return func(ts timespan.TimeSpan) (interface{}, error) {
		return get(ts), nil
	}
}

//===================== arguments =====================

func argFloat(args []interface{}, i int) (float64, error) {
	switch v := args[i].(type) {
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	}
	return 0, errors.Errorf("argument #%d must be a number, but it is %s", i+1, TypeName(args[i]))
}

func argInt64(args []interface{}, i int) (int64, error) {
	switch v := args[i].(type) {
	case int64:
		return v, nil
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
			return int64(v), nil
		}
		return 0, errors.Errorf("argument #%d must be an integer, but it is %v", i+1, v)
	}
	return 0, errors.Errorf("argument #%d must be an integer, but it is %s", i+1, TypeName(args[i]))
}

func argInt(args []interface{}, i int) (int, error) {
	v, err := argInt64(args, i)
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, errors.Wrapf(tick.ErrOutOfRange, "argument #%d=%d", i+1, v)
	}
	return int(v), nil
}
