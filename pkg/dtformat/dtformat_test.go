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
	"testing"

	"github.com/stretchr/testify/assert"
)

type testCalendar struct {
	year, month, day, weekday, hour, minute, second int
}

func (tc testCalendar) Year() int    { return tc.year }
func (tc testCalendar) Month() int   { return tc.month }
func (tc testCalendar) Day() int     { return tc.day }
func (tc testCalendar) Weekday() int { return tc.weekday }
func (tc testCalendar) Hour() int    { return tc.hour }
func (tc testCalendar) Minute() int  { return tc.minute }
func (tc testCalendar) Second() int  { return tc.second }

// Monday, Feb 18 2019 05:20:01
var feb18 = testCalendar{2019, 2, 18, 1, 5, 20, 1}

func BenchmarkFormatter(b *testing.B) {
	f := NewFormatter("dddd, MMM dd yyyy hh:mm:ss tt")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Format(feb18)
	}
}

func TestFormatScenarios(t *testing.T) {
	testFormat(t, feb18, "", "2019-02-18T05:20:01")
	testFormat(t, feb18, DefaultPattern, "2019-02-18T05:20:01")
	testFormat(t, feb18, "yyyy-MM-dd", "2019-02-18")
	testFormat(t, feb18, "MM/dd/yyyy h:mm tt", "02/18/2019 5:20 AM")
	testFormat(t, feb18, "dddd, MMM dd yyyy hh:mm tt", "Monday, Feb 18 2019 05:20 AM")
	testFormat(t, feb18, "'Day Of Week' dddd", "Day Of Week Monday")
}

func TestFormatDirectives(t *testing.T) {
	testFormat(t, feb18, "h|hh|hh*", "5|05|05")
	testFormat(t, feb18, "H|HH|HH*", "5|05|05")
	testFormat(t, feb18, "m|mm|mm*", "20|20|20")
	testFormat(t, feb18, "s|ss|ss*", "1|01|01")
	testFormat(t, feb18, "t|tt|tt*", "A|AM|AM")
	testFormat(t, feb18, "d|dd|ddd|dddd|dddd*", "18|18|Mon|Monday|Monday")
	testFormat(t, feb18, "M|MM|MMM|MMMM|MMMM*", "2|02|Feb|February|February")
	testFormat(t, feb18, "y|yy|yyyy|yyyyy|yyyy*", "2019|2019|2019|02019|2019")

	evening := testCalendar{7, 12, 3, 6, 23, 4, 9}
	testFormat(t, evening, "h:mm:ss tt", "11:04:09 PM")
	testFormat(t, evening, "HH:m:s t", "23:4:9 P")
	testFormat(t, evening, "yyyy/M/d ddd MMMM", "0007/12/3 Sat December")

	midnight := testCalendar{2000, 1, 1, 6, 0, 0, 0}
	testFormat(t, midnight, "h tt", "12 AM")
	noon := testCalendar{2000, 1, 1, 6, 12, 0, 0}
	testFormat(t, noon, "hh tt", "12 PM")
}

func TestFormatLiterals(t *testing.T) {
	testFormat(t, feb18, "", "2019-02-18T05:20:01")
	testFormat(t, feb18, "ABC", "ABC")
	testFormat(t, feb18, "'yyyy'yyyy", "yyyy2019")
	testFormat(t, feb18, "''", "")
	testFormat(t, feb18, "'unterminated dd", "unterminated dd")
	testFormat(t, feb18, "HH'h'mm", "05h20")
	testFormat(t, feb18, "*", "*")
}

func TestFormatterPattern(t *testing.T) {
	assert.Equal(t, DefaultPattern, NewFormatter("").Pattern())
	assert.Equal(t, "yyyy", NewFormatter("yyyy").Pattern())
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Sunday", WeekdayName(0))
	assert.Equal(t, "Saturday", WeekdayName(6))
	assert.Equal(t, "", WeekdayName(7))
	assert.Equal(t, "January", MonthName(1))
	assert.Equal(t, "December", MonthName(12))
	assert.Equal(t, "", MonthName(0))
}

func testFormat(t *testing.T, c Calendar, pattern, exp string) {
	if res := Format(c, pattern); res != exp {
		t.Fatal("Expected ", exp, " but really got ", res, " for the pattern ", pattern)
	}
}
