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
	"strconv"
	"strings"

	"github.com/kr/logfmt"
	"github.com/pkg/errors"
)

type (
	// spanFields collects the logfmt pairs of an interval description like
	// `days=1 hours=2 minutes=3 seconds=4 millis=5`
	spanFields map[string]int
)

var spanKeys = map[string]int{
	"days":    0,
	"hours":   1,
	"minutes": 2,
	"seconds": 3,
	"millis":  4,
}

func (sf spanFields) HandleLogfmt(key, val []byte) error {
	k := strings.ToLower(string(key))
	if _, ok := spanKeys[k]; !ok {
		return errors.Errorf("unknown interval component %q, expected one of days, hours, minutes, seconds or millis", string(key))
	}
	if _, ok := sf[k]; ok {
		return errors.Errorf("the interval component %q is met twice", k)
	}
	v, err := strconv.Atoi(string(val))
	if err != nil {
		return errors.Wrapf(err, "the value of %q must be an integer", k)
	}
	sf[k] = v
	return nil
}

// Parse returns the TimeSpan described in logfmt form, for example
// `days=1 hours=-2 millis=500`. Missing components are 0. An empty string
// is not a valid interval.
func Parse(s string) (TimeSpan, error) {
	if strings.TrimSpace(s) == "" {
		return Zero, errors.Errorf("empty interval description")
	}

	sf := make(spanFields)
	if err := logfmt.Unmarshal([]byte(s), &sf); err != nil {
		return Zero, errors.Wrapf(err, "could not parse interval %q", s)
	}

	var f [5]int
	for k, v := range sf {
		f[spanKeys[k]] = v
	}
	return FromDHMSM(f[0], f[1], f[2], f[3], f[4])
}
