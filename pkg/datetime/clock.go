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

import "time"

type (
	// Clock is the source of the current time
	Clock interface {
		Now() time.Time
	}

	// SystemClock reads the wall clock of the process in local time or in UTC
	SystemClock struct {
		UTC bool
	}

	// FixedClock always returns the same time
	FixedClock struct {
		T time.Time
	}
)

func (sc SystemClock) Now() time.Time {
	if sc.UTC {
		return time.Now().UTC()
	}
	return time.Now()
}

func (fc FixedClock) Now() time.Time {
	return fc.T
}
