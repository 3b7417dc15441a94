// Copyright 2018 The logrange Authors
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

package util

import (
	"strconv"

	"github.com/logrange/range/pkg/utils/strutil"
)

// PadInt returns decimal representation of n, left-padded by zeros up to
// width digits. The sign, if any, is placed before the zeros. Numbers which
// already have width or more digits are returned as is.
// 		Examples:
//			PadInt(5, 2) returns 05
//			PadInt(2019, 2) returns 2019
//			PadInt(-7, 3) returns -007
func PadInt(n, width int) string {
	if width <= strutil.NumOfDigits(n) {
		return strconv.Itoa(n)
	}
	return strutil.NumLexStr(n, width)
}
