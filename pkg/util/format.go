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

package util

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatTicks prints the ticks value with thousands separators, ex: 636,860,556,010,000,000
func FormatTicks(val int64) string {
	return humanize.Comma(val)
}

// ToJsonStr encodes v to a single line json string with no HTML escaping, so
// format patterns like '<b>' are printed as is. Returns empty string if v
// could not be encoded.
func ToJsonStr(v interface{}) string {
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return ""
	}
	return strings.TrimRight(buffer.String(), "\n")
}
