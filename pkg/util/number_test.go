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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadInt(t *testing.T) {
	assert.Equal(t, "0", PadInt(0, 1))
	assert.Equal(t, "0", PadInt(0, 0))
	assert.Equal(t, "00", PadInt(0, 2))
	assert.Equal(t, "5", PadInt(5, 1))
	assert.Equal(t, "05", PadInt(5, 2))
	assert.Equal(t, "20", PadInt(20, 2))

	assert.Equal(t, "001", PadInt(1, 3))
	assert.Equal(t, "010", PadInt(10, 3))
	assert.Equal(t, "-007", PadInt(-7, 3))

	assert.Equal(t, "2019", PadInt(2019, 2))
	assert.Equal(t, "2019", PadInt(2019, 4))
	assert.Equal(t, "0001", PadInt(1, 4))
	assert.Equal(t, "02019", PadInt(2019, 5))
}

func TestFormatTicks(t *testing.T) {
	assert.Equal(t, "0", FormatTicks(0))
	assert.Equal(t, "999", FormatTicks(999))
	assert.Equal(t, "-999", FormatTicks(-999))
	assert.Equal(t, "1,000,000", FormatTicks(1000000))
	assert.Equal(t, "-1,234", FormatTicks(-1234))
}

func TestToJsonStr(t *testing.T) {
	assert.Equal(t, `{"a":"<b>"}`, ToJsonStr(map[string]string{"a": "<b>"}))
	assert.Equal(t, `[1,2]`, ToJsonStr([]int{1, 2}))
	assert.Equal(t, "", ToJsonStr(func() {}))
}
