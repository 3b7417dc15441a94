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

package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/logrange/chrono/pkg/dtformat"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()
	assert.Nil(t, cfg.Check())
	assert.Equal(t, dtformat.DefaultPattern, cfg.DefaultPattern())
	assert.False(t, cfg.UTC)
	assert.NotEqual(t, "", cfg.HistoryFile)

	p, ok := cfg.Pattern("iso")
	assert.True(t, ok)
	assert.Equal(t, "yyyy-MM-dd'T'HH:mm:ss", p)
	_, ok = cfg.Pattern("unknown")
	assert.False(t, ok)
}

func TestParseConfig(t *testing.T) {
	c, err := parseConfig([]byte(`{"defaultFormat": "dd.MM.yyyy", "utc": true, "Formats": {"short": "d.M.yy"}}`))
	assert.Nil(t, err)
	assert.Equal(t, "dd.MM.yyyy", c.DefaultFormat)
	assert.True(t, c.UTC)
	assert.Equal(t, "", c.HistoryFile)
	assert.Equal(t, map[string]string{"short": "d.M.yy"}, c.Formats)

	_, err = parseConfig([]byte(`{"DefaultFormat": 123}`))
	assert.NotNil(t, err)
	_, err = parseConfig([]byte(`{"Unknown": "field"}`))
	assert.NotNil(t, err)
	_, err = parseConfig([]byte(`{"DefaultFormat": `))
	assert.NotNil(t, err)
}

func TestReadConfigFromFile(t *testing.T) {
	assert.Nil(t, ReadConfigFromFile(""))

	dir, err := ioutil.TempDir("", "chronoConfigTest")
	if err != nil {
		t.Fatal("Could not create new temp dir, err=", err)
	}
	defer os.RemoveAll(dir)

	fn := filepath.Join(dir, "config.json")
	assert.Nil(t, ReadConfigFromFile(fn))

	err = ioutil.WriteFile(fn, []byte(`{"HistoryFile": "/tmp/hist", "Formats": {"iso": "yyyy"}}`), 0640)
	assert.Nil(t, err)
	c := ReadConfigFromFile(fn)
	assert.NotNil(t, c)
	assert.Equal(t, "/tmp/hist", c.HistoryFile)

	err = ioutil.WriteFile(fn, []byte(`not a json`), 0640)
	assert.Nil(t, err)
	assert.Panics(t, func() { ReadConfigFromFile(fn) })
}

func TestApply(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Apply(nil)
	assert.Equal(t, GetDefaultConfig(), cfg)

	other := &Config{
		DefaultFormat: "dd.MM.yyyy",
		UTC:           true,
		Formats:       map[string]string{"iso": "yyyy", "short": "d.M.yy"},
	}
	cfg.Apply(other)
	assert.Equal(t, "dd.MM.yyyy", cfg.DefaultFormat)
	assert.True(t, cfg.UTC)
	assert.Equal(t, GetDefaultConfig().HistoryFile, cfg.HistoryFile)
	assert.Equal(t, "yyyy", cfg.Formats["iso"])
	assert.Equal(t, "d.M.yy", cfg.Formats["short"])
	assert.Equal(t, "HH:mm:ss", cfg.Formats["time"])

	// the maps are not shared
	other.Formats["short"] = "M/d"
	assert.Equal(t, "d.M.yy", cfg.Formats["short"])
}

func TestCheck(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.DefaultFormat = ""
	assert.NotNil(t, cfg.Check())

	testCheckFormat(t, "", "yyyy")
	testCheckFormat(t, "1st", "yyyy")
	testCheckFormat(t, "with space", "yyyy")
	testCheckFormat(t, "a-b", "yyyy")
	testCheckFormat(t, "empty", "")

	cfg = GetDefaultConfig()
	cfg.Formats["my_format2"] = "yyyy"
	assert.Nil(t, cfg.Check())
}

func testCheckFormat(t *testing.T, name, pattern string) {
	cfg := GetDefaultConfig()
	cfg.Formats[name] = pattern
	if cfg.Check() == nil {
		t.Fatal("the format ", name, "=", pattern, " must not pass the check")
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{DefaultFormat: "yyyy", Formats: map[string]string{"a": "'<b>'"}}
	assert.Equal(t, `{"DefaultFormat":"yyyy","UTC":false,"HistoryFile":"","Formats":{"a":"'<b>'"}}`, cfg.String())
}
