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
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/jrivets/log4g"
	"github.com/logrange/chrono/pkg/dtformat"
	"github.com/logrange/chrono/pkg/util"
	"github.com/mitchellh/mapstructure"
	"github.com/mohae/deepcopy"
	"github.com/pkg/errors"
)

type (
	// Config is the chrono configuration. It is read from a json file,
	// which could look like:
	//
	// {
	//   "DefaultFormat": "yyyy-MM-dd HH:mm:ss",
	//   "UTC": true,
	//   "HistoryFile": "/home/user/.chrono_history",
	//   "Formats": {
	//     "iso": "yyyy-MM-dd'T'HH:mm:ss",
	//     "us": "MM/dd/yyyy h:mm tt"
	//   }
	// }
	Config struct {
		// DefaultFormat is the pattern used for printing DateTime values
		// when no pattern is specified
		DefaultFormat string

		// UTC defines whether the current time is taken in UTC or in the
		// local time zone
		UTC bool

		// HistoryFile is the shell history file name
		HistoryFile string

		// Formats contains named patterns, which could be referred as @name
		// in expressions
		Formats map[string]string
	}
)

const (
	historyFileName = ".chrono_history"
)

var configLog = log4g.GetLogger("Config")

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		DefaultFormat: dtformat.DefaultPattern,
		HistoryFile:   defaultHistoryFile(),
		Formats: map[string]string{
			"iso":  "yyyy-MM-dd'T'HH:mm:ss",
			"date": "yyyy-MM-dd",
			"time": "HH:mm:ss",
			"long": "dddd, MMMM d, yyyy h:mm:ss tt",
		},
	}
}

func defaultHistoryFile() string {
	var fileDir = os.TempDir()
	usr, err := user.Current()
	if err == nil {
		fileDir = usr.HomeDir
	}
	return filepath.Join(fileDir, historyFileName)
}

// ReadConfigFromFile reads the configuration from the json file. It returns
// nil if the filename is empty or the file doesn't exist. Keys in the file
// are case insensitive.
func ReadConfigFromFile(filename string) *Config {
	if filename == "" {
		return nil
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		configLog.Warn("There is no file ", filename, " for reading chrono config, will use default configuration.")
		return nil
	}

	cfgData, err := ioutil.ReadFile(filename)
	if err != nil {
		configLog.Fatal("Could not read configuration file ", filename, ": ", err)
		panic(errors.Wrapf(err, "Could not read data from config file %s", filename))
	}

	c, err := parseConfig(cfgData)
	if err != nil {
		configLog.Fatal("Could not unmarshal data from ", filename, ", err=", err)
		panic(errors.Wrapf(err, "Could not unmarshal json data from config file %s", filename))
	}

	configLog.Info("Configuration read from ", filename)
	return c
}

func parseConfig(data []byte) (*Config, error) {
	var params map[string]interface{}
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, err
	}

	c := &Config{}
	dc, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      c,
	})
	if err != nil {
		return nil, err
	}
	if err = dc.Decode(params); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply overwrites the c values by the non-default values of other
func (c *Config) Apply(other *Config) {
	if other == nil {
		return
	}
	if other.DefaultFormat != "" {
		c.DefaultFormat = other.DefaultFormat
	}
	if other.UTC {
		c.UTC = true
	}
	if other.HistoryFile != "" {
		c.HistoryFile = other.HistoryFile
	}
	if len(other.Formats) != 0 {
		fmts := deepcopy.Copy(other.Formats).(map[string]string)
		if c.Formats == nil {
			c.Formats = fmts
			return
		}
		for k, v := range fmts {
			c.Formats[k] = v
		}
	}
}

// Check validates the configuration
func (c *Config) Check() error {
	if c.DefaultFormat == "" {
		return fmt.Errorf("invalid DefaultFormat, must not be empty")
	}
	for n, p := range c.Formats {
		if n == "" || n[0] >= '0' && n[0] <= '9' || strings.IndexFunc(n, isNotNameRune) >= 0 {
			return fmt.Errorf("invalid format name=%q, only letters, digits and '_' are allowed, the name must not start from a digit", n)
		}
		if p == "" {
			return fmt.Errorf("invalid format %q, the pattern must not be empty", n)
		}
	}
	return nil
}

func isNotNameRune(r rune) bool {
	return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
}

// DefaultPattern is part of dtexpr.Patterns
func (c *Config) DefaultPattern() string {
	return c.DefaultFormat
}

// Pattern is part of dtexpr.Patterns
func (c *Config) Pattern(name string) (string, bool) {
	p, ok := c.Formats[name]
	return p, ok
}

func (c *Config) String() string {
	return util.ToJsonStr(c)
}
