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

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrivets/log4g"
	"github.com/stretchr/testify/assert"
)

func TestInitLogging(t *testing.T) {
	defer log4g.SetLogLevel("", log4g.INFO)

	assert.Nil(t, initLogging(""))
	assert.Equal(t, log4g.FATAL, log4g.GetLogger("injector").GetLevel())
	assert.Equal(t, log4g.FATAL, log4g.GetLogger("app").GetLevel())

	dir, err := ioutil.TempDir("", "chronoLogTest")
	if err != nil {
		t.Fatal("Could not create new temp dir, err=", err)
	}
	defer os.RemoveAll(dir)

	assert.NotNil(t, initLogging(filepath.Join(dir, "absent.properties")))

	fn := filepath.Join(dir, "log4g.properties")
	assert.Nil(t, ioutil.WriteFile(fn, []byte("context.level=INFO\n"), 0640))
	assert.Nil(t, initLogging(fn))
}
