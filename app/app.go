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
	"context"
	"fmt"
	"io"

	"github.com/jrivets/log4g"
	"github.com/logrange/chrono/client/shell"
	"github.com/logrange/chrono/pkg/datetime"
	"github.com/logrange/chrono/pkg/dtexpr"
	"github.com/logrange/linker"
	"github.com/pkg/errors"
)

// RunFn is the function which is run by Start when all components are
// initialized
type RunFn func(ctx context.Context, sh *shell.Shell) error

// Start builds the components using the configuration provided and calls fn
// with the initialized shell. The components are shut down when fn is over.
// Results are printed to out.
func Start(ctx context.Context, cfg *Config, out io.Writer, fn RunFn) error {
	log := log4g.GetLogger("app")
	log.Info("Start with config:", cfg)

	if err := cfg.Check(); err != nil {
		return errors.Wrapf(err, "invalid configuration")
	}

	sh := shell.New(out)
	injector := linker.New()
	injector.SetLogger(log4g.GetLogger("injector"))
	injector.Register(
		linker.Component{Name: "clock", Value: datetime.SystemClock{UTC: cfg.UTC}},
		linker.Component{Name: "historyFile", Value: cfg.HistoryFile},
		linker.Component{Name: "", Value: cfg},
		linker.Component{Name: "", Value: dtexpr.NewEvaluator()},
		linker.Component{Name: "", Value: sh},
	)

	if err := initComponents(ctx, injector); err != nil {
		return err
	}
	defer injector.Shutdown()

	return fn(ctx, sh)
}

// initComponents turns the injector panic into error
func initComponents(ctx context.Context, injector *linker.Injector) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(fmt.Errorf("%v", r), "could not initialize components")
		}
	}()
	injector.Init(ctx)
	return nil
}
