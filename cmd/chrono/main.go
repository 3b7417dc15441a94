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
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/jrivets/log4g"
	"github.com/logrange/chrono/app"
	"github.com/logrange/chrono/client/shell"
	"github.com/pkg/errors"
	ucli "gopkg.in/urfave/cli.v2"
)

const (
	Version = "0.1.0"
)

const (
	argLogCfgFile = "log-config-file"
	argCfgFile    = "config-file"
	argUTC        = "utc"
	argFormat     = "format"
)

var (
	log = log4g.GetLogger("chrono")
	cfg = app.GetDefaultConfig()
)

// main is the entry point for the 'chrono' command. The commands are:
// 		now 	- prints the current date and time
//		eval	- evaluates an expression, e.g. chrono eval "now().addMonths(-3)"
// 		span 	- prints the interval given in logfmt form, e.g. chrono span "days=1 hours=2"
// 		shell 	- runs the interactive shell
func main() {
	defer log4g.Shutdown()

	cliApp := &ucli.App{
		Name:    "chrono",
		Version: Version,
		Usage:   "Date and time calculator",
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:  argLogCfgFile,
				Usage: "The log4g configuration file name",
			},
			&ucli.StringFlag{
				Name:  argCfgFile,
				Usage: "The chrono configuration file name",
			},
			&ucli.BoolFlag{
				Name:  argUTC,
				Usage: "Take the current time in UTC instead of the local time zone",
			},
		},
		Before: before,
		Commands: []*ucli.Command{
			{
				Name:      "now",
				Usage:     "Print the current date and time",
				UsageText: "chrono now [command options]",
				Action:    runNow,
				Flags: []ucli.Flag{
					&ucli.StringFlag{
						Name:  argFormat,
						Usage: "the format pattern, e.g. \"dddd, MMM d yyyy\", or the configured format name, e.g. @iso",
					},
				},
			},
			{
				Name:      "eval",
				Usage:     "Evaluate the expression",
				ArgsUsage: "[expression]",
				Action:    runEval,
			},
			{
				Name:      "span",
				Usage:     "Print the interval described in logfmt form",
				ArgsUsage: "[days=N hours=N minutes=N seconds=N millis=N]",
				Action:    runSpan,
			},
			{
				Name:      "shell",
				Usage:     "Run the interactive shell",
				UsageText: "chrono shell [command options]",
				Action:    runShell,
			},
		},
	}

	sort.Sort(ucli.FlagsByName(cliApp.Flags))
	sort.Sort(ucli.CommandsByName(cliApp.Commands))

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func before(c *ucli.Context) error {
	if err := initLogging(c.String(argLogCfgFile)); err != nil {
		return err
	}

	fc := app.ReadConfigFromFile(c.String(argCfgFile))
	if fc != nil {
		// overwrite default settings from file
		cfg.Apply(fc)
	}

	if c.Bool(argUTC) {
		cfg.UTC = true
	}
	return nil
}

// initLogging loads the log4g configuration. With no configuration only
// fatal messages are logged, so the command output is not mixed with logs.
func initLogging(logCfgFile string) error {
	if logCfgFile == "" {
		log4g.SetLogLevel("", log4g.FATAL)
		return nil
	}

	if _, err := os.Stat(logCfgFile); os.IsNotExist(err) {
		return fmt.Errorf("the log4g configuration file %s doesn't exist", logCfgFile)
	}

	log.Info("Loading log4g config from ", logCfgFile)
	err := log4g.ConfigF(logCfgFile)
	if err != nil {
		err := errors.Wrapf(err, "Could not parse %s file as a log4g configuration, please check syntax ", logCfgFile)
		log.Fatal(err)
		return err
	}
	return nil
}

func runNow(c *ucli.Context) error {
	expr := "now()"
	if f := c.String(argFormat); f != "" {
		if !strings.HasPrefix(f, "@") {
			f = strconv.Quote(f)
		}
		expr = "now().format(" + f + ")"
	}
	return execExpr(expr)
}

func runEval(c *ucli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("the expression is expected, e.g. chrono eval \"today() + days(3)\"")
	}
	return execExpr(strings.Join(c.Args().Slice(), " "))
}

func runSpan(c *ucli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("the interval is expected, e.g. chrono span \"days=1 hours=2\"")
	}
	return execExpr("span(" + strconv.Quote(strings.Join(c.Args().Slice(), " ")) + ")")
}

func execExpr(expr string) error {
	return app.Start(newContext(), cfg, os.Stdout, func(ctx context.Context, sh *shell.Shell) error {
		return sh.Exec(expr)
	})
}

func runShell(c *ucli.Context) error {
	return app.Start(newContext(), cfg, os.Stdout, func(ctx context.Context, sh *shell.Shell) error {
		return sh.Run(ctx)
	})
}

func newContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-sigChan:
			log.Info("Got signal \"", s, "\", cancelling context ")
			cancel()
		}
	}()
	return ctx
}
