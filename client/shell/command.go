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

package shell

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/logrange/chrono/pkg/datetime"
	"github.com/logrange/chrono/pkg/dtexpr"
	"github.com/logrange/chrono/pkg/timespan"
	"github.com/logrange/chrono/pkg/util"
)

type (
	command struct {
		name    string
		matcher *regexp.Regexp
		cmdFn   cmdFn
		help    string
	}

	config struct {
		expr     string
		optKV    string
		format   string
		ticks    bool
		relative bool
		quit     bool
		eval     *dtexpr.Evaluator
		clock    datetime.Clock
		out      io.Writer
	}

	cmdFn func(cfg *config) error
)

const (
	cmdSetOptName = "setoption"
	cmdListName   = "list"
	cmdQuitName   = "quit"
	cmdHelpName   = "help"

	optFormat   = "format"
	optTicks    = "ticks"
	optRelative = "relative"
)

var commands []command

func init() {
	commands = []command{
		{
			name: cmdSetOptName,
			matcher: regexp.MustCompile("(?i)^(?:(setoption$|setopt$)|(setoption|setopt)\\s+(?P<" +
				cmdSetOptName + ">.+))"),
			cmdFn: setoptFn,
			help:  "set options, e.g. 'setopt format @iso', 'setopt ticks off' or 'setopt relative on'",
		},
		{
			name:    cmdListName,
			matcher: regexp.MustCompile("(?i)^list$"),
			cmdFn:   listFn,
			help:    "list functions and methods available in expressions",
		},
		{
			name:    cmdQuitName,
			matcher: regexp.MustCompile("(?i)^(?:quit|exit)$"),
			cmdFn:   quitFn,
			help:    "exit the program",
		},
		{
			name:    cmdHelpName,
			matcher: regexp.MustCompile("(?i)^help$"),
			cmdFn:   helpFn,
			help:    "show help",
		},
	}
}

// execCmd runs the command which matches the input. The input which doesn't
// look like a command is evaluated as an expression.
func execCmd(input string, cfg *config) error {
	for _, d := range commands {
		if !d.matcher.MatchString(input) {
			if strings.HasPrefix(strings.ToLower(input), d.name) {
				return fmt.Errorf("command %s - invalid syntax", d.name)
			}
			continue
		}
		vars := getInputVars(d.matcher, input)
		if opt, ok := vars[cmdSetOptName]; ok {
			cfg.optKV = opt
		}
		return d.cmdFn(cfg)
	}
	cfg.expr = input
	return evalFn(cfg)
}

func getInputVars(re *regexp.Regexp, input string) map[string]string {
	match := re.FindStringSubmatch(input)
	varsMap := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if i > 0 && i < len(match) {
			varsMap[name] = match[i]
		}
	}
	return varsMap
}

//===================== eval =====================

func evalFn(cfg *config) error {
	res, err := cfg.eval.Eval(cfg.expr)
	if err != nil {
		return err
	}
	return printValue(res, cfg)
}

func printValue(v interface{}, cfg *config) error {
	switch val := v.(type) {
	case datetime.DateTime:
		pattern, err := cfg.pattern()
		if err != nil {
			return err
		}
		fmt.Fprint(cfg.out, val.Format(pattern))
		if cfg.ticks {
			fmt.Fprintf(cfg.out, "\n\tticks: %s", util.FormatTicks(val.Ticks()))
		}
		if cfg.relative && cfg.clock != nil {
			if now, err := datetime.Now(cfg.clock); err == nil {
				fmt.Fprintf(cfg.out, "\n\t%s", humanize.RelTime(val.ToTime(time.UTC), now.ToTime(time.UTC), "ago", "from now"))
			}
		}
	case timespan.TimeSpan:
		fmt.Fprint(cfg.out, val.String())
		if cfg.ticks {
			fmt.Fprintf(cfg.out, "\n\tticks: %s", util.FormatTicks(val.Ticks()))
		}
	case float64:
		fmt.Fprint(cfg.out, strconv.FormatFloat(val, 'f', -1, 64))
	default:
		fmt.Fprint(cfg.out, val)
	}
	fmt.Fprintln(cfg.out)
	return nil
}

func (cfg *config) pattern() (string, error) {
	if cfg.format == "" {
		return cfg.eval.DefaultPattern(), nil
	}
	return cfg.eval.ResolvePattern(cfg.format)
}

//===================== setopt =====================

func setoptFn(cfg *config) error {
	var (
		opt string
		val string
	)

	keyVal := strings.SplitN(strings.TrimSpace(cfg.optKV), " ", 2)
	opt = strings.TrimSpace(strings.ToLower(keyVal[0]))
	if len(keyVal) > 1 {
		val = strings.TrimSpace(keyVal[1])
	}

	switch opt {
	case optFormat:
		if val != "" {
			if _, err := cfg.eval.ResolvePattern(val); err != nil {
				return err
			}
		}
		cfg.format = val
	case optTicks:
		b, err := onOff(opt, val)
		if err != nil {
			return err
		}
		cfg.ticks = b
	case optRelative:
		b, err := onOff(opt, val)
		if err != nil {
			return err
		}
		cfg.relative = b
	default:
		return fmt.Errorf("unknown option=%v", opt)
	}

	fmt.Fprintln(cfg.out, keyVal)
	return nil
}

func onOff(opt, val string) (bool, error) {
	switch strings.ToLower(val) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("unknown value=%v for option=%v", val, opt)
}

//===================== list =====================

func listFn(cfg *config) error {
	fmt.Fprintf(cfg.out, "\n\t%-10s\n\t%s\n", "[FUNCTIONS]", strings.Join(dtexpr.FunctionNames(), ", "))
	fmt.Fprintf(cfg.out, "\n\t%-10s\n\t%s\n", "[DATETIME METHODS]", strings.Join(dtexpr.DateTimeMethods(), ", "))
	fmt.Fprintf(cfg.out, "\n\t%-10s\n\t%s\n\n", "[TIMESPAN METHODS]", strings.Join(dtexpr.TimeSpanMethods(), ", "))
	return nil
}

//===================== quit =====================

func quitFn(cfg *config) error {
	cfg.quit = true
	return nil
}

//===================== help =====================

func helpFn(cfg *config) error {
	fmt.Fprintf(cfg.out, "\n\t%-10s\n", "[HELP]")
	for _, c := range commands {
		fmt.Fprintf(cfg.out, "\n\t%-15s %s", c.name, c.help)
	}
	fmt.Fprintf(cfg.out, "\n\t%-15s %s", "<expression>", "evaluate the expression, e.g. 'now().addDays(1.5)' or 'date(2019, 2, 18) - today()'")
	fmt.Fprint(cfg.out, "\n\n")
	return nil
}
