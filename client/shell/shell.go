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
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"github.com/jrivets/log4g"
	"github.com/logrange/chrono/pkg/datetime"
	"github.com/logrange/chrono/pkg/dtexpr"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
)

type (
	// Shell is the interactive expressions evaluator. It reads expressions
	// and commands from the terminal, evaluates them and prints results.
	Shell struct {
		Evaluator   *dtexpr.Evaluator `inject:""`
		Clock       datetime.Clock    `inject:"clock"`
		HistoryFile string            `inject:"historyFile"`

		logger log4g.Logger
		out    io.Writer
	}
)

const (
	prompt = "chrono> "
)

// New creates new Shell, which prints results to the out
func New(out io.Writer) *Shell {
	s := new(Shell)
	s.logger = log4g.GetLogger("shell")
	s.out = out
	return s
}

// Init is part of linker.Initializer
func (s *Shell) Init(ctx context.Context) error {
	if s.Evaluator == nil {
		return fmt.Errorf("the evaluator must be provided")
	}
	s.logger.Info("Initialized, history file is ", s.HistoryFile)
	return nil
}

// Exec runs the single command or evaluates the expression
func (s *Shell) Exec(input string) error {
	return execCmd(strings.TrimSpace(input), s.newConfig())
}

// Run reads the input from the terminal until the quit command, EOF or
// ctx is closed
func (s *Shell) Run(ctx context.Context) error {
	s.printLogo()

	lnr := liner.NewLiner()
	lnr.SetCtrlCAborts(true)

	s.loadHistory(lnr)
	defer func() {
		s.saveHistory(lnr)
		_ = lnr.Close()
		fmt.Fprintln(s.out, "bye!")
	}()

	cfg := s.newConfig() // shared between commands to keep options
	for ctx.Err() == nil && !cfg.quit {
		inp, err := lnr.Prompt(prompt)
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				break
			}
			return errors.Wrapf(err, "could not read the input")
		}

		inp = strings.TrimSpace(inp)
		if inp == "" {
			continue
		}

		lnr.AppendHistory(inp)
		if err = execCmd(inp, cfg); err != nil {
			s.printError(err)
		}
	}
	return nil
}

func (s *Shell) newConfig() *config {
	return &config{
		eval:     s.Evaluator,
		clock:    s.Clock,
		out:      s.out,
		ticks:    true,
		relative: true,
	}
}

func (s *Shell) printLogo() {
	fmt.Fprint(s.out, ""+
		"     _                            \n"+
		"  __| |_  _ _ ___ _ _  ___        \n"+
		" / _| ' \\| '_/ _ \\ ' \\/ _ \\   \n"+
		" \\__|_||_|_| \\___/_||_\\___/   \n\n"+
		"type 'help' for the list of commands\n\n")
}

func (s *Shell) printError(err error) {
	_, _ = fmt.Fprintln(os.Stderr, err)
}

func (s *Shell) loadHistory(lnr *liner.State) {
	if s.HistoryFile == "" {
		return
	}

	f, err := os.OpenFile(s.HistoryFile, os.O_RDONLY|os.O_CREATE, 0640)
	if err != nil {
		s.logger.Warn("Could not open history file ", s.HistoryFile, ", err=", err)
		return
	}
	defer f.Close()

	if _, err = lnr.ReadHistory(f); err != nil {
		s.logger.Warn("Could not read history from ", s.HistoryFile, ", err=", err)
	}
}

// saveHistory writes the history under the file lock, so several shells
// running simultaneously don't corrupt the file
func (s *Shell) saveHistory(lnr *liner.State) {
	if s.HistoryFile == "" {
		return
	}

	fl := flock.New(s.HistoryFile + ".lock")
	if l, err := fl.TryLock(); !l || err != nil {
		s.logger.Warn("Could not get lock for ", s.HistoryFile, ", the history is not saved. err=", err)
		return
	}
	defer fl.Unlock()

	f, err := os.OpenFile(s.HistoryFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		s.logger.Warn("Could not open history file ", s.HistoryFile, " for write, err=", err)
		return
	}
	defer f.Close()

	if _, err = lnr.WriteHistory(f); err != nil {
		s.logger.Warn("Could not write history to ", s.HistoryFile, ", err=", err)
	}
}
