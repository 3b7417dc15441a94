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

package dtexpr

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jrivets/log4g"
	"github.com/logrange/chrono/pkg/datetime"
	"github.com/logrange/chrono/pkg/dtformat"
	"github.com/logrange/chrono/pkg/timespan"
	"github.com/pkg/errors"
)

type (
	// Patterns provides the default format pattern and the named ones, which
	// can be referred as @name in expressions.
	Patterns interface {
		DefaultPattern() string
		Pattern(name string) (string, bool)
	}

	// Evaluator evaluates expressions over DateTime, TimeSpan, numbers and
	// strings. The values are:
	//
	// int64, float64 - numbers
	// string - string literals and resolved @patterns
	// bool - leap() result
	// datetime.DateTime, datetime.DayOfWeek, timespan.TimeSpan
	//
	// Evaluator has no state between evaluations and could be used from
	// different go-routines simultaneously.
	Evaluator struct {
		Clock    datetime.Clock `inject:"clock"`
		Patterns Patterns       `inject:""`

		logger log4g.Logger
	}

	function struct {
		minArgs int
		maxArgs int
		fn      func(e *Evaluator, args []interface{}) (interface{}, error)
	}

	dtMethod struct {
		minArgs int
		maxArgs int
		fn      func(e *Evaluator, dt datetime.DateTime, args []interface{}) (interface{}, error)
	}

	tsMethod struct {
		fn func(ts timespan.TimeSpan) (interface{}, error)
	}
)

// NewEvaluator creates new Evaluator. Clock and Patterns must be set before
// use, the linker injects them.
func NewEvaluator() *Evaluator {
	e := new(Evaluator)
	e.logger = log4g.GetLogger("dtexpr")
	return e
}

// Init is part of linker.Initializer
func (e *Evaluator) Init(ctx context.Context) error {
	if e.Clock == nil {
		return fmt.Errorf("the clock must be provided")
	}
	e.logger.Info("Initialized with clock ", e.Clock)
	return nil
}

// Eval parses and evaluates the expression
func (e *Evaluator) Eval(expr string) (interface{}, error) {
	exp, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return e.EvalExpression(exp)
}

// EvalExpression evaluates the parsed expression
func (e *Evaluator) EvalExpression(exp *Expression) (interface{}, error) {
	res, err := e.evalExpression(exp)
	if err != nil {
		e.logger.Debug("Evaluation of ", exp, " failed, err=", err)
		return nil, err
	}
	return res, nil
}

// DefaultPattern returns the default format pattern
func (e *Evaluator) DefaultPattern() string {
	if e.Patterns == nil || e.Patterns.DefaultPattern() == "" {
		return dtformat.DefaultPattern
	}
	return e.Patterns.DefaultPattern()
}

// ResolvePattern returns the pattern for the @name references, or p itself
func (e *Evaluator) ResolvePattern(p string) (string, error) {
	if !strings.HasPrefix(p, "@") {
		return p, nil
	}
	if e.Patterns != nil {
		if res, ok := e.Patterns.Pattern(p[1:]); ok {
			return res, nil
		}
	}
	return "", errors.Errorf("unknown pattern %s", p)
}

func (e *Evaluator) evalExpression(exp *Expression) (interface{}, error) {
	res, err := e.evalTerm(exp.Term)
	if err != nil {
		return nil, err
	}

	for _, ot := range exp.Ops {
		right, err := e.evalTerm(ot.Term)
		if err != nil {
			return nil, err
		}
		if res, err = binaryOp(ot.Op, res, right); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (e *Evaluator) evalTerm(t *Term) (res interface{}, err error) {
	switch {
	case t.Call != nil:
		res, err = e.callFunction(t.Call)
	case t.Number != nil:
		res = t.Number.Value
	case t.Str != nil:
		res = *t.Str
	case t.Pattern != nil:
		res, err = e.ResolvePattern(*t.Pattern)
	case t.Sub != nil:
		res, err = e.evalExpression(t.Sub)
	default:
		err = errors.Errorf("empty term")
	}
	if err != nil {
		return nil, err
	}

	for _, m := range t.Methods {
		if res, err = e.callMethod(res, m); err != nil {
			return nil, err
		}
	}

	if t.Neg {
		return negate(res)
	}
	return res, nil
}

func (e *Evaluator) evalArgs(c *Call) ([]interface{}, error) {
	args := make([]interface{}, len(c.Args))
	for i, a := range c.Args {
		v, err := e.evalExpression(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func (e *Evaluator) callFunction(c *Call) (interface{}, error) {
	f, ok := functions[strings.ToLower(c.Name)]
	if !ok {
		return nil, errors.Errorf("unknown function %s()", c.Name)
	}
	if err := checkArity(c, f.minArgs, f.maxArgs); err != nil {
		return nil, err
	}

	args, err := e.evalArgs(c)
	if err != nil {
		return nil, err
	}
	return f.fn(e, args)
}

func (e *Evaluator) callMethod(v interface{}, c *Call) (interface{}, error) {
	name := strings.ToLower(c.Name)
	switch val := v.(type) {
	case datetime.DateTime:
		m, ok := dtMethods[name]
		if !ok {
			return nil, errors.Errorf("unknown DateTime method %s()", c.Name)
		}
		if err := checkArity(c, m.minArgs, m.maxArgs); err != nil {
			return nil, err
		}
		args, err := e.evalArgs(c)
		if err != nil {
			return nil, err
		}
		return m.fn(e, val, args)
	case timespan.TimeSpan:
		m, ok := tsMethods[name]
		if !ok {
			return nil, errors.Errorf("unknown TimeSpan method %s()", c.Name)
		}
		if err := checkArity(c, 0, 0); err != nil {
			return nil, err
		}
		return m.fn(val)
	}
	return nil, errors.Errorf("%s has no method %s()", TypeName(v), c.Name)
}

func checkArity(c *Call, min, max int) error {
	n := len(c.Args)
	if n < min || n > max {
		if min == max {
			return errors.Errorf("%s() expects %d argument(s), but %d provided", c.Name, min, n)
		}
		return errors.Errorf("%s() expects from %d to %d arguments, but %d provided", c.Name, min, max, n)
	}
	return nil
}

func binaryOp(op string, left, right interface{}) (interface{}, error) {
	switch l := left.(type) {
	case int64:
		switch r := right.(type) {
		case int64:
			return intOp(op, l, r)
		case float64:
			return floatOp(op, float64(l), r), nil
		}
	case float64:
		switch r := right.(type) {
		case int64:
			return floatOp(op, l, float64(r)), nil
		case float64:
			return floatOp(op, l, r), nil
		}
	case datetime.DateTime:
		switch r := right.(type) {
		case datetime.DateTime:
			if op == "-" {
				return l.Subtract(r), nil
			}
		case timespan.TimeSpan:
			if op == "-" {
				return l.SubtractTime(r)
			}
			return l.Add(r)
		}
	case timespan.TimeSpan:
		switch r := right.(type) {
		case timespan.TimeSpan:
			if op == "-" {
				return l.Subtract(r)
			}
			return l.Add(r)
		case datetime.DateTime:
			if op == "+" {
				return r.Add(l)
			}
		}
	case string:
		if r, ok := right.(string); ok && op == "+" {
			return l + r, nil
		}
	}
	return nil, errors.Errorf("operation %s %s %s is not supported", TypeName(left), op, TypeName(right))
}

func intOp(op string, l, r int64) (interface{}, error) {
	if op == "-" {
		res := l - r
		if (l < 0) != (r < 0) && (l < 0) != (res < 0) {
			return nil, errors.Errorf("integer overflow in %d - %d", l, r)
		}
		return res, nil
	}
	res := l + r
	if (l < 0) == (r < 0) && (l < 0) != (res < 0) {
		return nil, errors.Errorf("integer overflow in %d + %d", l, r)
	}
	return res, nil
}

func floatOp(op string, l, r float64) float64 {
	if op == "-" {
		return l - r
	}
	return l + r
}

func negate(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case int64:
		if val == math.MinInt64 {
			return nil, errors.Errorf("integer overflow in -(%d)", val)
		}
		return -val, nil
	case float64:
		return -val, nil
	case timespan.TimeSpan:
		return val.Negate()
	}
	return nil, errors.Errorf("%s could not be negated", TypeName(v))
}

// TypeName returns the value type name as it is shown to users
func TypeName(v interface{}) string {
	switch v.(type) {
	case int64:
		return "Integer"
	case float64:
		return "Number"
	case string:
		return "String"
	case bool:
		return "Boolean"
	case datetime.DateTime:
		return "DateTime"
	case datetime.DayOfWeek:
		return "DayOfWeek"
	case timespan.TimeSpan:
		return "TimeSpan"
	}
	return fmt.Sprintf("%T", v)
}
