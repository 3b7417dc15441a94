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
	"strconv"
	"strings"

	"github.com/alecthomas/participle"
	"github.com/alecthomas/participle/lexer"
	"github.com/pkg/errors"
)

var (
	exprLexer = lexer.Must(newLongestDefinition(`(\s+)` +
		`|(?P<Ident>[a-zA-Z_][a-zA-Z0-9_]*)` +
		`|(?P<Number>\d+(\.\d+)?)` +
		`|(?P<String>"([^\\"]|\\.)*"|'([^\\']|\\.)*')` +
		`|(?P<Pattern>@[a-zA-Z_][a-zA-Z0-9_]*)` +
		`|(?P<Operator>[-+,.()])`,
	))

	parser = participle.MustBuild(
		&Expression{},
		participle.Lexer(exprLexer),
		participle.Unquote("String"),
	)
)

type (
	// Number is a numeric literal. Integers are kept as int64, literals with
	// the decimal point are kept as float64.
	Number struct {
		Value interface{}
	}

	// Expression is a sum of terms, e.g. `now() - date(2019, 2, 18)`
	Expression struct {
		Term *Term     `@@`
		Ops  []*OpTerm `{ @@ }`
	}

	OpTerm struct {
		Op   string `@("+" | "-")`
		Term *Term  `@@`
	}

	// Term is an operand with an optional chain of method calls, e.g.
	// `-date(2019, 2, 18).addMonths(3).year()`. The unary minus is applied
	// to the result of the chain.
	Term struct {
		Neg     bool        `[ @"-" ]`
		Call    *Call       `( @@`
		Number  *Number     `| @Number`
		Str     *string     `| @String`
		Pattern *string     `| @Pattern`
		Sub     *Expression `| "(" @@ ")" )`
		Methods []*Call     `{ "." @@ }`
	}

	// Call is a function or a method call
	Call struct {
		Name string        `@Ident "("`
		Args []*Expression `[ @@ { "," @@ } ] ")"`
	}
)

func (n *Number) Capture(values []string) error {
	s := values[0]
	if strings.IndexByte(s, '.') < 0 {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		n.Value = v
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	n.Value = v
	return nil
}

// Parse parses the expression string
func Parse(expr string) (*Expression, error) {
	exp := &Expression{}
	err := parser.ParseString(expr, exp)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse expression %q", expr)
	}
	return exp, nil
}

func (e *Expression) String() string {
	var sb strings.Builder
	sb.WriteString(e.Term.String())
	for _, ot := range e.Ops {
		sb.WriteByte(' ')
		sb.WriteString(ot.Op)
		sb.WriteByte(' ')
		sb.WriteString(ot.Term.String())
	}
	return sb.String()
}

func (t *Term) String() string {
	var sb strings.Builder
	if t.Neg {
		sb.WriteByte('-')
	}
	switch {
	case t.Call != nil:
		sb.WriteString(t.Call.String())
	case t.Number != nil:
		switch v := t.Number.Value.(type) {
		case int64:
			sb.WriteString(strconv.FormatInt(v, 10))
		case float64:
			sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		}
	case t.Str != nil:
		sb.WriteString(strconv.Quote(*t.Str))
	case t.Pattern != nil:
		sb.WriteString(*t.Pattern)
	case t.Sub != nil:
		sb.WriteByte('(')
		sb.WriteString(t.Sub.String())
		sb.WriteByte(')')
	}
	for _, m := range t.Methods {
		sb.WriteByte('.')
		sb.WriteString(m.String())
	}
	return sb.String()
}

func (c *Call) String() string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	sb.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
