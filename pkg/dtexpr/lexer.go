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
	"fmt"
	"io"
	"io/ioutil"
	"regexp"
	"unicode/utf8"

	"github.com/alecthomas/participle/lexer"
)

type (
	// longestDefinition is a participle lexer definition, which picks the
	// longest match between alternatives of the regular expression. Named
	// groups are tokens, anonymous groups are skipped.
	longestDefinition struct {
		re      *regexp.Regexp
		symbols map[string]rune
	}

	longestLexer struct {
		pos   lexer.Position
		b     []byte
		re    *regexp.Regexp
		names []string
	}
)

func newLongestDefinition(pattern string) (lexer.Definition, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	symbols := map[string]rune{
		"EOF": lexer.EOF,
	}
	for i, sym := range re.SubexpNames()[1:] {
		if sym != "" {
			symbols[sym] = lexer.EOF - 1 - rune(i)
		}
	}

	re.Longest()
	return &longestDefinition{re: re, symbols: symbols}, nil
}

func (d *longestDefinition) Lex(r io.Reader) (lexer.Lexer, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &longestLexer{
		pos: lexer.Position{
			Filename: lexer.NameOfReader(r),
			Line:     1,
			Column:   1,
		},
		b:     b,
		re:    d.re,
		names: d.re.SubexpNames(),
	}, nil
}

func (d *longestDefinition) Symbols() map[string]rune {
	return d.symbols
}

// Next returns the next token. Expressions are one-liners, so only the
// column and the offset are tracked.
func (l *longestLexer) Next() (lexer.Token, error) {
	for len(l.b) != 0 {
		m := l.re.FindSubmatchIndex(l.b)
		if m == nil || m[0] != 0 {
			rn, _ := utf8.DecodeRune(l.b)
			return lexer.Token{}, fmt.Errorf("unexpected character %q at column %d", rn, l.pos.Column)
		}

		tok := lexer.Token{Pos: l.pos, Value: string(l.b[:m[1]])}
		l.pos.Offset += m[1]
		l.pos.Column += utf8.RuneCount(l.b[:m[1]])
		l.b = l.b[m[1]:]

		typ := -1
		for i := 2; i < len(m); i += 2 {
			if m[i] != -1 {
				typ = i / 2
				break
			}
		}
		if typ < 0 || l.names[typ] == "" {
			// white spaces
			continue
		}
		tok.Type = lexer.EOF - rune(typ)
		return tok, nil
	}

	return lexer.EOFToken(l.pos), nil
}
