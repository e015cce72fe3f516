package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqltestbench/slt"
)

func (s *scanner) parseStatement(loc slt.Location, tokens []string) (slt.Record, error) {
	rest := tokens[1:]
	var expectedError slt.ErrorMatcher
	var expectedCount *uint64

	switch {
	case len(rest) == 1 && rest[0] == "ok":
		// no expectation beyond success
	case len(rest) >= 1 && rest[0] == "error":
		pattern := strings.Join(rest[1:], " ")
		m, err := slt.NewErrorMatcher(pattern)
		if err != nil {
			return nil, slt.NewParseError(slt.InvalidErrorMessage, loc, pattern)
		}
		expectedError = m
	case len(rest) == 2 && rest[0] == "count":
		n, err := strconv.ParseUint(rest[1], 10, 64)
		if err != nil {
			return nil, slt.NewParseError(slt.InvalidNumber, loc, rest[1])
		}
		expectedCount = &n
	default:
		return nil, slt.NewParseError(slt.InvalidLine, loc, strings.Join(tokens, " "))
	}

	sql, err := s.readBody(loc)
	if err != nil {
		return nil, err
	}

	return slt.NewStatement(loc, s.takeConditions(), s.takeConnection(), expectedError, expectedCount, sql), nil
}

func (s *scanner) parseQuery(loc slt.Location, tokens []string) (slt.Record, error) {
	rest := tokens[1:]

	var types []slt.ColumnType
	var sortMode *slt.SortMode
	var label string
	var expectedError slt.ErrorMatcher

	switch {
	case len(rest) >= 1 && rest[0] == "error":
		pattern := strings.Join(rest[1:], " ")
		m, err := slt.NewErrorMatcher(pattern)
		if err != nil {
			return nil, slt.NewParseError(slt.InvalidErrorMessage, loc, pattern)
		}
		expectedError = m

	case len(rest) >= 1:
		decoded, err := decodeTypeString(slt.DefaultAlphabet, rest[0])
		if err != nil {
			return nil, slt.NewParseError(slt.InvalidType, loc, rest[0])
		}
		types = decoded
		if len(rest) >= 2 {
			mode, ok := slt.ParseSortMode(rest[1])
			if !ok {
				return nil, slt.NewParseError(slt.InvalidSortMode, loc, rest[1])
			}
			sortMode = &mode
		}
		if len(rest) >= 3 {
			label = rest[2]
		}

	default:
		return nil, slt.NewParseError(slt.InvalidLine, loc, strings.Join(tokens, " "))
	}

	sql, hasResult, err := s.readQueryBody(loc)
	if err != nil {
		return nil, err
	}

	var expectedResults []string
	if hasResult {
		expectedResults, err = s.readResultLines()
		if err != nil {
			return nil, err
		}
	}

	return slt.NewQuery(loc, s.takeConditions(), s.takeConnection(), types, sortMode, label, expectedError, sql, expectedResults), nil
}

// readQueryBody reads the SQL lines of a query record, stopping at either a
// blank line (no expected results follow) or a line consisting of exactly
// "----" (expected results follow, hasResult=true).
func (s *scanner) readQueryBody(loc slt.Location) (sql string, hasResult bool, err error) {
	first, ok := s.next()
	if !ok {
		return "", false, slt.NewParseError(slt.UnexpectedEOF, loc.NextLine(), "")
	}
	var b strings.Builder
	b.WriteString(first)
	for {
		line, ok := s.peek()
		if !ok {
			return "", false, slt.NewParseError(slt.UnexpectedEOF, s.loc(), "")
		}
		if strings.TrimSpace(line) == "" {
			s.pos++
			return b.String(), false, nil
		}
		if line == "----" {
			s.pos++
			return b.String(), true, nil
		}
		s.pos++
		b.WriteByte('\n')
		b.WriteString(line)
	}
}

// readResultLines reads expected-result lines verbatim until a blank line.
func (s *scanner) readResultLines() ([]string, error) {
	var lines []string
	for {
		line, ok := s.peek()
		if !ok {
			return nil, slt.NewParseError(slt.UnexpectedEOF, s.loc(), "")
		}
		if strings.TrimSpace(line) == "" {
			s.pos++
			return lines, nil
		}
		s.pos++
		lines = append(lines, line)
	}
}

func decodeTypeString(alphabet slt.Alphabet, s string) ([]slt.ColumnType, error) {
	out := make([]slt.ColumnType, 0, len(s))
	for i := 0; i < len(s); i++ {
		t, ok := alphabet.FromChar(s[i])
		if !ok {
			return nil, fmt.Errorf("invalid type character %q", s[i])
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *scanner) parseSystem(loc slt.Location, tokens []string) (slt.Record, error) {
	rest := tokens[1:]
	var expectedError slt.ErrorMatcher

	switch {
	case len(rest) == 1 && rest[0] == "ok":
	case len(rest) >= 1 && rest[0] == "error":
		pattern := strings.Join(rest[1:], " ")
		m, err := slt.NewErrorMatcher(pattern)
		if err != nil {
			return nil, slt.NewParseError(slt.InvalidErrorMessage, loc, pattern)
		}
		expectedError = m
	default:
		return nil, slt.NewParseError(slt.InvalidLine, loc, strings.Join(tokens, " "))
	}

	command, err := s.readBody(loc)
	if err != nil {
		return nil, err
	}

	return slt.NewSystem(loc, expectedError, command), nil
}

func (s *scanner) parseLet(loc slt.Location, line string, tokens []string) (slt.Record, error) {
	open := strings.Index(line, "(")
	shut := strings.Index(line, ")")
	if open < 0 || shut < 0 || shut < open {
		return nil, slt.NewParseError(slt.InvalidLine, loc, line)
	}
	inside := line[open+1 : shut]
	var names []string
	for _, part := range strings.Split(inside, ",") {
		name := strings.TrimSpace(part)
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, slt.NewParseError(slt.InvalidLine, loc, line)
	}

	// The inner query is a bare SQL body, not a "query" directive: there is
	// no type string, sort mode, or `----` results block to parse, since the
	// rows it produces are bound to names rather than compared.
	innerLoc := loc.NextLine()
	sql, err := s.readBody(innerLoc)
	if err != nil {
		return nil, err
	}
	query := slt.NewQuery(innerLoc, s.takeConditions(), s.takeConnection(), nil, nil, "", slt.ErrorMatcher{}, sql, nil)

	return slt.NewLet(loc, names, query), nil
}
