package slt

import "fmt"

// ParseErrorKind is the closed taxonomy of reasons a script fails to parse.
// All kinds are fatal to the whole file; there is no recovery.
type ParseErrorKind int

const (
	UnexpectedToken ParseErrorKind = iota
	UnexpectedEOF
	InvalidSortMode
	InvalidLine
	InvalidType
	InvalidNumber
	InvalidErrorMessage
	InvalidDuration
	InvalidControl
	InvalidIncludeFile
	FileNotFound
)

func (k ParseErrorKind) label() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnexpectedEOF:
		return "unexpected EOF"
	case InvalidSortMode:
		return "invalid sort mode"
	case InvalidLine:
		return "invalid line"
	case InvalidType:
		return "invalid type character"
	case InvalidNumber:
		return "invalid number"
	case InvalidErrorMessage:
		return "invalid error message"
	case InvalidDuration:
		return "invalid duration"
	case InvalidControl:
		return "invalid control"
	case InvalidIncludeFile:
		return "invalid include file pattern"
	case FileNotFound:
		return "no such file"
	default:
		return "unknown parse error"
	}
}

// ParseError is a parse-time failure, always anchored to the Location it was
// detected at.
type ParseError struct {
	Kind   ParseErrorKind
	Loc    Location
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("parse error at %s: %s", e.Loc, e.Kind.label())
	}
	return fmt.Sprintf("parse error at %s: %s: %q", e.Loc, e.Kind.label(), e.Detail)
}

// NewParseError builds a ParseError for kind at loc, optionally annotated
// with the offending text.
func NewParseError(kind ParseErrorKind, loc Location, detail string) *ParseError {
	return &ParseError{Kind: kind, Loc: loc, Detail: detail}
}

// TestErrorKind is the closed taxonomy of ways a single record can fail at
// run time. Every kind is fatal to the current record only; RunMulti
// surfaces the first one and stops.
type TestErrorKind int

const (
	// StatementOk: a statement, query or system command expected to fail
	// succeeded instead.
	StatementOk TestErrorKind = iota
	// StatementFail: a statement with no ExpectedError (expected to succeed,
	// or to produce a specific row count) failed.
	StatementFail
	// StatementResultMismatch: the observed row count disagreed with
	// ExpectedCount.
	StatementResultMismatch
	// QueryFail: a query (or a let's inner query) with no ExpectedError
	// failed.
	QueryFail
	// QueryResultMismatch: the produced rows disagreed with
	// ExpectedResults after the full compare pipeline.
	QueryResultMismatch
	// ErrorMismatch: an error was produced (statement, query, or system)
	// but its message didn't match ExpectedError's pattern.
	ErrorMismatch
	// ExpectedQueryGotStatement: a query record's adapter response was a
	// statement completion (Rows == nil) rather than a result set.
	ExpectedQueryGotStatement
	// LetRowCount: a Let's inner query didn't return exactly one row.
	LetRowCount
	// LetColumnCount: a Let's inner query's row didn't have len(VarNames)
	// columns.
	LetColumnCount
	// SystemCommandFail: a system directive with no ExpectedError exited
	// non-zero or could not be run.
	SystemCommandFail
	// SubstError: variable substitution failed against the current
	// record's SQL or command text.
	SubstError
)

func (k TestErrorKind) String() string {
	switch k {
	case StatementOk:
		return "statement unexpectedly succeeded"
	case StatementFail:
		return "statement failed"
	case StatementResultMismatch:
		return "statement result mismatch"
	case QueryFail:
		return "query failed"
	case QueryResultMismatch:
		return "query result mismatch"
	case ErrorMismatch:
		return "error message mismatch"
	case ExpectedQueryGotStatement:
		return "expected query result, got statement completion"
	case LetRowCount:
		return "let: expected exactly one row"
	case LetColumnCount:
		return "let: row/variable count mismatch"
	case SystemCommandFail:
		return "system command failed"
	case SubstError:
		return "substitution error"
	default:
		return "unknown test error"
	}
}

// TestError is a run-time failure for a single record, always anchored to
// the record's Location.
type TestError struct {
	Kind     TestErrorKind
	Loc      Location
	SQL      string
	Expected string
	Actual   string
	Err      error
}

func (e *TestError) Error() string {
	return fmt.Sprintf("test error at %s: %s", e.Loc, e.Kind)
}

func (e *TestError) Unwrap() error { return e.Err }

// NewTestError builds a TestError for kind at loc, optionally carrying the
// offending SQL/command text, the expected vs. actual comparison text, and
// a wrapped underlying adapter error.
func NewTestError(kind TestErrorKind, loc Location, sql, expected, actual string, err error) *TestError {
	return &TestError{Kind: kind, Loc: loc, SQL: sql, Expected: expected, Actual: actual, Err: err}
}
