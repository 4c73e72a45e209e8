package sinkrules

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/chennbnbnb/JDoop-release/internal/records"
)

const ruleColumns = 3

var (
	argIndexPattern  = regexp.MustCompile(`^[0-9]\d*$`)
	signaturePattern = regexp.MustCompile(`^<(.*): (.*) (.*)\((.*)\)>`)
)

// Rule marks an argument of a method as a leaking sink.
type Rule struct {
	Label     string
	ArgIndex  int
	Signature string

	Class      string
	ReturnType string
	Method     string
	Params     string
}

// RuleError describes one invalid line of a rule file.
type RuleError struct {
	Path   string
	Line   int
	Text   string
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s:%d: [%s] format wrong: %s", e.Path, e.Line, e.Text, e.Reason)
}

// Parse checks a single row of a rule file.
func Parse(row records.Row) (Rule, error) {
	text := strings.Join(row.Fields, records.Separator)
	invalid := func(reason string) error {
		return &RuleError{Line: row.Line, Text: text, Reason: reason}
	}

	if len(row.Fields) != ruleColumns {
		return Rule{}, invalid(fmt.Sprintf("expected %d columns, got %d", ruleColumns, len(row.Fields)))
	}
	label, arg, sig := row.Fields[0], row.Fields[1], row.Fields[2]

	if !argIndexPattern.MatchString(arg) {
		return Rule{}, invalid("argument index is not a number")
	}
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return Rule{}, invalid("argument index is out of range")
	}

	m := signaturePattern.FindStringSubmatch(sig)
	if m == nil {
		return Rule{}, invalid("method signature is not of the form <Class: Type name(params)>")
	}
	if idx > strings.Count(m[4], ",") {
		return Rule{}, invalid(fmt.Sprintf("argument index %d exceeds the parameter list", idx))
	}

	return Rule{
		Label:      label,
		ArgIndex:   idx,
		Signature:  sig,
		Class:      m[1],
		ReturnType: m[2],
		Method:     m[3],
		Params:     m[4],
	}, nil
}

// Validate checks every row and returns the valid rules and every offending line.
func Validate(path string, rows []records.Row) ([]Rule, []*RuleError) {
	var (
		rules   []Rule
		invalid []*RuleError
	)
	for _, row := range rows {
		rule, err := Parse(row)
		if err != nil {
			re := err.(*RuleError)
			re.Path = path
			invalid = append(invalid, re)
			continue
		}
		rules = append(rules, rule)
	}
	return rules, invalid
}

// ValidateFile loads the rule file at path and validates it.
// The error is only set when the file cannot be read.
func ValidateFile(ctx context.Context, loader *records.Loader, path string) ([]Rule, []*RuleError, error) {
	rows, err := loader.Load(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	rules, invalid := Validate(path, rows)
	return rules, invalid, nil
}
