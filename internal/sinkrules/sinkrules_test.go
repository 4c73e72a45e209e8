package sinkrules

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chennbnbnb/JDoop-release/internal/records"
)

func rowOf(line int, text string) records.Row {
	return records.Row{Line: line, Fields: strings.Split(text, "\t")}
}

func TestParse(t *testing.T) {
	rule, err := Parse(rowOf(1, "Log\t1\t<org.slf4j.Logger: void info(java.lang.String,java.lang.Object)>"))
	require.NoError(t, err)

	assert.Equal(t, Rule{
		Label:      "Log",
		ArgIndex:   1,
		Signature:  "<org.slf4j.Logger: void info(java.lang.String,java.lang.Object)>",
		Class:      "org.slf4j.Logger",
		ReturnType: "void",
		Method:     "info",
		Params:     "java.lang.String,java.lang.Object",
	}, rule)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		reason string
	}{
		{"two columns", "Log\t0", "expected 3 columns, got 2"},
		{"four columns", "Log\t0\t<A: void f(int)>\textra", "expected 3 columns, got 4"},
		{"negative index", "Log\t-1\t<A: void f(int)>", "argument index is not a number"},
		{"word index", "Log\tone\t<A: void f(int)>", "argument index is not a number"},
		{"bad signature", "Log\t0\tA.f(int)", "method signature"},
		{"index past params", "Log\t1\t<A: void f(int)>", "argument index 1 exceeds the parameter list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(rowOf(4, tt.text))
			require.Error(t, err)

			re, ok := err.(*RuleError)
			require.True(t, ok)
			assert.Equal(t, 4, re.Line)
			assert.Equal(t, tt.text, re.Text)
			assert.Contains(t, re.Reason, tt.reason)
		})
	}
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LeakingSinkMethodArg.tsv")
	content := "Log\t0\t<A: void f(int)>\n\nLog\t3\t<A: void g(int,int)>\nHttp\t0\t<B: void send(byte[])>\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rules, invalid, err := ValidateFile(context.Background(), records.NewLoader(nil), path)
	require.NoError(t, err)

	require.Len(t, rules, 2)
	assert.Equal(t, "send", rules[1].Method)

	require.Len(t, invalid, 1)
	assert.Equal(t, path, invalid[0].Path)
	assert.Equal(t, 3, invalid[0].Line)
	assert.Equal(t, path+":3: [Log\t3\t<A: void g(int,int)>] format wrong: argument index 3 exceeds the parameter list", invalid[0].Error())
}

func TestValidateFileMissing(t *testing.T) {
	_, _, err := ValidateFile(context.Background(), records.NewLoader(nil), filepath.Join(t.TempDir(), "absent.tsv"))
	assert.Error(t, err)
}
