package rill

import (
	"strings"
	"testing"

	"github.com/lyraproj/issue/issue"
)

func TestCategoryByPrefix(t *testing.T) {
	cases := map[issue.Code]string{
		LexMalformedToken:    `lexical`,
		ParseUnexpectedToken: `syntactic`,
		UnknownVariable:      `runtime`,
		`X_WHAT`:             `unknown`,
		``:                   `unknown`,
	}
	for code, expected := range cases {
		if c := Category(code); c != expected {
			t.Errorf(`Category(%q) = %q, expected %q`, code, c, expected)
		}
	}
}

func TestErrorFormatsArguments(t *testing.T) {
	err := Error(nil, UnknownVariable, issue.H{`name`: `x`})
	if !strings.Contains(err.Error(), `undefined variable 'x'`) {
		t.Errorf(`unexpected message %q`, err.Error())
	}
	if err.Code() != UnknownVariable {
		t.Errorf(`unexpected code %s`, err.Code())
	}
	if err.Severity() != issue.SeverityError {
		t.Errorf(`unexpected severity %d`, err.Severity())
	}
}

func TestArticleFormatting(t *testing.T) {
	err := Error(nil, NotIterable, issue.H{`actual`: `iterator`})
	if !strings.Contains(err.Error(), `an iterator is not iterable`) {
		t.Errorf(`unexpected message %q`, err.Error())
	}
}

func TestArrayLoggerCollectsByLevel(t *testing.T) {
	l := NewArrayLogger()
	l.Logf(INFO, `hello`)
	l.Logf(ERR, `bad %s`, `thing`)
	if entries := l.Entries(INFO); len(entries) != 1 || entries[0] != `hello` {
		t.Errorf(`unexpected info entries %v`, entries)
	}
	if entries := l.Entries(ERR); len(entries) != 1 || entries[0] != `bad thing` {
		t.Errorf(`unexpected error entries %v`, entries)
	}
}
