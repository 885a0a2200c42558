package condition

import (
	"errors"
	"testing"
	"time"
)

func TestRule_Eval(t *testing.T) {
	t.Parallel()

	role := "admin"
	count := int64(3)
	var missing *string
	var choice any = "gold"
	values := map[string]any{
		"enabled":      true,
		"flag":         "true",
		"role":         &role,
		"count":        &count,
		"nickname":     missing,
		"tier":         &choice,
		"tags":         []any{"a"},
		"none":         []any{},
		"cta.headline": "Hello",
		"address": map[string]any{
			"city": "Lisbon",
		},
		"born": (*time.Time)(nil),
	}

	cases := []struct {
		expr string
		want bool
	}{
		{expr: "", want: true},
		{expr: "enabled", want: true},
		{expr: "!enabled", want: false},
		{expr: "enabled == true", want: true},
		{expr: "flag == true", want: true},
		{expr: `role == "admin"`, want: true},
		{expr: "role == 'admin'", want: true},
		{expr: "role != admin", want: false},
		{expr: "count == 3", want: true},
		{expr: "count != 3.5", want: true},
		{expr: "nickname == null", want: true},
		{expr: `nickname == ""`, want: true},
		{expr: "nickname", want: false},
		{expr: `tier == "gold"`, want: true},
		{expr: "tags", want: true},
		{expr: "none", want: false},
		{expr: `cta.headline != ""`, want: true},
		{expr: `address.city == "Lisbon"`, want: true},
		{expr: "address.zip", want: false},
		{expr: "born == nil", want: true},
		{expr: `enabled && role == "guest"`, want: false},
		{expr: `enabled && (role == "guest" || count == 3)`, want: true},
		{expr: "!(none || nickname)", want: true},
	}

	for _, tc := range cases {
		rule, err := Compile(tc.expr)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tc.expr, err)
		}
		got, err := rule.Eval(values)
		if err != nil {
			t.Fatalf("Eval(%q): %v", tc.expr, err)
		}
		if got != tc.want {
			t.Fatalf("Eval(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestCompile_SyntaxErrors(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{
		"a =",
		"a = b",
		"a & b",
		"a |",
		"(a",
		"a)",
		`a == "open`,
		"a ==",
		"a == (",
		"== a",
		"a == -x",
	} {
		if _, err := Compile(expr); !errors.Is(err, ErrSyntax) {
			t.Fatalf("Compile(%q): expected syntax error, got %v", expr, err)
		}
	}
}

func TestNilRuleHolds(t *testing.T) {
	t.Parallel()

	var rule *Rule
	ok, err := rule.Eval(nil)
	if err != nil || !ok {
		t.Fatalf("expected nil rule to hold, got %v %v", ok, err)
	}
	if got := MustCompile("  a  ").String(); got != "a" {
		t.Fatalf("unexpected source %q", got)
	}
}
