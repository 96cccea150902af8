// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

func TestCheckFileSize(t *testing.T) {
	if err := CheckFileSize(make([]byte, 10), 10, "f.cue"); err != nil {
		t.Errorf("size at limit should pass: %v", err)
	}
	if err := CheckFileSize(make([]byte, 11), 10, "f.cue"); err == nil {
		t.Error("expected error above limit")
	}
}

func TestFormatErrorNil(t *testing.T) {
	if got := FormatError(nil, "f.cue"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestFormatErrorIncludesPath(t *testing.T) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(`#C: { policy: "warn" | "fail" }`)
	user := ctx.CompileString(`policy: "strict"`)
	unified := schema.LookupPath(cue.ParsePath("#C")).Unify(user)

	err := unified.Validate(cue.Concrete(false))
	if err == nil {
		t.Fatal("expected a validation error")
	}

	formatted := FormatError(err, "config.cue")
	if !strings.Contains(formatted.Error(), "config.cue") {
		t.Errorf("missing file path in %q", formatted.Error())
	}
	if !strings.Contains(formatted.Error(), "policy") {
		t.Errorf("missing field path in %q", formatted.Error())
	}
}

func TestFormatPath(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"tool"}, "tool"},
		{[]string{"verify", "policy"}, "verify.policy"},
		{[]string{"steps", "0", "name"}, "steps[0].name"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.in); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
