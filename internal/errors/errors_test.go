package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"config not found", "V100", "Configuration file not found", CategoryConfig},
		{"invalid value", "V102", "Invalid configuration value", CategoryConfig},
		{"unknown demo", "V120", "Unknown demo", CategoryCLI},
		{"unknown code", "V999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("V101").Wrap(stderrors.New("unexpected EOF"))
	want := "V101: Invalid configuration file: unexpected EOF"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorIsMatchesCode(t *testing.T) {
	err := New("V102").WithSuggestion("use a positive number")
	if !stderrors.Is(err, New("V102")) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, New("V101")) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "V101") != nil {
		t.Error("FromError(nil) should be nil")
	}
	orig := New("V100")
	if FromError(orig, "V101") != orig {
		t.Error("FromError should return *Error unchanged")
	}
	cause := stderrors.New("boom")
	wrapped := FromError(cause, "V121")
	if wrapped.Code != "V121" || !stderrors.Is(wrapped, cause) {
		t.Errorf("FromError = %+v, want code V121 wrapping cause", wrapped)
	}
}

func TestLocationString(t *testing.T) {
	tests := []struct {
		loc  *Location
		want string
	}{
		{nil, ""},
		{&Location{File: "vdom.json"}, "vdom.json"},
		{&Location{File: "vdom.yaml", Line: 3}, "vdom.yaml:3"},
		{&Location{File: "vdom.yaml", Line: 3, Column: 7}, "vdom.yaml:3:7"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("V101").
		WithLocation("vdom.yaml", 4, 0).
		WithSuggestion("check the indentation").
		Format()

	for _, want := range []string{
		"ERROR V101: Invalid configuration file",
		"vdom.yaml:4",
		"Hint: check the indentation",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	out := New("V120").WithSuggestion("run vdom demo --list").FormatJSON()
	for _, want := range []string{`"code":"V120"`, `"category":"cli"`, `"suggestion":"run vdom demo --list"`} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatJSON() missing %s in %s", want, out)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 9)
	for _, l := range lines {
		if len(l) > 9 {
			t.Errorf("line %q longer than 9", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}
