package execre

import (
	"errors"
	"testing"
)

func TestEscapeSource(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"", "(?:)"},
		{"abc", "abc"},
		{"a/b", `a\/b`},
		{`a\/b`, `a\/b`},
		{`a\\/b`, `a\\\/b`},
		{"//", `\/\/`},
		{`[/]`, `[\/]`},
	}
	for _, tt := range tests {
		if got := escapeSource(tt.pattern); got != tt.want {
			t.Errorf("escapeSource(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestTranslateSource(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"plain", "plain"},
		{`\u{1F603}`, `\x{1F603}`},
		{`\u00E9`, `\x{00E9}`},
		{`\u41`, `\x{41}`},
		{`a\u0041b`, `a\x{0041}b`},
		{`\cJ`, `\x0A`},
		{`\cj`, `\x0A`},
		{`\c1`, `\c1`},
		{`(?<year>\d{4})`, `(?P<year>\d{4})`},
		{`(?<=a)b`, `(?<=a)b`},
		{`(?<!a)b`, `(?<!a)b`},
		{`\\u0041`, `\\u0041`},
		{`\é`, `\é`},
		{`(a)(?:b)`, `(a)(?:b)`},
		{`a.b`, `a` + dotClass + `b`},
		{`.*`, dotClass + `*`},
		{`[.]`, `[.]`},
		{`\.`, `\.`},
		{`\s+`, `[` + whitespaceRanges + `]+`},
		{`\S`, `[` + nonWhitespaceRanges + `]`},
		{`[\s,]`, `[` + whitespaceRanges + `,]`},
		{`[^\S]`, `[^` + nonWhitespaceRanges + `]`},
		{`[\b]\b`, `[\x08]\b`},
		{`[(?<x>.)]`, `[(?<x>.)]`},
		{`[].]`, `[].]`},
		{`[^].].`, `[^].]` + dotClass},
		{`[[:alpha:].]`, `[[:alpha:].]`},
		{`[a\]].`, `[a\]]` + dotClass},
	}
	for _, tt := range tests {
		if got := translateSource(tt.src); got != tt.want {
			t.Errorf("translateSource(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestTranslatedEscapesMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    string
	}{
		{`\u{1F603}+`, "x\U0001F603\U0001F603", "\U0001F603\U0001F603"},
		{`caf\u00E9`, "café", "café"},
		{`a\cJb`, "a\nb", "a\nb"},
		{`(?<d>\d)\/`, "x4/", "4/"},
		{`a/b`, "a/b", "a/b"},
		{`a.c`, "a\rc a\u2028c abc", "abc"},
		{`.+`, "\u2029ab\ncd", "ab"},
		{`\s+`, "x\u00a0\u3000\ufeff\vy", "\u00a0\u3000\ufeff\v"},
		{`\S+`, " \u00a0ab\u2028", "ab"},
		{`[\s]+`, "x\u2000\u200ay", "\u2000\u200a"},
		{`[^\s]+`, "\u1680\u00e9\u1680", "\u00e9"},
		{`[\b]`, "a\bb", "\b"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			m := mustExec(t, mustNew(t, tt.pattern, ""), tt.input)
			if m == nil || m.Text() != tt.want {
				t.Fatalf("Exec(%q) = %v, want %q", tt.input, m, tt.want)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		in      string
		want    flags
		canon   string
		wantErr bool
	}{
		{"", flags{}, "u", false},
		{"u", flags{}, "u", false},
		{"g", flags{global: true}, "gu", false},
		{"yig", flags{global: true, ignoreCase: true, sticky: true}, "giuy", false},
		{"mygui", flags{true, true, true, true}, "gimuy", false},
		{"gg", flags{}, "", true},
		{"x", flags{}, "", true},
		{"G", flags{}, "", true},
		{"gé", flags{}, "", true},
	}
	for _, tt := range tests {
		f, err := parseFlags(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidFlag) {
				t.Errorf("parseFlags(%q) error = %v, want ErrInvalidFlag", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseFlags(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if f != tt.want {
			t.Errorf("parseFlags(%q) = %+v, want %+v", tt.in, f, tt.want)
		}
		if f.String() != tt.canon {
			t.Errorf("parseFlags(%q).String() = %q, want %q", tt.in, f.String(), tt.canon)
		}
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		flags   string
		wantErr error
	}{
		{"unbalanced paren", "a(", "", ErrInvalidPattern},
		{"bad class", "[a", "", ErrInvalidPattern},
		{"duplicate name", `(?<x>a)(?<x>b)`, "", ErrDuplicateName},
		{"bad flag", "a", "q", ErrInvalidFlag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.pattern, tt.flags)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New(%q, %q) error = %v, want %v", tt.pattern, tt.flags, err, tt.wantErr)
			}
			var cerr *CompileError
			if !errors.As(err, &cerr) {
				t.Fatalf("error %T is not *CompileError", err)
			}
			if cerr.Index != -1 {
				t.Errorf("Index = %d, want -1 for a single pattern", cerr.Index)
			}
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustNew did not panic on an invalid pattern")
		}
	}()
	MustNew("(", "")
}

func TestAccessors(t *testing.T) {
	re := mustNew(t, "a/(?<n>b)(c)", "my")
	if got, want := re.Source(), `a\/(?<n>b)(c)`; got != want {
		t.Errorf("Source() = %q, want %q", got, want)
	}
	if got, want := re.InternalSource(), `a\/(?P<n>b)(c)`; got != want {
		t.Errorf("InternalSource() = %q, want %q", got, want)
	}
	if got, want := re.String(), `/a\/(?<n>b)(c)/muy`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if re.Global() || re.IgnoreCase() || !re.Multiline() || !re.Sticky() || !re.Unicode() {
		t.Errorf("flag accessors disagree with %q", re.Flags())
	}
	if re.IsSet() || re.NumPatterns() != 1 {
		t.Errorf("IsSet() = %v, NumPatterns() = %d", re.IsSet(), re.NumPatterns())
	}
	if re.NumSubexp(0) != 2 {
		t.Errorf("NumSubexp(0) = %d, want 2", re.NumSubexp(0))
	}
	names := re.SubexpNames(0)
	if len(names) != 3 || names[0] != "" || names[1] != "n" || names[2] != "" {
		t.Errorf("SubexpNames(0) = %q", names)
	}
	names[1] = "mutated"
	if re.SubexpNames(0)[1] != "n" {
		t.Error("SubexpNames returned shared storage")
	}

	empty := mustNew(t, "", "g")
	if empty.String() != "/(?:)/gu" {
		t.Errorf("empty String() = %q", empty.String())
	}
}

func TestQuoteMeta(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"a.b/c", `a\.b\/c`},
		{`1+1=2?`, `1\+1=2\?`},
		{`[x]{y}(z)|^$\`, `\[x\]\{y\}\(z\)\|\^\$\\`},
	}
	for _, tt := range tests {
		got := QuoteMeta(tt.in)
		if got != tt.want {
			t.Errorf("QuoteMeta(%q) = %q, want %q", tt.in, got, tt.want)
			continue
		}
		m := mustExec(t, mustNew(t, got, ""), "<"+tt.in+">")
		if m == nil || m.Text() != tt.in {
			t.Errorf("quoted pattern %q does not match its input literally", got)
		}
	}
}
