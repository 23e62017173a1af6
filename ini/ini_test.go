// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseText(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		want      map[string]map[string]string
		canonical string
	}{
		{
			name: "Empty",
			want: map[string]map[string]string{"": {}},
		},
		{
			name:   "EmptyWithNewline",
			source: "\n",
			want:   map[string]map[string]string{"": {}},
		},
		{
			name:   "Single",
			source: "host = localhost",
			want: map[string]map[string]string{
				"": {"host": "localhost"},
			},
			canonical: "host = localhost\n",
		},
		{
			name:   "NoSpaces",
			source: "FOO=bar\n",
			want: map[string]map[string]string{
				"": {"FOO": "bar"},
			},
			canonical: "FOO = bar\n",
		},
		{
			name:   "SectionOnly",
			source: "[Section]",
			want: map[string]map[string]string{
				"":        {},
				"Section": {},
			},
			canonical: "\n[Section]\n",
		},
		{
			name:   "Colon",
			source: "[T]\nk: v",
			want: map[string]map[string]string{
				"":  {},
				"T": {"k": "v"},
			},
			canonical: "\n[T]\nk = v\n",
		},
		{
			name:   "SurroundingWhitespace",
			source: "[T]\n  key1   =   value1  ",
			want: map[string]map[string]string{
				"":  {},
				"T": {"key1": "value1"},
			},
			canonical: "\n[T]\nkey1 = value1\n",
		},
		{
			name:   "Tabs",
			source: "\tkey\t=\tvalue\t\n",
			want: map[string]map[string]string{
				"": {"key": "value"},
			},
			canonical: "key = value\n",
		},
		{
			name:   "InlineHashComment",
			source: "key = value # comment",
			want: map[string]map[string]string{
				"": {"key": "value"},
			},
			canonical: "key = value\n",
		},
		{
			name:   "InlineSemicolonComment",
			source: "key = value ; comment",
			want: map[string]map[string]string{
				"": {"key": "value"},
			},
			canonical: "key = value\n",
		},
		{
			name:   "CommentLines",
			source: "; This explains everything!\n# ... 42\nk = v\n",
			want: map[string]map[string]string{
				"": {"k": "v"},
			},
			canonical: "k = v\n",
		},
		{
			name:   "OnlyComments",
			source: "; This explains everything!\n# ... 42\n",
			want:   map[string]map[string]string{"": {}},
		},
		{
			name:   "EmptyValue",
			source: "[T]\nkey =",
			want: map[string]map[string]string{
				"":  {},
				"T": {"key": ""},
			},
			canonical: "\n[T]\nkey = \n",
		},
		{
			name:   "EmptyValueBeforeComment",
			source: "key = # nothing here\n",
			want: map[string]map[string]string{
				"": {"key": ""},
			},
			canonical: "key = \n",
		},
		{
			name:   "CRLF",
			source: "a = 1\r\n\r\nb = 2\r\n",
			want: map[string]map[string]string{
				"": {"a": "1", "b": "2"},
			},
			canonical: "a = 1\nb = 2\n",
		},
		{
			name:   "DefaultAndSections",
			source: "g = 1\n[a]\nx = 1\n\n\n[b]\ny = 2\n",
			want: map[string]map[string]string{
				"":  {"g": "1"},
				"a": {"x": "1"},
				"b": {"y": "2"},
			},
			canonical: "g = 1\n\n[a]\nx = 1\n\n[b]\ny = 2\n",
		},
		{
			name:   "ReopenedSection",
			source: "[a]\nx = 1\n[b]\ny = 2\n[a]\nz = 3\n",
			want: map[string]map[string]string{
				"":  {},
				"a": {"x": "1", "z": "3"},
				"b": {"y": "2"},
			},
			canonical: "\n[a]\nx = 1\nz = 3\n\n[b]\ny = 2\n",
		},
		{
			name:   "EmptySectionName",
			source: "k = 1\n[a]\nx = 1\n[]\nj = 2\n",
			want: map[string]map[string]string{
				"":  {"k": "1", "j": "2"},
				"a": {"x": "1"},
			},
			canonical: "k = 1\nj = 2\n\n[a]\nx = 1\n",
		},
		{
			name:   "SectionNameWhitespace",
			source: "  [  foo bar  ] \nbaz=quux\n",
			want: map[string]map[string]string{
				"":        {},
				"foo bar": {"baz": "quux"},
			},
			canonical: "\n[foo bar]\nbaz = quux\n",
		},
		{
			name:   "SectionNamesAreCaseSensitive",
			source: "[A]\nk = 1\n[a]\nk = 2\n",
			want: map[string]map[string]string{
				"":  {},
				"A": {"k": "1"},
				"a": {"k": "2"},
			},
			canonical: "\n[A]\nk = 1\n\n[a]\nk = 2\n",
		},
		{
			name:   "Unicode",
			source: "[日本]\nキー = 値\nclé: été\n",
			want: map[string]map[string]string{
				"":   {},
				"日本": {"キー": "値", "clé": "été"},
			},
			canonical: "\n[日本]\nキー = 値\nclé = été\n",
		},
		{
			name:   "SeparatorsInValue",
			source: "url = http://example.com/?a=b",
			want: map[string]map[string]string{
				"": {"url": "http://example.com/?a=b"},
			},
			canonical: "url = http://example.com/?a=b\n",
		},
		{
			name:   "ColonEndsKey",
			source: "a:b = c",
			want: map[string]map[string]string{
				"": {"a": "b = c"},
			},
			canonical: "a = b = c\n",
		},
		{
			name:   "NoEscapes",
			source: `path = C:\new\table "quoted"`,
			want: map[string]map[string]string{
				"": {"path": `C:\new\table "quoted"`},
			},
			canonical: `path = C:\new\table "quoted"` + "\n",
		},
		{
			name:   "StrayAssign",
			source: "= orphan\nk = v\n",
			want: map[string]map[string]string{
				"": {"k": "v"},
			},
			canonical: "k = v\n",
		},
		{
			name:   "AbsentValueOverwrites",
			source: "[T]\nk = 1\nk =\n",
			want: map[string]map[string]string{
				"":  {},
				"T": {"k": ""},
			},
			canonical: "\n[T]\nk = \n",
		},
		{
			name:   "TabsInSectionHeader",
			source: "[\ts\t]\n\tk\t:\tv\t\n",
			want: map[string]map[string]string{
				"":  {},
				"s": {"k": "v"},
			},
			canonical: "\n[s]\nk = v\n",
		},
		{
			name:   "VerticalTabBeforeBracket",
			source: "\v[x = 1\n",
			want: map[string]map[string]string{
				"": {"\v[x": "1"},
			},
			canonical: "\v[x = 1\n",
		},
		{
			name:   "VerticalTabBeforeHash",
			source: "\v#k = 1\n",
			want: map[string]map[string]string{
				"": {"\v#k": "1"},
			},
			canonical: "\v#k = 1\n",
		},
		{
			name:   "NoBreakSpaceKey",
			source: "\u00a0= v\n",
			want: map[string]map[string]string{
				"": {"\u00a0": "v"},
			},
			canonical: "\u00a0 = v\n",
		},
		{
			name:   "FormFeedKey",
			source: "\f= v\n",
			want: map[string]map[string]string{
				"": {"\f": "v"},
			},
			canonical: "\f = v\n",
		},
		{
			name:   "FormFeedValue",
			source: "k =\f\n",
			want: map[string]map[string]string{
				"": {"k": "\f"},
			},
			canonical: "k = \f\n",
		},
		{
			name:   "NoBreakSpaceSection",
			source: "[ \u00a0x ]\n",
			want: map[string]map[string]string{
				"":        {},
				"\u00a0x": {},
			},
			canonical: "\n[\u00a0x]\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m, err := ParseText(test.source)
			if err != nil {
				t.Fatal("ParseText:", err)
			}
			if diff := cmp.Diff(test.want, m.Values(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("values (-want +got):\n%s", diff)
			}
			for _, name := range m.Sections() {
				if !IsValidSection(name) {
					t.Errorf("section %q is not a valid section name", name)
				}
				for _, k := range m.Section(name).Keys() {
					if !IsValidKey(k) {
						t.Errorf("key %q in section [%s] is not a valid key", k, name)
					}
					if v := m.Get(name, k); !IsValidValue(v) {
						t.Errorf("value %q of key %q is not a valid value", v, k)
					}
				}
			}
			got := Serialize(m)
			if diff := cmp.Diff(test.canonical, got); diff != "" {
				t.Errorf("Serialize (-want +got):\n%s", diff)
			}

			t.Run("RoundTrip", func(t *testing.T) {
				m2, err := ParseText(got)
				if err != nil {
					t.Fatal("ParseText:", err)
				}
				if diff := cmp.Diff(m.Values(), m2.Values(), cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("values after round-trip (-want +got):\n%s", diff)
				}
				if diff := cmp.Diff(test.canonical, Serialize(m2)); diff != "" {
					t.Errorf("Serialize after round-trip (-want +got):\n%s", diff)
				}
			})
		})
	}
}

func TestParseTextErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   *SyntaxError
		msg    string
	}{
		{
			name:   "DuplicateKey",
			source: "[T]\nk = 1\nk = 2",
			want:   &SyntaxError{Pos: Position{3, 1}, Msg: "duplicate key 'k' in section [T]"},
			msg:    "ini: duplicate key 'k' in section [T] at line 3",
		},
		{
			name:   "DuplicateKeyInDefaultSection",
			source: "k = 1\nk = 1\n",
			want:   &SyntaxError{Pos: Position{2, 1}, Msg: "duplicate key 'k' in section []"},
			msg:    "ini: duplicate key 'k' in section [] at line 2",
		},
		{
			name:   "DuplicateKeyAcrossReopenedSection",
			source: "[a]\nx = 1\n[b]\n[a]\n  x = 2\n",
			want:   &SyntaxError{Pos: Position{5, 3}, Msg: "duplicate key 'x' in section [a]"},
			msg:    "ini: duplicate key 'x' in section [a] at line 5",
		},
		{
			name:   "DuplicateAfterEmptyValue",
			source: "k =\nk = 2\n",
			want:   &SyntaxError{Pos: Position{2, 1}, Msg: "duplicate key 'k' in section []"},
			msg:    "ini: duplicate key 'k' in section [] at line 2",
		},
		{
			name:   "UnclosedSectionAtEOF",
			source: "[Section",
			want:   &SyntaxError{Pos: Position{1, 1}, AtEOF: true, Msg: "unclosed section header"},
			msg:    "ini: unclosed section header at end of file (started at line 1)",
		},
		{
			name:   "UnclosedSectionAtEOL",
			source: "a = 1\n [Section\nk = v\n",
			want:   &SyntaxError{Pos: Position{2, 2}, Msg: "unclosed section header"},
			msg:    "ini: unclosed section header at line 2",
		},
		{
			name:   "MissingAssign",
			source: "FOO\n",
			want:   &SyntaxError{Pos: Position{1, 1}, Msg: "expected '=' after key 'FOO'"},
			msg:    "ini: expected '=' after key 'FOO' at line 1",
		},
		{
			name:   "MissingAssignAtEOF",
			source: "a = 1\nFOO",
			want:   &SyntaxError{Pos: Position{2, 1}, Msg: "expected '=' after key 'FOO'"},
			msg:    "ini: expected '=' after key 'FOO' at line 2",
		},
		{
			name:   "TextAfterSectionHeader",
			source: "[a] b\n",
			want:   &SyntaxError{Pos: Position{1, 5}, Msg: "expected '=' after key 'b'"},
			msg:    "ini: expected '=' after key 'b' at line 1",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m, err := ParseText(test.source)
			if err == nil {
				t.Fatalf("ParseText(%q) = %v, <nil>; want error", test.source, m.Values())
			}
			if m != nil {
				t.Errorf("ParseText(%q) returned non-nil map with error", test.source)
			}
			var got *SyntaxError
			if !errors.As(err, &got) {
				t.Fatalf("ParseText(%q) error = %v; want *SyntaxError", test.source, err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("error (-want +got):\n%s", diff)
			}
			if got := err.Error(); got != test.msg {
				t.Errorf("err.Error() = %q; want %q", got, test.msg)
			}
		})
	}
}

func TestParseTextUnclosedMentionsLine(t *testing.T) {
	_, err := ParseText("[Section")
	if err == nil {
		t.Fatal("ParseText did not return error")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "unclosed") {
		t.Errorf("err = %q; want it to mention \"unclosed\"", err)
	}
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) || syntaxErr.Line() != 1 {
		t.Errorf("err = %#v; want *SyntaxError at line 1", err)
	}
}

func TestParseTextSeparatorsAreInterchangeable(t *testing.T) {
	colon, err := ParseText("[T]\nk: v")
	if err != nil {
		t.Fatal(err)
	}
	equals, err := ParseText("[T]\nk = v")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := colon.Get("T", "k"), equals.Get("T", "k"); got != want || got != "v" {
		t.Errorf("colon value = %q, equals value = %q; want both %q", got, want, "v")
	}
}

func TestParseTextEmptyValueIsPresent(t *testing.T) {
	m, err := ParseText("[T]\nkey =")
	if err != nil {
		t.Fatal(err)
	}
	v, ok := m.Lookup("T", "key")
	if !ok || v != "" {
		t.Errorf("m.Lookup(\"T\", \"key\") = %q, %t; want \"\", true", v, ok)
	}
	if _, ok := m.Lookup("T", "other"); ok {
		t.Error("m.Lookup(\"T\", \"other\") reported a missing key as present")
	}
}

func TestParseTextSectionOrder(t *testing.T) {
	m, err := ParseText("[zeta]\n[alpha]\nb = 2\na = 1\n[mid]\n[alpha]\nc = 3\n")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"", "zeta", "alpha", "mid"}, m.Sections()); diff != "" {
		t.Errorf("m.Sections() (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, m.Section("alpha").Keys()); diff != "" {
		t.Errorf("m.Section(\"alpha\").Keys() (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		want   map[string]map[string]string
	}{
		{
			name: "Nil",
			want: map[string]map[string]string{"": {}},
		},
		{
			name: "NoEndOfInput",
			tokens: []Token{
				{Kind: Key, Text: "a"},
				{Kind: Assign, Text: "="},
				{Kind: Value, Text: "1"},
			},
			want: map[string]map[string]string{"": {"a": "1"}},
		},
		{
			name: "StopsAtEndOfInput",
			tokens: []Token{
				{Kind: Key, Text: "a"},
				{Kind: Assign, Text: "="},
				{Kind: Value, Text: "1"},
				{Kind: EndOfInput},
				{Kind: SectionHeader, Text: "ignored"},
			},
			want: map[string]map[string]string{"": {"a": "1"}},
		},
		{
			name: "StrayTokens",
			tokens: []Token{
				{Kind: Assign, Text: ":"},
				{Kind: Value, Text: "orphan"},
				{Kind: Comment, Text: "note"},
				{Kind: LineBreak, Text: "\n"},
				{Kind: SectionHeader, Text: "s"},
				{Kind: Key, Text: "k"},
				{Kind: Assign, Text: "="},
				{Kind: EndOfInput},
			},
			want: map[string]map[string]string{
				"":  {},
				"s": {"k": ""},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m, err := Parse(test.tokens)
			if err != nil {
				t.Fatal("Parse:", err)
			}
			if diff := cmp.Diff(test.want, m.Values(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("values (-want +got):\n%s", diff)
			}
		})
	}
}
