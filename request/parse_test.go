package request

import (
	"strings"
	"testing"
)

func mod(path string) Loader { return Loader{Path: path, Module: true} }

func file(path string) Loader { return Loader{Path: path, Module: false} }

func res(path, query string, module bool) *Resource {
	return &Resource{Path: path, Query: query, Module: module}
}

func TestParse_Corpus(t *testing.T) {
	tests := []struct {
		input string
		want  Request
	}{
		{
			input: "simple",
			want:  Request{Resource: res("simple", "", true)},
		},
		{
			input: "m1/a.js",
			want:  Request{Resource: res("m1/a.js", "", true)},
		},
		{
			input: "./simple",
			want:  Request{Resource: res("./simple", "", false)},
		},
		{
			input: "../simple",
			want:  Request{Resource: res("../simple", "", false)},
		},
		{
			input: "/home/me/simple",
			want:  Request{Resource: res("/home/me/simple", "", false)},
		},
		{
			input: `C:\windows\file.js`,
			want:  Request{Resource: res(`C:\windows\file.js`, "", false)},
		},
		{
			input: `..\..\file.js`,
			want:  Request{Resource: res(`..\..\file.js`, "", false)},
		},
		{
			input: "path?query",
			want:  Request{Resource: res("path", "?query", true)},
		},
		{
			input: "path?query?query",
			want:  Request{Resource: res("path", "?query?query", true)},
		},
		{
			input: "path?",
			want:  Request{Resource: res("path", "?", true)},
		},
		{
			input: `..\path?..\query?./query`,
			want:  Request{Resource: res(`..\path`, `?..\query?./query`, false)},
		},
		{
			input: "!noLoaders",
			want: Request{
				Loaders:  NewChain(),
				Resource: res("noLoaders", "", true),
			},
		},
		{
			input: "!noLoaders?query",
			want: Request{
				Loaders:  NewChain(),
				Resource: res("noLoaders", "?query", true),
			},
		},
		{
			input: "raw!./file",
			want: Request{
				Loaders:  NewChain(mod("raw")),
				Resource: res("./file", "", false),
			},
		},
		{
			input: "raw!val!raw!module/with/file",
			want: Request{
				Loaders:  NewChain(mod("raw"), mod("val"), mod("raw")),
				Resource: res("module/with/file", "", true),
			},
		},
		{
			input: "../raw!./val!/home/me/raw!..../doh",
			want: Request{
				Loaders:  NewChain(file("../raw"), file("./val"), file("/home/me/raw")),
				Resource: res("..../doh", "", true),
			},
		},
		{
			input: "raw!./loader?qqq!module/lib/file?query",
			want: Request{
				Loaders: NewChain(
					mod("raw"),
					Loader{Path: "./loader", Query: "?qqq", Module: false},
				),
				Resource: res("module/lib/file", "?query", true),
			},
		},
		{
			input: "raw!.scripted",
			want: Request{
				Loaders:  NewChain(mod("raw")),
				Resource: res(".scripted", "", true),
			},
		},
		{
			input: "loader!!./file",
			want: Request{
				Loaders:  NewChain(mod("loader")),
				Resource: res("./file", "", false),
			},
		},
		{
			input: "!!!loader1!!loader2!!./file",
			want: Request{
				Loaders:  NewChain(mod("loader1"), mod("loader2")),
				Resource: res("./file", "", false),
			},
		},
		{
			input: "loader!",
			want:  Request{Loaders: NewChain(mod("loader"))},
		},
		{
			input: "",
			want:  Request{},
		},
		{
			input: "!",
			want:  Request{Loaders: NewChain()},
		},
		{
			input: "!!!loader!!!",
			want:  Request{Loaders: NewChain(mod("loader"))},
		},
		{
			input: "!!!loader!!!?query",
			want: Request{
				Loaders:  NewChain(mod("loader")),
				Resource: res("", "?query", false),
			},
		},
		{
			input: "./a/loader!",
			want:  Request{Loaders: NewChain(file("./a/loader"))},
		},
		{
			input: "./a/loader!loader!",
			want:  Request{Loaders: NewChain(file("./a/loader"), mod("loader"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Parse(tt.input)
			if !Equal(got, tt.want) {
				t.Errorf("Parse(%q)\n got: %v\nwant: %v", tt.input, got.ToMap(), tt.want.ToMap())
			}
		})
	}
}

func TestParse_NullVersusEmptyChain(t *testing.T) {
	tests := []struct {
		input    string
		wantNull bool
		wantLen  int
	}{
		{"", true, 0},
		{"a", true, 0},
		{"a?b", true, 0},
		{"!", false, 0},
		{"!!", false, 0},
		{"!a", false, 0},
		{"?q!a", false, 0},
		{"a!b", false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := Parse(tt.input).Loaders
			if c.IsNull() != tt.wantNull {
				t.Errorf("IsNull() = %v, want %v", c.IsNull(), tt.wantNull)
			}

			if c.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", c.Len(), tt.wantLen)
			}

			loaders := c.Loaders()
			if tt.wantNull && loaders != nil {
				t.Errorf("Loaders() = %#v, want nil", loaders)
			}

			if !tt.wantNull && loaders == nil {
				t.Error("Loaders() = nil, want non-nil slice")
			}
		})
	}
}

func TestParse_QueryOnlyResource(t *testing.T) {
	r := Parse("!!!loader!!!?query")
	if r.Resource == nil {
		t.Fatal("expected resource")
	}

	if r.Resource.HasPath() {
		t.Errorf("expected no path, got %q", r.Resource.Path)
	}

	if _, ok := r.Resource.IsModule(); ok {
		t.Error("expected undefined module flag for query-only resource")
	}

	m, ok := r.ToMap()["resource"].(map[string]any)
	if !ok {
		t.Fatalf("resource map has type %T", r.ToMap()["resource"])
	}

	if m["path"] != nil || m["module"] != nil {
		t.Errorf("expected nil path and module, got %v", m)
	}

	if m["query"] != "?query" {
		t.Errorf("expected query %q, got %v", "?query", m["query"])
	}
}

func TestParse_PathlessLoaderSegment(t *testing.T) {
	r := Parse("?opts!./file")

	if r.Loaders.IsNull() {
		t.Fatal("expected non-null chain")
	}

	if r.Loaders.Len() != 0 {
		t.Errorf("expected path-less loader segment to be dropped, got %d loaders", r.Loaders.Len())
	}

	if r.Resource == nil || r.Resource.Path != "./file" {
		t.Errorf("unexpected resource %+v", r.Resource)
	}
}

func TestParse_LoaderQuerySplitsOnSeparator(t *testing.T) {
	r := Parse("a?x=1!b?y=2!c?z=3?w")

	want := []Loader{
		{Path: "a", Query: "?x=1", Module: true},
		{Path: "b", Query: "?y=2", Module: true},
	}

	got := r.Loaders.Loaders()
	if len(got) != len(want) {
		t.Fatalf("got %d loaders, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("loader %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if r.Resource == nil || *r.Resource != *res("c", "?z=3?w", true) {
		t.Errorf("unexpected resource %+v", r.Resource)
	}
}

func TestParse_DoesNotAliasInput(t *testing.T) {
	buf := []byte("raw!./file?q")
	r := Parse(string(buf))

	for i := range buf {
		buf[i] = 'x'
	}

	if r.Resource.Path != "./file" || r.Resource.Query != "?q" {
		t.Errorf("resource changed with input buffer: %+v", r.Resource)
	}
}

func TestParse_Concurrent(t *testing.T) {
	inputs := []string{"raw!./file", "!", "", "a!b!c?d", `C:\x`}
	done := make(chan struct{})

	for range 8 {
		go func() {
			defer func() { done <- struct{}{} }()

			for range 100 {
				for _, in := range inputs {
					if !Equal(Parse(in), Parse(in)) {
						t.Errorf("nondeterministic parse of %q", in)
					}
				}
			}
		}()
	}

	for range 8 {
		<-done
	}
}

func TestParseAll(t *testing.T) {
	ps := ParseAll("a!b", "", "./c")
	if len(ps) != 3 {
		t.Fatalf("got %d results, want 3", len(ps))
	}

	for i, id := range []string{"a!b", "", "./c"} {
		if ps[i].Identifier != id {
			t.Errorf("result %d identifier = %q, want %q", i, ps[i].Identifier, id)
		}

		if !Equal(ps[i].Request, Parse(id)) {
			t.Errorf("result %d request differs from Parse(%q)", i, id)
		}
	}
}

func TestIsModule(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"simple", true},
		{"m1/a.js", true},
		{".scripted", true},
		{"..../doh", true},
		{"...", true},
		{"C:", true},
		{"C:file", true},
		{"@scope/pkg", true},
		{"./simple", false},
		{".\\simple", false},
		{"../simple", false},
		{`..\..\file.js`, false},
		{"/home/me", false},
		{`\\server\share`, false},
		{`C:\windows`, false},
		{"c:/windows", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsModule(tt.path); got != tt.want {
				t.Errorf("IsModule(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsModule_Idempotent(t *testing.T) {
	inputs := []string{
		"raw!./loader?qqq!module/lib/file?query",
		"../raw!./val!/home/me/raw!..../doh",
		`C:\windows\file.js`,
		"raw!.scripted",
	}

	for _, in := range inputs {
		r := Parse(in)

		for _, l := range r.Loaders.All() {
			again := Parse(l.Path)
			if again.Resource == nil || again.Resource.Module != l.Module {
				t.Errorf("%q: loader %q module flag not idempotent", in, l.Path)
			}
		}

		if r.Resource != nil && r.Resource.HasPath() {
			again := Parse(r.Resource.Path)
			if again.Resource.Module != r.Resource.Module {
				t.Errorf("%q: resource %q module flag not idempotent", in, r.Resource.Path)
			}
		}
	}
}

func FuzzParse(f *testing.F) {
	for _, seed := range []string{
		"", "!", "?", "!?", "?!", "a!b?c!d?e?f", "!!!loader!!!?query",
		`C:\windows\file.js`, "../raw!./val!/home/me/raw!..../doh",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		r := Parse(s)

		if strings.ContainsRune(s, Separator) == r.Loaders.IsNull() {
			t.Fatalf("null chain mismatch for %q", s)
		}

		for _, l := range r.Loaders.All() {
			if l.Path == "" {
				t.Fatalf("empty loader path for %q", s)
			}

			if l.HasQuery() && l.Query[0] != QueryMark {
				t.Fatalf("loader query %q does not start with '?'", l.Query)
			}
		}

		if r.Resource != nil {
			if r.Resource.HasQuery() && r.Resource.Query[0] != QueryMark {
				t.Fatalf("resource query %q does not start with '?'", r.Resource.Query)
			}

			if !strings.HasSuffix(s, r.Resource.String()) {
				t.Fatalf("resource %q is not a suffix of %q", r.Resource, s)
			}
		}

		if again := Parse(r.String()); !Equal(r, again) {
			t.Fatalf("round trip of %q via %q changed result", s, r.String())
		}
	})
}

func BenchmarkParse(b *testing.B) {
	inputs := []string{
		"simple",
		"raw!./loader?qqq!module/lib/file?query",
		"!!!loader1!!loader2!!./file",
		`..\path?..\query?./query`,
	}

	b.ReportAllocs()

	for b.Loop() {
		for _, in := range inputs {
			_ = Parse(in)
		}
	}
}
