package rdf

import "testing"

func TestEnvironmentSetBase(t *testing.T) {
	env := NewEnvironment()
	if err := env.SetBase("http://example.org/a/"); err != nil {
		t.Fatal(err)
	}
	if env.Base() != "http://example.org/a/" {
		t.Errorf("Base() = %q", env.Base())
	}
	// relative @base resolves against the current base
	if err := env.SetBase("b/"); err != nil {
		t.Fatal(err)
	}
	if env.Base() != "http://example.org/a/b/" {
		t.Errorf("Base() after relative rebase = %q", env.Base())
	}
}

func TestEnvironmentResolve(t *testing.T) {
	env := NewEnvironment()
	if err := env.SetBase("http://example.org/a/b/"); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		in   string
		want string
	}{
		{"c", "http://example.org/a/b/c"},
		{"../d", "http://example.org/a/d"},
		{"/e", "http://example.org/e"},
		{"http://other.org/f", "http://other.org/f"},
		{"?q=1", "http://example.org/a/b/?q=1"},
	}
	for _, tt := range tests {
		got, err := env.Resolve(tt.in)
		if err != nil {
			t.Errorf("Resolve(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestEnvironmentResolveNoBase(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.Resolve("relative"); err == nil {
		t.Error("Resolve of a relative reference with no base set should fail")
	}
	got, err := env.Resolve("http://example.org/abs")
	if err != nil {
		t.Fatal(err)
	}
	if got != "http://example.org/abs" {
		t.Errorf("Resolve(absolute) = %q", got)
	}
}

func TestEnvironmentPrefixes(t *testing.T) {
	env := NewEnvironment()
	env.SetPrefix("foaf", "http://xmlns.com/foaf/0.1/")
	env.SetPrefix("ex", "http://example.org/")
	env.SetPrefix("foaf", "http://xmlns.com/foaf/0.1/") // redeclare, same value

	label, suffix, ok := env.Qualify("http://xmlns.com/foaf/0.1/name")
	if !ok || label != "foaf" || suffix != "name" {
		t.Errorf("Qualify() = %q, %q, %v", label, suffix, ok)
	}

	iri, err := env.Expand("ex", "thing")
	if err != nil {
		t.Fatal(err)
	}
	if iri != "http://example.org/thing" {
		t.Errorf("Expand() = %q", iri)
	}

	if _, _, ok := env.Qualify("http://unrelated.org/x"); ok {
		t.Error("Qualify on an unrelated IRI should fail")
	}

	if _, err := env.Expand("nope", "x"); err == nil {
		t.Error("Expand with an undeclared prefix should fail")
	}

	env.UnsetPrefix("ex")
	if _, err := env.Expand("ex", "thing"); err == nil {
		t.Error("Expand after UnsetPrefix should fail")
	}
}

// "a" is declared first and matches, but its suffix "ns/term" is not a
// valid local name, so Qualify goes on to "b".
func TestEnvironmentQualifySkipsUnusableSuffix(t *testing.T) {
	env := NewEnvironment()
	env.SetPrefix("a", "http://example.org/")
	env.SetPrefix("b", "http://example.org/ns/")

	label, suffix, ok := env.Qualify("http://example.org/ns/term")
	if !ok || label != "b" || suffix != "term" {
		t.Errorf("Qualify() = %q, %q, %v; want \"b\", \"term\", true", label, suffix, ok)
	}
}

func TestEnvironmentQualifyRejectsBadPNLocal(t *testing.T) {
	env := NewEnvironment()
	env.SetPrefix("a", "http://example.org/")

	// a trailing '.' would not lex back as PN_LOCAL
	if _, _, ok := env.Qualify("http://example.org/term."); ok {
		t.Error("Qualify should reject a suffix ending in '.'")
	}
}
