package skilltext

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Go  ", "go"},
		{"Node.js, React/Vue", "node.js react vue"},
		{"C++ & C#", "c++ c#"},
		{"", ""},
		{"PostgreSQL;Redis", "postgresql redis"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestVariantsIncludeAliases(t *testing.T) {
	got := Variants("Go")
	if len(got) != 2 || got[0] != "go" || got[1] != "golang" {
		t.Fatalf("unexpected variants: %v", got)
	}
}

func TestVariantsUnknownSkill(t *testing.T) {
	got := Variants("Erlang")
	if len(got) != 1 || got[0] != "erlang" {
		t.Fatalf("unexpected variants: %v", got)
	}
}

func TestCanonicalFoldsAlias(t *testing.T) {
	if got := Canonical("k8s"); got != "kubernetes" {
		t.Fatalf("Canonical(k8s) = %q", got)
	}
	if got := Canonical("fortran"); got != "fortran" {
		t.Fatalf("Canonical(fortran) = %q", got)
	}
}
