package admonition

import "testing"

func assign(t *testing.T, g *Registry, block *Resolved) string {
	t.Helper()
	id, err := g.Assign(block)
	if err != nil {
		t.Fatalf("Assign(%+v) failed: %v", block, err)
	}
	return id
}

func TestRegistryDeduplication(t *testing.T) {
	g := NewRegistry()

	first := assign(t, g, &Resolved{Title: "Info", ID: AnchorID{Prefix: "admonition-"}})
	second := assign(t, g, &Resolved{Title: "Info", ID: AnchorID{Prefix: "admonition-"}})
	third := assign(t, g, &Resolved{Title: "Info", ID: AnchorID{Prefix: "admonition-"}})

	if first != "admonition-info" {
		t.Errorf("first id: got %q, want %q", first, "admonition-info")
	}
	if second != "admonition-info-2" {
		t.Errorf("second id: got %q, want %q", second, "admonition-info-2")
	}
	if third != "admonition-info-3" {
		t.Errorf("third id: got %q, want %q", third, "admonition-info-3")
	}
}

func TestRegistryVerbatimID(t *testing.T) {
	g := NewRegistry()

	id := assign(t, g, &Resolved{Title: "Anything", ID: AnchorID{Verbatim: "My Exact Id"}})
	if id != "My Exact Id" {
		t.Errorf("verbatim id altered: got %q", id)
	}

	// a later generated id must still avoid the registered verbatim one
	id = assign(t, g, &Resolved{Title: "My Exact Id", ID: AnchorID{Prefix: ""}})
	if id != "my-exact-id" {
		t.Errorf("got %q, want %q", id, "my-exact-id")
	}
}

func TestRegistrySlugFallbacks(t *testing.T) {
	cases := []struct {
		name  string
		block Resolved
		want  string
	}{
		{"title slug", Resolved{Title: "Data loss!", ID: AnchorID{Prefix: "admonition-"}}, "admonition-data-loss"},
		{"non-ascii transliterated", Resolved{Title: "Café räksmörgås", ID: AnchorID{Prefix: "admonition-"}}, "admonition-cafe-raksmorgas"},
		{"empty title uses directive", Resolved{Directive: "warning", ID: AnchorID{Prefix: "admonition-"}}, "admonition-warning"},
		{"nothing slugs at all", Resolved{Title: "!!!", Directive: "???", ID: AnchorID{Prefix: "admonition-"}}, "admonition-default"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := NewRegistry()
			if id := assign(t, g, &c.block); id != c.want {
				t.Errorf("got %q, want %q", id, c.want)
			}
		})
	}
}

func TestRegistryRunsAreIndependent(t *testing.T) {
	block := Resolved{Title: "Info", ID: AnchorID{Prefix: "admonition-"}}

	for run := 0; run < 3; run++ {
		g := NewRegistry()
		b := block
		if id := assign(t, g, &b); id != "admonition-info" {
			t.Fatalf("run %d: got %q, registries leak state", run, id)
		}
	}
}
