package graph

import "testing"

func TestSanitizeMermaidID_NoCollisions(t *testing.T) {
	names := []string{"a_b", "a-b", "a.b", "a/b", "a b", `a\b`}

	seen := map[string]string{}
	for _, name := range names {
		id := sanitizeMermaidID(name)
		if other, ok := seen[id]; ok {
			t.Errorf("%q and %q both map to %q", name, other, id)
		}
		seen[id] = name
	}

	if got := sanitizeMermaidID("plain"); got != "plain" {
		t.Errorf("sanitizeMermaidID(plain) = %q", got)
	}
	if sanitizeMermaidID("a-b") != sanitizeMermaidID("a-b") {
		t.Error("IDs must be stable")
	}
}
