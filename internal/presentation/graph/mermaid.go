package graph

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/aretw0/switchboard/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of the toggle dependency graph.
// Shapes follow the toggle kind:
// - Established: ((Circle))
// - Date range: [/Parallelogram/]
// - Boolean: [Rectangle]
// Edges point from a dependency to the toggle that requires it. Each toggle is
// classed enabled or disabled by its evaluation at render time.
func GenerateMermaid(toggles []*domain.Toggle) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, t := range toggles {
		safeID := sanitizeMermaidID(t.Name())

		opener, closer := "[", "]"
		switch t.Kind() {
		case domain.KindEstablished:
			opener, closer = "((", "))"
		case domain.KindDateRange:
			opener, closer = "[/", "/]"
		}

		label := strings.ReplaceAll(t.Name(), "\"", "'")
		if t.Kind() == domain.KindDateRange {
			label += " <br/> " + window(t)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		for _, dep := range t.Dependencies() {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", sanitizeMermaidID(dep.Name()), safeID))
		}
	}

	if len(toggles) > 0 {
		sb.WriteString("\n    %% Status Styles\n")
		// Force black text (color:#000) for contrast regardless of theme.
		sb.WriteString("    classDef enabled fill:#c8e6c9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef disabled fill:#ffcdd2,stroke:#c62828,stroke-width:2px,color:#000;\n")

		for _, t := range toggles {
			class := "disabled"
			if t.IsEnabled() {
				class = "enabled"
			}
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", sanitizeMermaidID(t.Name()), class))
		}
	}

	return sb.String()
}

func window(t *domain.Toggle) string {
	from, until := "…", "…"
	if f := t.From(); f != nil {
		from = f.Format("2006-01-02")
	}
	if u := t.Until(); u != nil {
		until = u.Format("2006-01-02")
	}
	return from + " → " + until
}

// sanitizeMermaidID maps a toggle name to a Mermaid-safe node ID.
// Names that need rewriting get a short hash suffix, so "a-b", "a.b" and
// "a_b" stay distinct nodes.
func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	if s == id {
		return s
	}

	h := fnv.New32a()
	h.Write([]byte(id))
	return fmt.Sprintf("%s_%08x", s, h.Sum32())
}
