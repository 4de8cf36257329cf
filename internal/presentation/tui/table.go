package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/switchboard/pkg/domain"
	"github.com/muesli/termenv"
)

// Table renders toggle statuses as a markdown table.
func Table(statuses []domain.Status) string {
	if len(statuses) == 0 {
		return "_No toggles defined._\n"
	}

	var sb strings.Builder
	sb.WriteString("| Toggle | Kind | Enabled | Flag | Window | Depends on |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, s := range statuses {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %t | %s | %s |\n",
			escape(s.Name),
			s.Kind,
			yesNo(s.Enabled),
			s.BaseEnabled,
			window(s.From, s.Until),
			escape(strings.Join(s.Dependencies, ", ")),
		))
	}
	return sb.String()
}

// Badge returns a colored ON/OFF marker for the given profile.
// termenv.Ascii yields plain text.
func Badge(enabled bool, p termenv.Profile) string {
	if enabled {
		return p.String(" ON ").Foreground(p.Color("#000000")).Background(p.Color("#4ade80")).Bold().String()
	}
	return p.String(" OFF ").Foreground(p.Color("#ffffff")).Background(p.Color("#f87171")).Bold().String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func window(from, until *time.Time) string {
	if from == nil && until == nil {
		return ""
	}
	f, u := "…", "…"
	if from != nil {
		f = from.Format(time.RFC3339)
	}
	if until != nil {
		u = until.Format(time.RFC3339)
	}
	return f + " → " + u
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
