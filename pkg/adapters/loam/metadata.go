package loam

// ToggleMetadata is the header of a toggle document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
// Loosely typed fields are normalized by the compiler, which accepts the
// same date layouts and dependency shapes as file sources.
type ToggleMetadata struct {
	Name         string `json:"name" mapstructure:"name"`
	Enabled      any    `json:"enabled" mapstructure:"enabled"`
	Established  any    `json:"established" mapstructure:"established"`
	From         any    `json:"from" mapstructure:"from"`
	Until        any    `json:"until" mapstructure:"until"`
	Dependencies any    `json:"dependencies" mapstructure:"dependencies"`

	// Description is free text kept with the document; it does not affect evaluation.
	Description string `json:"description" mapstructure:"description"`
}

func (m ToggleMetadata) fields(name string) map[string]any {
	return map[string]any{
		"name":         name,
		"enabled":      m.Enabled,
		"established":  m.Established,
		"from":         m.From,
		"until":        m.Until,
		"dependencies": m.Dependencies,
	}
}
