package config

// defaults returns the built-in settings, the lowest configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"buffer": map[string]any{
			"growIncrement": 256,
			"pooled":        false,
		},
		"editor": map[string]any{
			"tabWidth":       4,
			"lineEnding":     "auto",
			"normalize":      "none",
			"maxUndo":        1000,
			"coalesceWindow": "1s",
		},
		"script": map[string]any{
			"instructionLimit": 1_000_000,
			"timeout":          "5s",
		},
		"bench": map[string]any{
			"operations": 100_000,
			"seed":       1,
			"locality":   0.9,
		},
	}
}
