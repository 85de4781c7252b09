package config

// mergeConfigs merges override configuration into base
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}
	if override.Catalog != "" {
		result.Catalog = override.Catalog
	}

	// Merge generation settings
	if override.Generation.View != "" {
		result.Generation.View = override.Generation.View
	}
	if override.Generation.SkipConditionalFields {
		result.Generation.SkipConditionalFields = true
	}
	if override.Generation.FallbackDefinition != nil {
		result.Generation.FallbackDefinition = override.Generation.FallbackDefinition
	}
	if override.Generation.MaxDepth != 0 {
		result.Generation.MaxDepth = override.Generation.MaxDepth
	}

	// Merge output settings
	if override.Output.Dir != "" {
		result.Output.Dir = override.Output.Dir
	}
	if override.Output.Indent != "" {
		result.Output.Indent = override.Output.Indent
	}

	// Extension sections are replaced wholesale
	if len(override.Extensions) > 0 {
		merged := make(map[string]interface{}, len(base.Extensions)+len(override.Extensions))
		for k, v := range base.Extensions {
			merged[k] = v
		}
		for k, v := range override.Extensions {
			merged[k] = v
		}
		result.Extensions = merged
	}

	result.path = override.path
	return &result
}
