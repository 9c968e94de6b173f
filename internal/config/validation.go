package config

import (
	"fmt"

	"github.com/gobwas/glob"

	"github.com/phobologic/swaglint/internal/metadata"
)

// Validate checks that every pattern compiles and every decorator is named.
func Validate(cfg *Config) error {
	if cfg.Scopes.File.PathPattern == "" {
		return fmt.Errorf("scopes.file.pathPattern is required")
	}
	if _, err := glob.Compile(cfg.Scopes.File.PathPattern, '/'); err != nil {
		return fmt.Errorf("scopes.file.pathPattern: %w", err)
	}

	ep := &cfg.Scopes.Endpoint
	rules := []struct {
		path string
		rule TextRule
	}{
		{"scopes.endpoint.summary", ep.Summary},
		{"scopes.endpoint.description", ep.Description},
		{"scopes.endpoint.payload.description", ep.Payload.Description},
		{"scopes.endpoint.query.description", ep.Query.Description},
		{"scopes.endpoint.params.description", ep.Params.Description},
	}
	for _, r := range rules {
		if err := metadata.Compile(r.rule.Pattern); err != nil {
			return fmt.Errorf("%s.pattern: %w", r.path, err)
		}
	}

	return validateDecorators(&cfg.Decorators)
}

func validateDecorators(d *DecoratorsConfig) error {
	names := []struct {
		path  string
		value string
	}{
		{"controller", d.Controller},
		{"operation", d.Operation},
		{"param", d.Param},
		{"body", d.Body},
		{"query", d.Query},
		{"path", d.Path},
	}
	for _, n := range names {
		if n.value == "" {
			return fmt.Errorf("decorators.%s is required", n.path)
		}
	}
	if len(d.Property) == 0 {
		return fmt.Errorf("decorators.property needs at least one name")
	}
	return nil
}
