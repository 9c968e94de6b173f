package config

import "github.com/knadh/koanf/v2"

// Config is the merged lint configuration.
type Config struct {
	Scopes     ScopesConfig     `koanf:"scopes" json:"scopes" yaml:"scopes"`
	Decorators DecoratorsConfig `koanf:"decorators" json:"decorators" yaml:"decorators"`

	k *koanf.Koanf
}

// ScopesConfig groups the file selection and the endpoint rules.
type ScopesConfig struct {
	File     FileScope     `koanf:"file" json:"file" yaml:"file"`
	Endpoint EndpointScope `koanf:"endpoint" json:"endpoint" yaml:"endpoint"`
}

// FileScope selects the files that are linted.
type FileScope struct {
	// PathPattern is a glob relative to the lint root.
	PathPattern string `koanf:"pathPattern" json:"pathPattern" yaml:"pathPattern"`
}

// EndpointScope holds the rules applied to every endpoint method.
type EndpointScope struct {
	Summary     TextRule  `koanf:"summary" json:"summary" yaml:"summary"`
	Description TextRule  `koanf:"description" json:"description" yaml:"description"`
	Payload     InputRule `koanf:"payload" json:"payload" yaml:"payload"`
	Query       InputRule `koanf:"query" json:"query" yaml:"query"`
	Params      ParamRule `koanf:"params" json:"params" yaml:"params"`
}

// TextRule checks a string metadata value. An empty Pattern disables the
// pattern check.
type TextRule struct {
	Check      bool   `koanf:"check" json:"check" yaml:"check"`
	CheckEmpty bool   `koanf:"checkEmpty" json:"checkEmpty" yaml:"checkEmpty"`
	Pattern    string `koanf:"pattern" json:"pattern" yaml:"pattern"`
}

// Toggle switches a presence check on or off.
type Toggle struct {
	Check bool `koanf:"check" json:"check" yaml:"check"`
}

// InputRule configures the checks on request body or query DTO fields.
type InputRule struct {
	Check       bool     `koanf:"check" json:"check" yaml:"check"`
	Description TextRule `koanf:"description" json:"description" yaml:"description"`
	Example     Toggle   `koanf:"example" json:"example" yaml:"example"`
	Type        Toggle   `koanf:"type" json:"type" yaml:"type"`
}

// ParamRule configures the checks on path parameters.
type ParamRule struct {
	Check       bool     `koanf:"check" json:"check" yaml:"check"`
	Description TextRule `koanf:"description" json:"description" yaml:"description"`
	Example     Toggle   `koanf:"example" json:"example" yaml:"example"`
}

// DecoratorsConfig names the decorators the linter recognizes.
type DecoratorsConfig struct {
	Controller string   `koanf:"controller" json:"controller" yaml:"controller"`
	Operation  string   `koanf:"operation" json:"operation" yaml:"operation"`
	Param      string   `koanf:"param" json:"param" yaml:"param"`
	Body       string   `koanf:"body" json:"body" yaml:"body"`
	Query      string   `koanf:"query" json:"query" yaml:"query"`
	Path       string   `koanf:"path" json:"path" yaml:"path"`
	Property   []string `koanf:"property" json:"property" yaml:"property"`
}
