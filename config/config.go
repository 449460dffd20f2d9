// Package config reads settings from an optional file and the environment
// through viper, then validates them.
package config

import (
	"github.com/spf13/viper"

	"github.com/kochabx/ecies/core/validator"
)

// Source fills target with configuration values.
type Source interface {
	Load(target any) error
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(target any) error

// Load calls f(target).
func (f SourceFunc) Load(target any) error { return f(target) }

// Loader binds a destination struct to a Source. It reads once when Load is
// called and never touches the target afterwards.
type Loader struct {
	v         *viper.Viper
	validate  validator.Validator
	source    Source
	target    any
	file      string
	envPrefix string
	defaults  map[string]any
}

// Option configures a Loader.
type Option func(*Loader)

// WithViper replaces the viper instance used by the default source.
func WithViper(v *viper.Viper) Option {
	return func(l *Loader) { l.v = v }
}

// WithValidator replaces the struct validator. A nil validator skips
// validation.
func WithValidator(v validator.Validator) Option {
	return func(l *Loader) { l.validate = v }
}

// WithSource swaps the viper source for s.
func WithSource(s Source) Option {
	return func(l *Loader) { l.source = s }
}

// WithFile names the file read by the viper source.
func WithFile(file string) Option {
	return func(l *Loader) { l.file = file }
}

// WithEnvPrefix sets the environment prefix, e.g. ECIES.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) { l.envPrefix = prefix }
}

// WithDefaults registers default values keyed by dotted path. Viper only
// resolves environment variables for keys it knows, so every overridable
// field needs an entry here.
func WithDefaults(defaults map[string]any) Option {
	return func(l *Loader) {
		if l.defaults == nil {
			l.defaults = make(map[string]any, len(defaults))
		}
		for k, v := range defaults {
			l.defaults[k] = v
		}
	}
}

// New returns a Loader for target.
func New(target any, opts ...Option) *Loader {
	l := &Loader{
		v:        viper.New(),
		validate: validator.Default(),
		target:   target,
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.source == nil {
		l.source = &viperSource{
			v:         l.v,
			file:      l.file,
			envPrefix: l.envPrefix,
			defaults:  l.defaults,
		}
	}

	return l
}

// Load fills the target from the source and validates it.
func (l *Loader) Load() error {
	if err := l.source.Load(l.target); err != nil {
		return err
	}
	return l.check()
}

// Viper exposes the underlying viper instance.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}
