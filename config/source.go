package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/kochabx/ecies/errors"
)

// viperSource layers defaults, an optional file and the environment, in
// that order of precedence.
type viperSource struct {
	v         *viper.Viper
	file      string
	envPrefix string
	defaults  map[string]any
}

func (s *viperSource) Load(target any) error {
	for k, v := range s.defaults {
		s.v.SetDefault(k, v)
	}

	if s.envPrefix != "" {
		s.v.SetEnvPrefix(s.envPrefix)
	}
	s.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	s.v.AutomaticEnv()

	if s.file != "" {
		s.v.SetConfigFile(s.file)
		s.v.SetConfigType(strings.TrimPrefix(filepath.Ext(s.file), "."))
		if err := s.v.ReadInConfig(); err != nil {
			return errors.InvalidConfig("read %s", s.file).WithCause(err)
		}
	}

	if err := s.v.Unmarshal(target); err != nil {
		return errors.InvalidConfig("decode settings").WithCause(err)
	}
	return nil
}

// check runs struct tag validation on the target.
func (l *Loader) check() error {
	if l.validate == nil {
		return nil
	}
	if err := l.validate.Struct(l.target); err != nil {
		return errors.InvalidConfig("validate settings: %v", err).WithCause(err)
	}
	return nil
}
