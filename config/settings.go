package config

import (
	"github.com/kochabx/ecies/core/crypto/ecies"
	"github.com/kochabx/ecies/errors"
	"github.com/kochabx/ecies/log"
)

// EnvPrefix prefixes every environment override, e.g. ECIES_ENGINE_CIPHER.
const EnvPrefix = "ECIES"

// Settings is the complete runtime configuration.
type Settings struct {
	Engine   ecies.Config     `json:"engine" mapstructure:"engine"`
	Boundary BoundarySettings `json:"boundary" mapstructure:"boundary"`
	Log      log.Config       `json:"log" mapstructure:"log"`
}

// BoundarySettings configures the foreign-call boundary.
type BoundarySettings struct {
	// ErrorDetail returns coded errors instead of a single generic failure.
	ErrorDetail bool `json:"error_detail" mapstructure:"error_detail"`

	// Workers bounds batch operations; 0 uses GOMAXPROCS.
	Workers int `json:"workers" mapstructure:"workers" validate:"gte=0,lte=1024"`
}

// Default returns the built-in settings. A configuration file is optional.
func Default() Settings {
	return Settings{
		Engine: ecies.DefaultConfig(),
		Log:    log.DefaultConfig(),
	}
}

// Validate checks field constraints and engine parameter consistency.
func (s *Settings) Validate() error {
	if err := s.Engine.Validate(); err != nil {
		return errors.InvalidConfig("invalid engine settings").WithCause(err)
	}
	return nil
}

// defaults flattens s into viper keys so every field can be overridden from
// the environment.
func (s *Settings) defaults() map[string]any {
	return map[string]any{
		"engine.cipher":                   string(s.Engine.Cipher),
		"engine.nonce_length":             s.Engine.NonceLength,
		"engine.ephemeral_key_compressed": s.Engine.EphemeralKeyCompressed,
		"engine.hkdf_key_compressed":      s.Engine.HKDFKeyCompressed,

		"boundary.error_detail": s.Boundary.ErrorDetail,
		"boundary.workers":      s.Boundary.Workers,

		"log.level":                                s.Log.Level,
		"log.output":                               s.Log.Output,
		"log.caller":                               s.Log.Caller,
		"log.desensitize":                          s.Log.Desensitize,
		"log.file.filepath":                        s.Log.File.Filepath,
		"log.file.filename":                        s.Log.File.Filename,
		"log.file.file_ext":                        s.Log.File.FileExt,
		"log.file.rotate_mode":                     string(s.Log.File.RotateMode),
		"log.file.rotatelogs_config.max_age":       s.Log.File.RotatelogsConfig.MaxAge,
		"log.file.rotatelogs_config.rotation_time": s.Log.File.RotatelogsConfig.RotationTime,
		"log.file.lumberjack_config.max_size":      s.Log.File.LumberjackConfig.MaxSize,
		"log.file.lumberjack_config.max_backups":   s.Log.File.LumberjackConfig.MaxBackups,
		"log.file.lumberjack_config.max_age":       s.Log.File.LumberjackConfig.MaxAge,
		"log.file.lumberjack_config.compress":      s.Log.File.LumberjackConfig.Compress,
	}
}

// Load reads settings from file (optional, YAML/JSON/TOML by extension) and
// ECIES_* environment variables on top of Default.
func Load(file string) (Settings, error) {
	s := Default()

	l := New(&s,
		WithFile(file),
		WithEnvPrefix(EnvPrefix),
		WithDefaults(s.defaults()),
	)
	if err := l.Load(); err != nil {
		return Settings{}, err
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}
