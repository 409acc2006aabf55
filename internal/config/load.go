package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/imamik/acadeploy/internal/deployerr"
)

// Resolve builds the configuration from the default, environment and
// explicit layers and validates it. Maps are keyed by environment variable
// name. Explicit values win over environment values, which win over
// defaults, independently for every key. Empty environment values are
// treated as unset; explicit values are taken as given.
func Resolve(defaults, env, explicit map[string]string) (*Config, error) {
	cfg, err := Decode(defaults, env, explicit)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode layers and decodes the configuration without the deploy-time
// validation. Teardown uses it since it needs no credentials.
func Decode(defaults, env, explicit map[string]string) (*Config, error) {
	v := viper.New()
	sources := make(map[string]Source)

	for name, val := range defaults {
		if k, ok := lookupID(strings.ToLower(name)); ok {
			v.SetDefault(k.ID(), val)
		}
	}

	envLayer := make(map[string]any)
	for name, val := range env {
		k, ok := lookupID(strings.ToLower(name))
		if !ok || val == "" {
			continue
		}
		envLayer[k.ID()] = val
		sources[k.Env] = SourceEnv
	}
	if err := v.MergeConfigMap(envLayer); err != nil {
		return nil, &deployerr.ConfigError{Field: "environment", Reason: "failed to merge values", Err: err}
	}

	for name, val := range explicit {
		k, ok := lookupID(strings.ToLower(name))
		if !ok {
			return nil, &deployerr.ConfigError{Field: name, Reason: "unknown configuration key"}
		}
		v.Set(k.ID(), val)
		sources[k.Env] = SourceExplicit
	}

	values := make(map[string]string, len(Keys))
	for _, k := range Keys {
		raw := v.GetString(k.ID())
		if err := checkType(k, raw); err != nil {
			return nil, err
		}
		values[k.Env] = raw
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &deployerr.ConfigError{Field: "configuration", Reason: "failed to decode", Err: err}
	}
	cfg.values = values
	cfg.sources = sources
	cfg.applyDerived()

	return &cfg, nil
}

// checkType rejects values the decoder would otherwise coerce silently.
func checkType(k Key, raw string) error {
	if raw == "" {
		return nil
	}
	var err error
	switch k.Type {
	case TypeBool:
		_, err = strconv.ParseBool(raw)
	case TypeInt:
		_, err = strconv.Atoi(raw)
	case TypeFloat:
		_, err = strconv.ParseFloat(raw, 64)
	default:
		return nil
	}
	if err != nil {
		return &deployerr.ConfigError{Field: k.Env, Reason: fmt.Sprintf("invalid value %q", raw)}
	}
	return nil
}
