package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadEnvFile reads a key=value file. Comments, blank lines, quoting and
// "export" prefixes follow dotenv rules. Keys are returned upper-cased.
func LoadEnvFile(path string) (map[string]string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	out := make(map[string]string)
	for _, key := range v.AllKeys() {
		out[strings.ToUpper(key)] = v.GetString(key)
	}
	return out, nil
}

// EnvironmentLayer merges the process environment (as returned by
// os.Environ) with values from an env file. File values override the
// process environment.
func EnvironmentLayer(environ []string, file map[string]string) map[string]string {
	out := make(map[string]string, len(environ)+len(file))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[name] = value
	}
	for name, value := range file {
		out[name] = value
	}
	return out
}
