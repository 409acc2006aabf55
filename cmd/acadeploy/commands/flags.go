package commands

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/imamik/acadeploy/internal/config"
)

// bindConfigFlags registers a typed flag for every configuration key of
// scope. Flag defaults only document the built-in value; the resolver
// applies defaults itself.
func bindConfigFlags(cmd *cobra.Command, scope config.Scope) {
	fs := cmd.Flags()
	fs.SortFlags = false

	for _, k := range config.KeysFor(scope) {
		usage := k.Usage + " (env " + k.Env + ")"
		switch k.Type {
		case config.TypeBool:
			def, _ := strconv.ParseBool(k.Default)
			fs.BoolP(k.Flag, k.Short, def, usage)
		case config.TypeInt:
			def, _ := strconv.Atoi(k.Default)
			fs.IntP(k.Flag, k.Short, def, usage)
		case config.TypeFloat:
			def, _ := strconv.ParseFloat(k.Default, 64)
			fs.Float64P(k.Flag, k.Short, def, usage)
		default:
			fs.StringP(k.Flag, k.Short, k.Default, usage)
		}
	}
}

// explicitValues returns the flags set on the command line, keyed by
// environment variable name. This is the explicit configuration layer.
func explicitValues(cmd *cobra.Command) map[string]string {
	out := make(map[string]string)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if k, ok := config.LookupFlag(f.Name); ok {
			out[k.Env] = f.Value.String()
		}
	})
	return out
}
