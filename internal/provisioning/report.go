package provisioning

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/imamik/acadeploy/internal/util/naming"
)

// Report is the YAML document written by --report.
type Report struct {
	GeneratedAt time.Time         `yaml:"generatedAt"`
	Outcome     Outcome           `yaml:"outcome"`
	Stage       Stage             `yaml:"stage"`
	Endpoint    string            `yaml:"endpoint,omitempty"`
	Error       string            `yaml:"error,omitempty"`
	Config      map[string]string `yaml:"config"`
	Resources   []*Record         `yaml:"resources"`
}

// NewReport summarizes a finished run. Secrets in the config are redacted.
func NewReport(ctx *Context, outcome Outcome, runErr error) *Report {
	r := &Report{
		GeneratedAt: time.Now().UTC(),
		Outcome:     outcome,
		Stage:       ctx.State.Stage,
		Endpoint:    naming.Endpoint(ctx.State.AppFQDN),
		Config:      ctx.Config.Redacted(),
		Resources:   ctx.State.Records,
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
	return r
}

// WriteReport marshals r to path.
func WriteReport(path string, r *Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write run report %s: %w", path, err)
	}
	return nil
}
