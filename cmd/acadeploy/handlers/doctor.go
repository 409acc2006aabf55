package handlers

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/imamik/acadeploy/internal/config"
	"github.com/imamik/acadeploy/internal/platform/azure"
	"github.com/imamik/acadeploy/internal/util/async"
	"github.com/imamik/acadeploy/internal/util/prerequisites"
)

const (
	managementScope = "https://management.azure.com/.default"
	probeTimeout    = 10 * time.Second
)

// Factory function variables for doctor - can be replaced in tests.
var (
	// newCredential returns the Azure credential chain.
	newCredential = azure.NewDefaultCredential

	// checkTools looks the tools up on PATH.
	checkTools = prerequisites.CheckWithVersions
)

// checkStatus is the result of one doctor check.
type checkStatus int

const (
	checkOK checkStatus = iota
	checkWarn
	checkFail
)

// doctorCheck is one line of the doctor table.
type doctorCheck struct {
	Section string
	Name    string
	Status  checkStatus
	Detail  string
}

// Doctor handles the doctor command.
//
// It checks the local tools, the Docker daemon, the Azure credentials and
// the configuration, and fails when any required check fails.
func Doctor(ctx context.Context, explicit map[string]string) error {
	cfg, err := decodeConfig(explicit)
	if err != nil {
		return err
	}

	var checks []doctorCheck
	checks = append(checks, toolChecks(cfg)...)
	probes := async.Gather(ctx,
		func(ctx context.Context) []doctorCheck { return []doctorCheck{dockerCheck(ctx)} },
		func(ctx context.Context) []doctorCheck { return azureChecks(ctx, cfg) },
	)
	for _, p := range probes {
		checks = append(checks, p...)
	}
	checks = append(checks, configChecks(cfg)...)

	fmt.Fprint(stdout, renderDoctor(checks))

	failed := 0
	for _, c := range checks {
		if c.Status == checkFail {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("doctor found %d failing check(s)", failed)
	}
	return nil
}

func toolChecks(cfg *config.Config) []doctorCheck {
	tools := prerequisites.OptionalTools()
	if bt, ok := prerequisites.BuildTool(cfg.BuildCommand); ok {
		bt.Required = cfg.AllowLocalBuild
		tools = append([]prerequisites.Tool{bt}, tools...)
	}

	results := checkTools(tools)
	checks := make([]doctorCheck, 0, len(results.Results))
	for _, r := range results.Results {
		c := doctorCheck{Section: "Tools", Name: r.Tool.Name}
		switch {
		case r.Found:
			c.Status = checkOK
			c.Detail = r.Path
			if r.Version != "" {
				c.Detail = r.Version
			}
		case r.Tool.Required:
			c.Status = checkFail
			c.Detail = "not found on PATH"
		default:
			c.Status = checkWarn
			c.Detail = "not found, " + r.Tool.Description
		}
		if !r.Found && r.Tool.InstallURL != "" {
			c.Detail += " (" + r.Tool.InstallURL + ")"
		}
		checks = append(checks, c)
	}
	return checks
}

func dockerCheck(ctx context.Context) doctorCheck {
	c := doctorCheck{Section: "Docker", Name: "daemon"}

	store, err := newImageStore(io.Discard)
	if err != nil {
		c.Status, c.Detail = checkFail, err.Error()
		return c
	}
	defer closeStore(store)

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		c.Status, c.Detail = checkFail, err.Error()
		return c
	}
	c.Status, c.Detail = checkOK, "reachable"
	return c
}

func azureChecks(ctx context.Context, cfg *config.Config) []doctorCheck {
	sub := doctorCheck{Section: "Azure", Name: "subscription", Status: checkOK, Detail: cfg.SubscriptionID}
	if cfg.SubscriptionID == "" {
		sub.Status, sub.Detail = checkFail, config.EnvSubscriptionID+" is not set"
	}

	cred := doctorCheck{Section: "Azure", Name: "credentials"}
	tc, err := newCredential()
	if err != nil {
		cred.Status, cred.Detail = checkFail, err.Error()
		return []doctorCheck{sub, cred}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if _, err := tc.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{managementScope}}); err != nil {
		cred.Status, cred.Detail = checkFail, "no token: "+firstLine(err.Error())
	} else {
		cred.Status, cred.Detail = checkOK, "token acquired"
	}
	return []doctorCheck{sub, cred}
}

func configChecks(cfg *config.Config) []doctorCheck {
	var checks []doctorCheck
	for _, ve := range cfg.Check() {
		status := checkWarn
		if ve.IsError() {
			status = checkFail
		}
		checks = append(checks, doctorCheck{Section: "Configuration", Name: ve.Field, Status: status, Detail: ve.Message})
	}
	if len(checks) == 0 {
		checks = append(checks, doctorCheck{Section: "Configuration", Name: "deploy settings", Status: checkOK, Detail: "valid"})
	}
	return checks
}
