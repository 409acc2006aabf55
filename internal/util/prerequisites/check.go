// Package prerequisites provides utilities for checking required client tools.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// BuildTool returns the tool that runs the configured build command,
// the first word of the command line.
func BuildTool(command string) (Tool, bool) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return Tool{}, false
	}
	return Tool{
		Name:        fields[0],
		Required:    true,
		Description: fmt.Sprintf("Runs the build command %q", command),
	}, true
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "docker",
			Required:    false,
			Description: "Useful for inspecting locally built images",
			InstallURL:  "https://docs.docker.com/get-docker/",
		},
		{
			Name:        "az",
			Required:    false,
			Description: "Provides credentials through az login and helps with manual cleanup",
			InstallURL:  "https://learn.microsoft.com/cli/azure/install-azure-cli",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if !tool.Required {
			continue
		}
		if tool.InstallURL != "" {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		} else {
			missing = append(missing, tool.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckWithVersions is Check plus a best effort version lookup for every
// tool found.
func CheckWithVersions(tools []Tool) *CheckResults {
	results := Check(tools)
	for i := range results.Results {
		if results.Results[i].Found {
			results.Results[i].Version = getToolVersion(results.Results[i].Tool.Name)
		}
	}
	return results
}

// CheckForBuild checks the tools needed to run the build command.
func CheckForBuild(command string) *CheckResults {
	tool, ok := BuildTool(command)
	if !ok {
		return &CheckResults{}
	}
	return Check([]Tool{tool})
}

// getToolVersion attempts to get the version of a tool.
// Returns empty string if version cannot be determined.
func getToolVersion(name string) string {
	versionFlags := []string{"--version", "version", "-v"}

	for _, flag := range versionFlags {
		// #nosec G204 - name comes from Tool definitions, not free-form input
		cmd := exec.Command(name, flag)
		output, err := cmd.Output()
		if err == nil {
			lines := strings.Split(string(output), "\n")
			if len(lines) > 0 {
				return strings.TrimSpace(lines[0])
			}
		}
	}

	return ""
}
