// Package deps reports whether the translation runtimes winlaunch manages
// presets for are installed on PATH.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary a container launch relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// RuntimeRequirements lists the launch binaries. Presets and shortcuts can be
// edited without any of them, so all are optional.
func RuntimeRequirements() []Requirement {
	return []Requirement{
		{Name: "Wine", Command: "wine", Description: "Windows compatibility layer", Optional: true},
		{Name: "Box64", Command: "box64", Description: "x86_64 translator for box64 presets", Optional: true},
		{Name: "FEXCore", Command: "FEXInterpreter", Description: "x86_64 translator for fexcore presets", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		switch path, err := exec.LookPath(cmd); {
		case cmd == "":
			status.Detail = "command not configured"
		case err != nil:
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
		default:
			status.Available = true
			status.Detail = path
		}
		results = append(results, status)
	}
	return results
}
