// SPDX-License-Identifier: MPL-2.0

package bootstrap

// Step identifies one operation of the bootstrap sequence.
type Step string

const (
	// StepResolveTool resolves the package-manager executable.
	StepResolveTool Step = "resolve-tool"
	// StepCreateEnv creates the virtual environment.
	StepCreateEnv Step = "create-env"
	// StepInstallDeps installs the dependency manifest.
	StepInstallDeps Step = "install-deps"
	// StepVerify runs the application's version check.
	StepVerify Step = "verify"
	// StepProfile ensures the PATH export in the shell profile.
	StepProfile Step = "profile"
)

type (
	// StepOutcome records how a single step ended.
	StepOutcome struct {
		// Step is the operation this outcome belongs to.
		Step Step
		// Detail is a human-readable summary ("resolved via locate-in-PATH").
		Detail string
		// Warning is set when the step failed without aborting the run
		// (verification under the warn policy, profile edits).
		Warning string
	}

	// Report summarizes a completed bootstrap run.
	Report struct {
		// ToolPath is the resolved package-manager executable.
		ToolPath string
		// ToolStrategy names the resolution strategy that won.
		ToolStrategy string
		// EnvDir is the environment directory.
		EnvDir string
		// AppVersion is the version line the application reported, when
		// verification succeeded.
		AppVersion string
		// ProfileUpdated is true when the PATH export line was appended
		// during this run (false when already present or disabled).
		ProfileUpdated bool
		// Outcomes lists per-step results in execution order.
		Outcomes []StepOutcome
	}
)

func (r *Report) record(step Step, detail string) {
	r.Outcomes = append(r.Outcomes, StepOutcome{Step: step, Detail: detail})
}

func (r *Report) warn(step Step, detail, warning string) {
	r.Outcomes = append(r.Outcomes, StepOutcome{Step: step, Detail: detail, Warning: warning})
}

// Warnings returns the outcomes that carry a warning.
func (r *Report) Warnings() []StepOutcome {
	var warnings []StepOutcome
	for _, outcome := range r.Outcomes {
		if outcome.Warning != "" {
			warnings = append(warnings, outcome)
		}
	}
	return warnings
}
