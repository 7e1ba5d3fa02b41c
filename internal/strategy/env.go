package strategy

import (
	"os"
	"strings"
)

// ContextFromEnv constructs a BuildContext from whichever recognized CI
// signatures are present in the process environment. Absence of any
// recognized signature yields TriggerUnknown, which falls back to the
// default strategy downstream.
func ContextFromEnv() BuildContext {
	return contextFromGetenv(os.Getenv)
}

// contextFromGetenv is the injectable core of ContextFromEnv.
func contextFromGetenv(getenv func(string) string) BuildContext {
	// GitHub Actions
	if getenv("GITHUB_ACTIONS") != "" {
		bc := BuildContext{
			Trigger: classifyGitHubEvent(getenv("GITHUB_EVENT_NAME")),
			Ref:     getenv("GITHUB_REF"),
			Branch:  getenv("GITHUB_REF_NAME"),
		}
		if bc.Trigger == TriggerManual {
			bc.ManualIntent = getenv("VPROP_INTENT")
		}
		return bc
	}

	// GitLab CI
	if getenv("GITLAB_CI") != "" {
		bc := BuildContext{
			Ref:    getenv("CI_COMMIT_REF_NAME"),
			Branch: getenv("CI_COMMIT_BRANCH"),
		}
		switch getenv("CI_PIPELINE_SOURCE") {
		case "push":
			bc.Trigger = TriggerPush
		case "web", "trigger", "api":
			bc.Trigger = TriggerManual
			bc.ManualIntent = getenv("VPROP_INTENT")
		default:
			bc.Trigger = TriggerUnknown
		}
		if getenv("CI_COMMIT_TAG") != "" {
			bc.Trigger = TriggerRelease
			bc.Ref = getenv("CI_COMMIT_TAG")
		}
		return bc
	}

	// Generic CI: only branch information is available.
	if getenv("CI") != "" {
		return BuildContext{
			Trigger: TriggerUnknown,
			Branch:  getenv("BRANCH_NAME"),
		}
	}

	return BuildContext{Trigger: TriggerUnknown}
}

func classifyGitHubEvent(event string) TriggerKind {
	switch strings.ToLower(event) {
	case "release":
		return TriggerRelease
	case "push":
		return TriggerPush
	case "workflow_dispatch":
		return TriggerManual
	default:
		return TriggerUnknown
	}
}
