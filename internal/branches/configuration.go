package branches

import "strings"

const (
	defaultRemoteNameConstant       = "origin"
	defaultPullRequestLimitConstant = 200
)

var defaultProtectedBranchesValue = []string{"main", "master", "develop"}

// CommandConfiguration captures configuration values for the branch cleanup command.
type CommandConfiguration struct {
	RemoteName        string   `mapstructure:"remote"`
	BaseReference     string   `mapstructure:"base_ref"`
	PullRequestLimit  int      `mapstructure:"limit"`
	ProtectedBranches []string `mapstructure:"protected"`
	DryRun            bool     `mapstructure:"dry_run"`
	Quiet             bool     `mapstructure:"quiet"`
	FetchPrune        bool     `mapstructure:"fetch_prune"`
}

// DefaultCommandConfiguration provides baseline configuration values for branch cleanup.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RemoteName:        defaultRemoteNameConstant,
		BaseReference:     "",
		PullRequestLimit:  defaultPullRequestLimitConstant,
		ProtectedBranches: append([]string{}, defaultProtectedBranchesValue...),
		DryRun:            false,
		Quiet:             false,
		FetchPrune:        false,
	}
}

// DefaultConfigurationValues exposes branch cleanup defaults keyed for Viper registration.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + ".remote":      defaults.RemoteName,
		configurationKeyPrefix + ".base_ref":    defaults.BaseReference,
		configurationKeyPrefix + ".limit":       defaults.PullRequestLimit,
		configurationKeyPrefix + ".protected":   defaults.ProtectedBranches,
		configurationKeyPrefix + ".dry_run":     defaults.DryRun,
		configurationKeyPrefix + ".quiet":       defaults.Quiet,
		configurationKeyPrefix + ".fetch_prune": defaults.FetchPrune,
	}
}

// sanitize trims configuration values and restores defaults for blank entries.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	if len(sanitized.RemoteName) == 0 {
		sanitized.RemoteName = defaultRemoteNameConstant
	}

	sanitized.BaseReference = strings.TrimSpace(configuration.BaseReference)

	if sanitized.PullRequestLimit <= 0 {
		sanitized.PullRequestLimit = defaultPullRequestLimitConstant
	}

	sanitized.ProtectedBranches = sanitizeBranchNames(configuration.ProtectedBranches)
	if len(sanitized.ProtectedBranches) == 0 {
		sanitized.ProtectedBranches = append([]string{}, defaultProtectedBranchesValue...)
	}

	return sanitized
}

func sanitizeBranchNames(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
