package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forgebridge/forgebridge/internal/execshell"
)

const (
	forEachRefSubcommandConstant            = "for-each-ref"
	forEachRefFormatFlagConstant            = "--format"
	forEachRefShortNameFormatConstant       = "%(refname:short)"
	localHeadsRefNamespaceConstant          = "refs/heads"
	remoteTrackingRefNamespaceTemplate      = "refs/remotes/%s"
	revParseSubcommandConstant              = "rev-parse"
	abbreviatedRefFlagConstant              = "--abbrev-ref"
	headReferenceNameConstant               = "HEAD"
	mergeBaseSubcommandConstant             = "merge-base"
	isAncestorFlagConstant                  = "--is-ancestor"
	branchSubcommandConstant                = "branch"
	deleteFlagConstant                      = "--delete"
	forceFlagConstant                       = "--force"
	pushSubcommandConstant                  = "push"
	lsRemoteSubcommandConstant              = "ls-remote"
	headsFlagConstant                       = "--heads"
	fetchSubcommandConstant                 = "fetch"
	pruneFlagConstant                       = "--prune"
	remoteSubcommandConstant                = "remote"
	getURLSubcommandConstant                = "get-url"
	remoteTrackingPrefixTemplateConstant    = "%s/"
	branchNotFullyMergedFragmentConstant    = "not fully merged"
	branchNotFullyMergedMessageConstant     = "branch not fully merged"
	executorNotConfiguredMessageConstant    = "git executor not configured"
	requiredValueMessageConstant            = "value required"
	mergeCheckUnexpectedExitCodeMinConstant = 2
	branchOperationErrorTemplateConstant    = "%s %q: %w"
)

// ErrExecutorNotConfigured indicates the manager was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// ErrBranchNotFullyMerged indicates git refused a non-forced branch deletion.
var ErrBranchNotFullyMerged = errors.New(branchNotFullyMergedMessageConstant)

// GitExecutor exposes the subset of shell execution used by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager exposes repository-level git operations.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager around the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// ListLocalBranches returns the short names of all local branches.
func (manager *RepositoryManager) ListLocalBranches(executionContext context.Context, repositoryPath string) ([]string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			forEachRefSubcommandConstant,
			forEachRefFormatFlagConstant,
			forEachRefShortNameFormatConstant,
			localHeadsRefNamespaceConstant,
		},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return nil, executionError
	}

	return splitReferenceLines(executionResult.StandardOutput), nil
}

// ListRemoteBranches returns the branch names tracked under the provided remote,
// stripped of the remote prefix. The symbolic HEAD entry is excluded.
func (manager *RepositoryManager) ListRemoteBranches(executionContext context.Context, repositoryPath string, remoteName string) ([]string, error) {
	trimmedRemoteName := strings.TrimSpace(remoteName)
	if len(trimmedRemoteName) == 0 {
		return nil, errors.New(requiredValueMessageConstant)
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			forEachRefSubcommandConstant,
			forEachRefFormatFlagConstant,
			forEachRefShortNameFormatConstant,
			fmt.Sprintf(remoteTrackingRefNamespaceTemplate, trimmedRemoteName),
		},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return nil, executionError
	}

	remotePrefix := fmt.Sprintf(remoteTrackingPrefixTemplateConstant, trimmedRemoteName)
	remoteBranchNames := make([]string, 0)
	for _, referenceName := range splitReferenceLines(executionResult.StandardOutput) {
		branchName := strings.TrimPrefix(referenceName, remotePrefix)
		if branchName == referenceName || branchName == headReferenceNameConstant {
			continue
		}
		remoteBranchNames = append(remoteBranchNames, branchName)
	}

	return remoteBranchNames, nil
}

// GetCurrentBranch returns the short name of the branch HEAD points at.
// A detached HEAD resolves to the literal HEAD value.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			revParseSubcommandConstant,
			abbreviatedRefFlagConstant,
			headReferenceNameConstant,
		},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return "", executionError
	}

	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// IsMergedInto reports whether branchName is an ancestor of baseReference.
//
// A merge-base exit code of one means the branch is not merged; any other
// non-zero exit code is reported as an error so callers can distinguish
// unknown merge state from a definitive answer.
func (manager *RepositoryManager) IsMergedInto(executionContext context.Context, repositoryPath string, branchName string, baseReference string) (bool, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			mergeBaseSubcommandConstant,
			isAncestorFlagConstant,
			branchName,
			baseReference,
		},
		WorkingDirectory: repositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError == nil {
		return true, nil
	}

	var failedError execshell.CommandFailedError
	if errors.As(executionError, &failedError) && failedError.Result.ExitCode < mergeCheckUnexpectedExitCodeMinConstant {
		return false, nil
	}

	return false, executionError
}

// DeleteLocalBranch removes a local branch. Non-forced deletions that git
// rejects because the branch is not fully merged surface ErrBranchNotFullyMerged.
func (manager *RepositoryManager) DeleteLocalBranch(executionContext context.Context, repositoryPath string, branchName string, force bool) error {
	arguments := []string{branchSubcommandConstant, deleteFlagConstant}
	if force {
		arguments = append(arguments, forceFlagConstant)
	}
	arguments = append(arguments, branchName)

	commandDetails := execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError == nil {
		return nil
	}

	var failedError execshell.CommandFailedError
	if errors.As(executionError, &failedError) && strings.Contains(failedError.Result.StandardError, branchNotFullyMergedFragmentConstant) {
		return fmt.Errorf(branchOperationErrorTemplateConstant, branchSubcommandConstant, branchName, ErrBranchNotFullyMerged)
	}

	return executionError
}

// DeleteRemoteBranch removes a branch from the provided remote.
func (manager *RepositoryManager) DeleteRemoteBranch(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			pushSubcommandConstant,
			remoteName,
			deleteFlagConstant,
			branchName,
		},
		WorkingDirectory: repositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// RemoteBranchExists probes the remote for the provided branch using ls-remote.
func (manager *RepositoryManager) RemoteBranchExists(executionContext context.Context, repositoryPath string, remoteName string, branchName string) (bool, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			lsRemoteSubcommandConstant,
			headsFlagConstant,
			remoteName,
			branchName,
		},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return false, executionError
	}

	return len(strings.TrimSpace(executionResult.StandardOutput)) > 0, nil
}

// FetchPrune updates remote-tracking references and removes stale ones.
func (manager *RepositoryManager) FetchPrune(executionContext context.Context, repositoryPath string, remoteName string) error {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			fetchSubcommandConstant,
			remoteName,
			pruneFlagConstant,
		},
		WorkingDirectory: repositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// GetRemoteURL returns the configured URL for the provided remote.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			remoteSubcommandConstant,
			getURLSubcommandConstant,
			remoteName,
		},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return "", executionError
	}

	return strings.TrimSpace(executionResult.StandardOutput), nil
}

func splitReferenceLines(output string) []string {
	referenceNames := make([]string, 0)
	for _, line := range strings.Split(output, "\n") {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 {
			continue
		}
		referenceNames = append(referenceNames, trimmedLine)
	}
	return referenceNames
}
