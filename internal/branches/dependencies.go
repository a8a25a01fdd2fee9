package branches

import (
	"context"
	"errors"

	"github.com/forgebridge/forgebridge/internal/githubcli"
)

const (
	repositoryNotConfiguredMessageConstant   = "branch cleanup repository manager not configured"
	pullRequestsNotConfiguredMessageConstant = "branch cleanup pull request reader not configured"
	prompterNotConfiguredMessageConstant     = "branch cleanup confirmation prompter not configured"
)

// Dependency validation sentinels.
var (
	ErrRepositoryNotConfigured   = errors.New(repositoryNotConfiguredMessageConstant)
	ErrPullRequestsNotConfigured = errors.New(pullRequestsNotConfiguredMessageConstant)
	ErrPrompterNotConfigured     = errors.New(prompterNotConfiguredMessageConstant)
)

// GitRepository captures the git operations the cleanup engine requires.
type GitRepository interface {
	ListLocalBranches(executionContext context.Context, repositoryPath string) ([]string, error)
	ListRemoteBranches(executionContext context.Context, repositoryPath string, remoteName string) ([]string, error)
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	IsMergedInto(executionContext context.Context, repositoryPath string, branchName string, baseReference string) (bool, error)
	DeleteLocalBranch(executionContext context.Context, repositoryPath string, branchName string, force bool) error
	DeleteRemoteBranch(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
	RemoteBranchExists(executionContext context.Context, repositoryPath string, remoteName string, branchName string) (bool, error)
	FetchPrune(executionContext context.Context, repositoryPath string, remoteName string) error
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
}

// PullRequestReader captures the forge operations the cleanup engine requires.
type PullRequestReader interface {
	ResolveRepoMetadata(executionContext context.Context, repositoryPath string) (githubcli.RepositoryMetadata, error)
	ListAllPullRequests(executionContext context.Context, repositoryPath string, resultLimit int) ([]githubcli.PullRequest, error)
	FindPullRequestsByBranch(executionContext context.Context, repositoryPath string, branchName string) ([]githubcli.PullRequest, error)
}

// ConfirmationPrompter collects user confirmations prior to destructive actions.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}
