package branches_test

import (
	"context"

	"github.com/forgebridge/forgebridge/internal/githubcli"
)

// fakeRepository scripts git operations for cleanup tests.
type fakeRepository struct {
	localBranches      []string
	remoteBranches     []string
	currentBranch      string
	listLocalError     error
	listRemoteError    error
	currentBranchError error

	mergedBranches map[string]bool
	mergeErrors    map[string]error
	mergeBaseCalls []string

	deleteLocalErrors  map[string]error
	forcedDeleteErrors map[string]error
	deletedLocal       []string
	forcedDeletes      []string

	deleteRemoteErrors map[string]error
	deletedRemote      []string

	remoteExists       map[string]bool
	remoteExistsErrors map[string]error

	fetchPruneError error
	fetchPruneCalls int

	remoteURL      string
	remoteURLError error
}

func (repository *fakeRepository) ListLocalBranches(executionContext context.Context, repositoryPath string) ([]string, error) {
	if repository.listLocalError != nil {
		return nil, repository.listLocalError
	}
	return append([]string{}, repository.localBranches...), nil
}

func (repository *fakeRepository) ListRemoteBranches(executionContext context.Context, repositoryPath string, remoteName string) ([]string, error) {
	if repository.listRemoteError != nil {
		return nil, repository.listRemoteError
	}
	return append([]string{}, repository.remoteBranches...), nil
}

func (repository *fakeRepository) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	if repository.currentBranchError != nil {
		return "", repository.currentBranchError
	}
	return repository.currentBranch, nil
}

func (repository *fakeRepository) IsMergedInto(executionContext context.Context, repositoryPath string, branchName string, baseReference string) (bool, error) {
	repository.mergeBaseCalls = append(repository.mergeBaseCalls, baseReference)
	if mergeError, exists := repository.mergeErrors[branchName]; exists {
		return false, mergeError
	}
	return repository.mergedBranches[branchName], nil
}

func (repository *fakeRepository) DeleteLocalBranch(executionContext context.Context, repositoryPath string, branchName string, force bool) error {
	if force {
		if forcedError, exists := repository.forcedDeleteErrors[branchName]; exists {
			return forcedError
		}
		repository.forcedDeletes = append(repository.forcedDeletes, branchName)
		repository.deletedLocal = append(repository.deletedLocal, branchName)
		return nil
	}

	if deletionError, exists := repository.deleteLocalErrors[branchName]; exists {
		return deletionError
	}
	repository.deletedLocal = append(repository.deletedLocal, branchName)
	return nil
}

func (repository *fakeRepository) DeleteRemoteBranch(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	if deletionError, exists := repository.deleteRemoteErrors[branchName]; exists {
		return deletionError
	}
	repository.deletedRemote = append(repository.deletedRemote, branchName)
	return nil
}

func (repository *fakeRepository) RemoteBranchExists(executionContext context.Context, repositoryPath string, remoteName string, branchName string) (bool, error) {
	if probeError, exists := repository.remoteExistsErrors[branchName]; exists {
		return false, probeError
	}
	return repository.remoteExists[branchName], nil
}

func (repository *fakeRepository) FetchPrune(executionContext context.Context, repositoryPath string, remoteName string) error {
	repository.fetchPruneCalls++
	return repository.fetchPruneError
}

func (repository *fakeRepository) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	if repository.remoteURLError != nil {
		return "", repository.remoteURLError
	}
	return repository.remoteURL, nil
}

// fakePullRequestReader scripts forge operations for cleanup tests.
type fakePullRequestReader struct {
	metadata      githubcli.RepositoryMetadata
	metadataError error

	bulkPullRequests []githubcli.PullRequest
	bulkError        error
	bulkCalls        int
	recordedLimits   []int

	perBranchPullRequests map[string][]githubcli.PullRequest
	perBranchErrors       map[string]error
	perBranchCalls        []string
}

func (reader *fakePullRequestReader) ResolveRepoMetadata(executionContext context.Context, repositoryPath string) (githubcli.RepositoryMetadata, error) {
	if reader.metadataError != nil {
		return githubcli.RepositoryMetadata{}, reader.metadataError
	}
	return reader.metadata, nil
}

func (reader *fakePullRequestReader) ListAllPullRequests(executionContext context.Context, repositoryPath string, resultLimit int) ([]githubcli.PullRequest, error) {
	reader.bulkCalls++
	reader.recordedLimits = append(reader.recordedLimits, resultLimit)
	if reader.bulkError != nil {
		return nil, reader.bulkError
	}
	return append([]githubcli.PullRequest{}, reader.bulkPullRequests...), nil
}

func (reader *fakePullRequestReader) FindPullRequestsByBranch(executionContext context.Context, repositoryPath string, branchName string) ([]githubcli.PullRequest, error) {
	reader.perBranchCalls = append(reader.perBranchCalls, branchName)
	if lookupError, exists := reader.perBranchErrors[branchName]; exists {
		return nil, lookupError
	}
	return append([]githubcli.PullRequest{}, reader.perBranchPullRequests[branchName]...), nil
}

// fakePrompter scripts confirmation responses, one per prompt when a queue is
// provided, otherwise repeating a single response.
type fakePrompter struct {
	response        bool
	responses       []bool
	promptError     error
	recordedPrompts []string
}

func (prompter *fakePrompter) Confirm(prompt string) (bool, error) {
	prompter.recordedPrompts = append(prompter.recordedPrompts, prompt)
	if len(prompter.responses) > 0 {
		nextResponse := prompter.responses[0]
		prompter.responses = prompter.responses[1:]
		return nextResponse, prompter.promptError
	}
	return prompter.response, prompter.promptError
}

// staticLookup serves a fixed branch-to-PR mapping.
type staticLookup struct {
	pullRequests map[string]*githubcli.PullRequest
	lookupError  error
}

func (lookup staticLookup) PullRequestForBranch(executionContext context.Context, branchName string) (*githubcli.PullRequest, error) {
	if lookup.lookupError != nil {
		return nil, lookup.lookupError
	}
	return lookup.pullRequests[branchName], nil
}
