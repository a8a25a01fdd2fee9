package branches

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/forgebridge/forgebridge/internal/githubcli"
)

const (
	bulkListingFailedMessageConstant     = "Bulk pull request listing failed, falling back to per-branch lookup"
	bulkIndexBuiltMessageConstant        = "Indexed pull requests by head branch"
	perBranchLookupFailedMessageConstant = "Pull request lookup failed for branch, continuing without pull request data"
	branchLogFieldNameConstant           = "branch"
	pullRequestCountLogFieldNameConstant = "pull_requests"
)

// PullRequestLookup resolves the pull request associated with a branch, if any.
//
// Pull requests whose head lives in a fork are never associated: deleting a
// local branch must not be blocked or enabled by someone else's fork branch
// that happens to share its name.
type PullRequestLookup interface {
	PullRequestForBranch(executionContext context.Context, branchName string) (*githubcli.PullRequest, error)
}

// NewPullRequestLookup builds the lookup strategy for a cleanup run.
//
// It prefers a single bulk listing indexed by head branch name. When the bulk
// listing fails the lookup degrades to one gh invocation per branch so a
// temporary API failure does not abort the whole run.
func NewPullRequestLookup(executionContext context.Context, logger *zap.Logger, reader PullRequestReader, repositoryPath string, repositoryFullName string, resultLimit int) PullRequestLookup {
	if logger == nil {
		logger = zap.NewNop()
	}

	pullRequests, listError := reader.ListAllPullRequests(executionContext, repositoryPath, resultLimit)
	if listError != nil {
		logger.Warn(bulkListingFailedMessageConstant, zap.Error(listError))
		return &perBranchLookup{logger: logger, reader: reader, repositoryPath: repositoryPath, repositoryFullName: repositoryFullName}
	}

	index := make(map[string]githubcli.PullRequest, len(pullRequests))
	for _, pullRequest := range pullRequests {
		if !isSameRepositoryHead(pullRequest, repositoryFullName) {
			continue
		}
		existing, exists := index[pullRequest.HeadRefName]
		if exists && existing.IsOpen() {
			continue
		}
		index[pullRequest.HeadRefName] = pullRequest
	}

	logger.Debug(bulkIndexBuiltMessageConstant, zap.Int(pullRequestCountLogFieldNameConstant, len(index)))
	return bulkIndexLookup{index: index}
}

// bulkIndexLookup serves lookups from a prebuilt branch-to-PR index.
type bulkIndexLookup struct {
	index map[string]githubcli.PullRequest
}

func (lookup bulkIndexLookup) PullRequestForBranch(executionContext context.Context, branchName string) (*githubcli.PullRequest, error) {
	pullRequest, exists := lookup.index[branchName]
	if !exists {
		return nil, nil
	}
	return &pullRequest, nil
}

// perBranchLookup queries the forge for each branch individually.
type perBranchLookup struct {
	logger             *zap.Logger
	reader             PullRequestReader
	repositoryPath     string
	repositoryFullName string
}

func (lookup *perBranchLookup) PullRequestForBranch(executionContext context.Context, branchName string) (*githubcli.PullRequest, error) {
	pullRequests, lookupError := lookup.reader.FindPullRequestsByBranch(executionContext, lookup.repositoryPath, branchName)
	if lookupError != nil {
		lookup.logger.Warn(perBranchLookupFailedMessageConstant, zap.String(branchLogFieldNameConstant, branchName), zap.Error(lookupError))
		return nil, nil
	}

	var selected *githubcli.PullRequest
	for pullRequestIndex := range pullRequests {
		pullRequest := pullRequests[pullRequestIndex]
		if !isSameRepositoryHead(pullRequest, lookup.repositoryFullName) {
			continue
		}
		if selected == nil || pullRequest.IsOpen() {
			selected = &pullRequest
		}
		if pullRequest.IsOpen() {
			break
		}
	}

	return selected, nil
}

// isSameRepositoryHead reports whether the pull request head branch lives in
// the repository itself rather than a fork. When either repository full name
// is missing the comparison falls back to the cross-repository flag alone and
// keeps the pull request associated: an open pull request should keep blocking
// deletion on incomplete forge data instead of being discarded.
func isSameRepositoryHead(pullRequest githubcli.PullRequest, repositoryFullName string) bool {
	if pullRequest.IsCrossRepository {
		return false
	}
	if len(repositoryFullName) == 0 || len(pullRequest.HeadRepositoryFullName) == 0 {
		return true
	}
	return strings.EqualFold(pullRequest.HeadRepositoryFullName, repositoryFullName)
}
