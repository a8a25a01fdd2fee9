package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/forgebridge/forgebridge/internal/execshell"
	"github.com/forgebridge/forgebridge/internal/githubauth"
)

const (
	repoSubcommandConstant                  = "repo"
	viewSubcommandConstant                  = "view"
	pullRequestSubcommandConstant           = "pr"
	listSubcommandConstant                  = "list"
	jsonFlagConstant                        = "--json"
	stateFlagConstant                       = "--state"
	headFlagConstant                        = "--head"
	limitFlagConstant                       = "--limit"
	pullRequestStateAllValueConstant        = "all"
	branchFieldNameConstant                 = "branch"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	pullRequestLimitDefaultValueConstant    = 200
	pullRequestJSONFieldsConstant           = "number,state,headRefName,headRepository,headRepositoryOwner,isCrossRepository"
	repoViewJSONFieldsConstant              = "nameWithOwner,defaultBranchRef"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	repositoryFullNameSeparatorConstant     = "/"
	repositoryMetadataOperationNameConstant = OperationName("ResolveRepoMetadata")
	listPullRequestsOperationNameConstant   = OperationName("ListAllPullRequests")
	findPullRequestsOperationNameConstant   = OperationName("FindPullRequestsByBranch")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// PullRequestState describes GitHub pull request states as reported by gh.
type PullRequestState string

// Pull request state enumerations.
const (
	PullRequestStateOpen   PullRequestState = PullRequestState("OPEN")
	PullRequestStateClosed PullRequestState = PullRequestState("CLOSED")
	PullRequestStateMerged PullRequestState = PullRequestState("MERGED")
)

// RepositoryMetadata contains key details resolved from GitHub.
type RepositoryMetadata struct {
	NameWithOwner string
	DefaultBranch string
}

// PullRequest represents the PR details needed for branch lifecycle decisions.
type PullRequest struct {
	Number                 int
	State                  PullRequestState
	HeadRefName            string
	HeadRepositoryFullName string
	IsCrossRepository      bool
}

// IsOpen reports whether the pull request is still open.
func (pullRequest PullRequest) IsOpen() bool {
	return pullRequest.State == PullRequestStateOpen
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

// ErrExecutorNotConfigured indicates the client was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// ResolveRepoMetadata retrieves canonical metadata for the repository at the
// provided path using gh repo view.
func (client *Client) ResolveRepoMetadata(executionContext context.Context, repositoryPath string) (RepositoryMetadata, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			viewSubcommandConstant,
			jsonFlagConstant,
			repoViewJSONFieldsConstant,
		},
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: githubTokenEnvironment(),
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return RepositoryMetadata{}, OperationError{Operation: repositoryMetadataOperationNameConstant, Cause: executionError}
	}

	var response struct {
		NameWithOwner    string `json:"nameWithOwner"`
		DefaultBranchRef struct {
			Name string `json:"name"`
		} `json:"defaultBranchRef"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return RepositoryMetadata{}, ResponseDecodingError{Operation: repositoryMetadataOperationNameConstant, Cause: decodingError}
	}

	return RepositoryMetadata{
		NameWithOwner: response.NameWithOwner,
		DefaultBranch: response.DefaultBranchRef.Name,
	}, nil
}

// ListAllPullRequests enumerates pull requests in every state using gh pr list.
func (client *Client) ListAllPullRequests(executionContext context.Context, repositoryPath string, resultLimit int) ([]PullRequest, error) {
	if resultLimit <= 0 {
		resultLimit = pullRequestLimitDefaultValueConstant
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			pullRequestSubcommandConstant,
			listSubcommandConstant,
			stateFlagConstant,
			pullRequestStateAllValueConstant,
			jsonFlagConstant,
			pullRequestJSONFieldsConstant,
			limitFlagConstant,
			strconv.Itoa(resultLimit),
		},
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: githubTokenEnvironment(),
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: listPullRequestsOperationNameConstant, Cause: executionError}
	}

	pullRequests, decodingError := decodePullRequestList(executionResult.StandardOutput)
	if decodingError != nil {
		return nil, ResponseDecodingError{Operation: listPullRequestsOperationNameConstant, Cause: decodingError}
	}

	return pullRequests, nil
}

// FindPullRequestsByBranch looks up pull requests whose head matches the provided branch.
func (client *Client) FindPullRequestsByBranch(executionContext context.Context, repositoryPath string, branchName string) ([]PullRequest, error) {
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return nil, InvalidInputError{FieldName: branchFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			pullRequestSubcommandConstant,
			listSubcommandConstant,
			headFlagConstant,
			trimmedBranchName,
			stateFlagConstant,
			pullRequestStateAllValueConstant,
			jsonFlagConstant,
			pullRequestJSONFieldsConstant,
		},
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: githubTokenEnvironment(),
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: findPullRequestsOperationNameConstant, Cause: executionError}
	}

	pullRequests, decodingError := decodePullRequestList(executionResult.StandardOutput)
	if decodingError != nil {
		return nil, ResponseDecodingError{Operation: findPullRequestsOperationNameConstant, Cause: decodingError}
	}

	return pullRequests, nil
}

func decodePullRequestList(payload string) ([]PullRequest, error) {
	var response []struct {
		Number         int    `json:"number"`
		State          string `json:"state"`
		HeadRefName    string `json:"headRefName"`
		HeadRepository struct {
			Name string `json:"name"`
		} `json:"headRepository"`
		HeadRepositoryOwner struct {
			Login string `json:"login"`
		} `json:"headRepositoryOwner"`
		IsCrossRepository bool `json:"isCrossRepository"`
	}

	decodingError := json.Unmarshal([]byte(payload), &response)
	if decodingError != nil {
		return nil, decodingError
	}

	pullRequests := make([]PullRequest, 0, len(response))
	for _, pullRequestEntry := range response {
		headRepositoryFullName := ""
		if len(pullRequestEntry.HeadRepositoryOwner.Login) > 0 && len(pullRequestEntry.HeadRepository.Name) > 0 {
			headRepositoryFullName = pullRequestEntry.HeadRepositoryOwner.Login + repositoryFullNameSeparatorConstant + pullRequestEntry.HeadRepository.Name
		}

		pullRequests = append(pullRequests, PullRequest{
			Number:                 pullRequestEntry.Number,
			State:                  PullRequestState(strings.ToUpper(pullRequestEntry.State)),
			HeadRefName:            pullRequestEntry.HeadRefName,
			HeadRepositoryFullName: headRepositoryFullName,
			IsCrossRepository:      pullRequestEntry.IsCrossRepository,
		})
	}

	return pullRequests, nil
}

func githubTokenEnvironment() map[string]string {
	token, tokenAvailable := githubauth.ResolveToken(nil)
	if !tokenAvailable {
		return nil
	}
	return map[string]string{githubauth.EnvGitHubCLIToken: token}
}
