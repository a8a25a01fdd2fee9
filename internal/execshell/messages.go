package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitForEachRefSubcommandNameConstant  = "for-each-ref"
	gitRevParseSubcommandNameConstant    = "rev-parse"
	gitAbbrevRefFlagConstant             = "--abbrev-ref"
	gitMergeBaseSubcommandNameConstant   = "merge-base"
	gitIsAncestorFlagConstant            = "--is-ancestor"
	gitBranchSubcommandNameConstant      = "branch"
	gitDeleteFlagConstant                = "--delete"
	gitForceFlagConstant                 = "--force"
	gitPushSubcommandNameConstant        = "push"
	gitLSRemoteSubcommandNameConstant    = "ls-remote"
	gitHeadsFlagConstant                 = "--heads"
	gitFetchSubcommandNameConstant       = "fetch"
	gitRemoteSubcommandNameConstant      = "remote"
	gitRemoteGetURLSubcommandConstant    = "get-url"
	gitRemoteTrackingRefPrefixConstant   = "refs/remotes/"
	gitFetchAllRemotesLabelConstant      = "all remotes"
	flagPrefixConstant                   = "--"
	refNamePlaceholderSegmentCountMaxInt = 2
)

const (
	gitLocalBranchListStartTemplateConstant             = "Listing local branches in %s"
	gitLocalBranchListSuccessTemplateConstant           = "Listed local branches in %s"
	gitLocalBranchListFailureTemplateConstant           = "Failed to list local branches in %s (exit code %d%s)"
	gitLocalBranchListExecutionFailureTemplateConstant  = "Unable to list local branches in %s: %s"
	gitRemoteBranchListStartTemplateConstant            = "Listing %s remote-tracking branches in %s"
	gitRemoteBranchListSuccessTemplateConstant          = "Listed %s remote-tracking branches in %s"
	gitRemoteBranchListFailureTemplateConstant          = "Failed to list %s remote-tracking branches in %s (exit code %d%s)"
	gitRemoteBranchListExecutionFailureTemplateConstant = "Unable to list %s remote-tracking branches in %s: %s"
	gitCurrentBranchStartTemplateConstant               = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant             = "Identified current branch in %s"
	gitCurrentBranchFailureTemplateConstant             = "Failed to identify current branch in %s (exit code %d%s)"
	gitCurrentBranchExecutionFailureTemplateConstant    = "Unable to identify current branch in %s: %s"
	gitMergeCheckStartTemplateConstant                  = "Checking whether %s is merged into %s in %s"
	gitMergeCheckMergedTemplateConstant                 = "%s is merged into %s in %s"
	gitMergeCheckFailureTemplateConstant                = "Merge check for %s against %s in %s returned exit code %d%s"
	gitMergeCheckExecutionFailureTemplateConstant       = "Unable to check merge status of %s against %s in %s: %s"
	gitBranchDeletionStartTemplateConstant              = "Removing local branch %s in %s"
	gitBranchForceDeletionStartTemplateConstant         = "Force removing local branch %s in %s"
	gitBranchDeletionSuccessTemplateConstant            = "Removed local branch %s in %s"
	gitBranchDeletionFailureTemplateConstant            = "Failed to remove local branch %s in %s (exit code %d%s)"
	gitBranchDeletionExecutionFailureTemplateConstant   = "Unable to remove local branch %s in %s: %s"
	gitPushDeletionStartTemplateConstant                = "Deleting remote branch %s from %s in %s"
	gitPushDeletionSuccessTemplateConstant              = "Deleted remote branch %s from %s in %s"
	gitPushDeletionFailureTemplateConstant              = "Failed to delete remote branch %s from %s in %s (exit code %d%s)"
	gitPushDeletionExecutionFailureTemplateConstant     = "Unable to delete remote branch %s from %s in %s: %s"
	gitLSRemoteHeadsStartTemplateConstant               = "Checking branches on %s from %s"
	gitLSRemoteHeadsSuccessTemplateConstant             = "Checked branches on %s from %s"
	gitLSRemoteHeadsFailureTemplateConstant             = "Failed to check branches on %s from %s (exit code %d%s)"
	gitLSRemoteHeadsExecutionFailureTemplateConstant    = "Unable to check branches on %s from %s: %s"
	gitFetchStartTemplateConstant                       = "Fetching from %s in %s"
	gitFetchSuccessTemplateConstant                     = "Fetched from %s in %s"
	gitFetchFailureTemplateConstant                     = "Failed to fetch from %s in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant            = "Unable to fetch from %s in %s: %s"
	gitRemoteLookupStartTemplateConstant                = "Checking %s remote for %s"
	gitRemoteLookupSuccessTemplateConstant              = "Read %s remote for %s"
	gitRemoteLookupFailureTemplateConstant              = "Failed to read %s remote for %s (exit code %d%s)"
	gitRemoteLookupExecutionFailureTemplateConstant     = "Unable to read %s remote for %s: %s"
)

const (
	githubPullRequestSubcommandNameConstant                 = "pr"
	githubPullRequestListSubcommandNameConstant             = "list"
	githubRepoSubcommandNameConstant                        = "repo"
	githubRepoViewSubcommandNameConstant                    = "view"
	githubHeadFlagConstant                                  = "--head"
	githubPullRequestListStartTemplateConstant              = "Listing pull requests in the current repository"
	githubPullRequestListSuccessTemplateConstant            = "Listed pull requests in the current repository"
	githubPullRequestListFailureTemplateConstant            = "Failed to list pull requests (exit code %d%s)"
	githubPullRequestListExecutionFailureTemplateConstant   = "Unable to list pull requests: %s"
	githubPullRequestLookupStartTemplateConstant            = "Looking up pull requests for branch %s"
	githubPullRequestLookupSuccessTemplateConstant          = "Looked up pull requests for branch %s"
	githubPullRequestLookupFailureTemplateConstant          = "Failed to look up pull requests for branch %s (exit code %d%s)"
	githubPullRequestLookupExecutionFailureTemplateConstant = "Unable to look up pull requests for branch %s: %s"
	githubRepoViewStartTemplateConstant                     = "Retrieving repository details"
	githubRepoViewSuccessTemplateConstant                   = "Retrieved repository details"
	githubRepoViewFailureTemplateConstant                   = "Failed to retrieve repository details (exit code %d%s)"
	githubRepoViewExecutionFailureTemplateConstant          = "Unable to retrieve repository details: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitForEachRefSubcommandNameConstant:
		return formatter.describeGitForEachRefMessage(command, result, failure, stage)
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitMergeBaseSubcommandNameConstant:
		return formatter.describeGitMergeBaseMessage(command, result, failure, stage)
	case gitBranchSubcommandNameConstant:
		return formatter.describeGitBranchMessage(command, result, failure, stage)
	case gitPushSubcommandNameConstant:
		return formatter.describeGitPushMessage(command, result, failure, stage)
	case gitLSRemoteSubcommandNameConstant:
		return formatter.describeGitLSRemoteMessage(command, result, failure, stage)
	case gitFetchSubcommandNameConstant:
		return formatter.describeGitFetchMessage(command, result, failure, stage)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitForEachRefMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName := formatter.extractRemoteTrackingRemote(command.Details.Arguments)

	if len(remoteName) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteBranchListStartTemplateConstant, remoteName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteBranchListSuccessTemplateConstant, remoteName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteBranchListFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteBranchListExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitLocalBranchListStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitLocalBranchListSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitLocalBranchListFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitLocalBranchListExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if !containsArgument(command.Details.Arguments, gitAbbrevRefFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCurrentBranchStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitCurrentBranchSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitCurrentBranchFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCurrentBranchExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMergeBaseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if !containsArgument(arguments, gitIsAncestorFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	positionalArguments := formatter.collectPositionalArguments(arguments[1:])
	branchReference := formatter.ensureValue(formatter.argumentAtIndex(positionalArguments, 0))
	baseReference := formatter.ensureValue(formatter.argumentAtIndex(positionalArguments, 1))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitMergeCheckStartTemplateConstant, branchReference, baseReference, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitMergeCheckMergedTemplateConstant, branchReference, baseReference, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitMergeCheckFailureTemplateConstant, branchReference, baseReference, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitMergeCheckExecutionFailureTemplateConstant, branchReference, baseReference, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitBranchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if !containsArgument(arguments, gitDeleteFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	positionalArguments := formatter.collectPositionalArguments(arguments[1:])
	branchName := formatter.ensureValue(formatter.argumentAtIndex(positionalArguments, 0))
	hasForceFlag := containsArgument(arguments, gitForceFlagConstant)

	switch stage {
	case messageStageStart:
		if hasForceFlag {
			return fmt.Sprintf(gitBranchForceDeletionStartTemplateConstant, branchName, workingDirectory)
		}
		return fmt.Sprintf(gitBranchDeletionStartTemplateConstant, branchName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitBranchDeletionSuccessTemplateConstant, branchName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitBranchDeletionFailureTemplateConstant, branchName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitBranchDeletionExecutionFailureTemplateConstant, branchName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitPushMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if !containsArgument(arguments, gitDeleteFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	positionalArguments := formatter.collectPositionalArguments(arguments[1:])
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(positionalArguments, 0))
	branchName := formatter.ensureValue(formatter.argumentAtIndex(positionalArguments, 1))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitPushDeletionStartTemplateConstant, branchName, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitPushDeletionSuccessTemplateConstant, branchName, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitPushDeletionFailureTemplateConstant, branchName, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitPushDeletionExecutionFailureTemplateConstant, branchName, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitLSRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if !containsArgument(arguments, gitHeadsFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	positionalArguments := formatter.collectPositionalArguments(arguments[1:])
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(positionalArguments, 0))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitLSRemoteHeadsStartTemplateConstant, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitLSRemoteHeadsSuccessTemplateConstant, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitLSRemoteHeadsFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitLSRemoteHeadsExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitFetchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	positionalArguments := formatter.collectPositionalArguments(command.Details.Arguments[1:])
	remoteName := formatter.argumentAtIndex(positionalArguments, 0)
	if len(strings.TrimSpace(remoteName)) == 0 {
		remoteName = gitFetchAllRemotesLabelConstant
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitFetchStartTemplateConstant, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitFetchSuccessTemplateConstant, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitFetchFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitFetchExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 || strings.TrimSpace(arguments[1]) != gitRemoteGetURLSubcommandConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRemoteLookupStartTemplateConstant, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitRemoteLookupSuccessTemplateConstant, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitRemoteLookupFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRemoteLookupExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) >= 2 && arguments[0] == githubPullRequestSubcommandNameConstant && arguments[1] == githubPullRequestListSubcommandNameConstant {
		headBranch := formatter.extractFlagValue(arguments, githubHeadFlagConstant)
		if len(headBranch) > 0 {
			switch stage {
			case messageStageStart:
				return fmt.Sprintf(githubPullRequestLookupStartTemplateConstant, headBranch)
			case messageStageSuccess:
				return fmt.Sprintf(githubPullRequestLookupSuccessTemplateConstant, headBranch)
			case messageStageFailure:
				return fmt.Sprintf(githubPullRequestLookupFailureTemplateConstant, headBranch, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
			case messageStageExecutionFailure:
				return fmt.Sprintf(githubPullRequestLookupExecutionFailureTemplateConstant, headBranch, formatter.describeFailure(failure))
			}
		}

		switch stage {
		case messageStageStart:
			return githubPullRequestListStartTemplateConstant
		case messageStageSuccess:
			return githubPullRequestListSuccessTemplateConstant
		case messageStageFailure:
			return fmt.Sprintf(githubPullRequestListFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubPullRequestListExecutionFailureTemplateConstant, formatter.describeFailure(failure))
		}
	}

	if len(arguments) >= 2 && arguments[0] == githubRepoSubcommandNameConstant && arguments[1] == githubRepoViewSubcommandNameConstant {
		switch stage {
		case messageStageStart:
			return githubRepoViewStartTemplateConstant
		case messageStageSuccess:
			return githubRepoViewSuccessTemplateConstant
		case messageStageFailure:
			return fmt.Sprintf(githubRepoViewFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubRepoViewExecutionFailureTemplateConstant, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return commandLabel
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	workingDirectorySuffix := emptyStringConstant
	if len(strings.TrimSpace(command.Details.WorkingDirectory)) > 0 {
		workingDirectorySuffix = fmt.Sprintf(workingDirectorySuffixTemplateConstant, command.Details.WorkingDirectory)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) extractRemoteTrackingRemote(arguments []string) string {
	for _, argument := range arguments {
		if !strings.HasPrefix(argument, gitRemoteTrackingRefPrefixConstant) {
			continue
		}
		remainder := strings.TrimPrefix(argument, gitRemoteTrackingRefPrefixConstant)
		segments := strings.SplitN(remainder, "/", refNamePlaceholderSegmentCountMaxInt)
		if len(segments) > 0 && len(strings.TrimSpace(segments[0])) > 0 {
			return segments[0]
		}
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) collectPositionalArguments(arguments []string) []string {
	positionalArguments := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		if strings.HasPrefix(argument, flagPrefixConstant) {
			continue
		}
		positionalArguments = append(positionalArguments, argument)
	}
	return positionalArguments
}

func (formatter CommandMessageFormatter) extractFlagValue(arguments []string, flagName string) string {
	for argumentIndex, argument := range arguments {
		if argument != flagName {
			continue
		}
		if argumentIndex+1 < len(arguments) {
			return strings.TrimSpace(arguments[argumentIndex+1])
		}
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return emptyStringConstant
	}
	return strings.TrimSpace(arguments[index])
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return value
}

func containsArgument(arguments []string, target string) bool {
	for _, argument := range arguments {
		if argument == target {
			return true
		}
	}
	return false
}
