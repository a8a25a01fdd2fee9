package branches

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/forgebridge/forgebridge/internal/execshell"
	"github.com/forgebridge/forgebridge/internal/githubcli"
	"github.com/forgebridge/forgebridge/internal/gitrepo"
	"github.com/forgebridge/forgebridge/internal/ui"
	"github.com/forgebridge/forgebridge/internal/utils"
)

const (
	commandUseConstant                    = "branch-cleanup"
	commandShortDescriptionConstant       = "Delete local and remote branches that are merged and closed"
	commandLongDescriptionConstant        = "branch-cleanup removes local Git branches that are merged into the base reference and carry no open pull request, together with their remote counterparts."
	commandExecutionErrorTemplateConstant = "branch cleanup failed: %w"
	unexpectedArgumentsMessageConstant    = "branch-cleanup does not accept positional arguments"
	flagRemoteNameConstant                = "remote"
	flagRemoteDescriptionConstant         = "Name of the remote holding branch counterparts"
	flagBaseNameConstant                  = "base"
	flagBaseDescriptionConstant           = "Base reference branches must be merged into (defaults to the remote default branch)"
	flagLimitNameConstant                 = "limit"
	flagLimitDescriptionConstant          = "Maximum number of pull requests to index"
	flagProtectedNameConstant             = "protected"
	flagProtectedDescriptionConstant      = "Branch names that are never deleted"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Preview deletions without making changes"
	flagQuietNameConstant                 = "quiet"
	flagQuietDescriptionConstant          = "Suppress confirmation prompts (unattended mode)"
	flagFetchNameConstant                 = "fetch"
	flagFetchDescriptionConstant          = "Fetch from the remote with pruning before classifying branches"
	defaultWorkingDirectoryConstant       = "."
	configurationFileInUseMessage         = "Using configuration file"
	configurationFileLogFieldNameConstant = "config_file"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the configuration backing the command flags.
type ConfigurationProvider func() CommandConfiguration

// CommandExecutor exposes the shell operations the cleanup command depends on.
type CommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CommandBuilder assembles the Cobra command for branch cleanup.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Executor              CommandExecutor
	Prompter              ConfirmationPrompter
	WorkingDirectory      string
}

// Build constructs the branch-cleanup command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	defaults := DefaultCommandConfiguration()

	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagRemoteNameConstant, defaults.RemoteName, flagRemoteDescriptionConstant)
	command.Flags().String(flagBaseNameConstant, defaults.BaseReference, flagBaseDescriptionConstant)
	command.Flags().Int(flagLimitNameConstant, defaults.PullRequestLimit, flagLimitDescriptionConstant)
	command.Flags().StringSlice(flagProtectedNameConstant, defaults.ProtectedBranches, flagProtectedDescriptionConstant)
	command.Flags().Bool(flagDryRunNameConstant, defaults.DryRun, flagDryRunDescriptionConstant)
	command.Flags().Bool(flagQuietNameConstant, defaults.Quiet, flagQuietDescriptionConstant)
	command.Flags().Bool(flagFetchNameConstant, defaults.FetchPrune, flagFetchDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	options := builder.buildOptions(command)

	logger := builder.resolveLogger()
	if configurationFilePath, configurationFilePathFound := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context()); configurationFilePathFound && len(configurationFilePath) > 0 {
		logger.Debug(configurationFileInUseMessage, zap.String(configurationFileLogFieldNameConstant, configurationFilePath))
	}
	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	repositoryManager, repositoryError := gitrepo.NewRepositoryManager(executor)
	if repositoryError != nil {
		return repositoryError
	}

	githubClient, clientError := githubcli.NewClient(executor)
	if clientError != nil {
		return clientError
	}

	service, serviceError := NewService(Dependencies{
		Logger:       logger,
		Repository:   repositoryManager,
		PullRequests: githubClient,
		Prompter:     builder.resolvePrompter(command),
	})
	if serviceError != nil {
		return serviceError
	}

	_, cleanupError := service.Cleanup(command.Context(), options)
	if cleanupError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, cleanupError)
	}

	return nil
}

// buildOptions starts from the configured values and applies explicit flag overrides.
func (builder *CommandBuilder) buildOptions(command *cobra.Command) CleanupOptions {
	configuration := builder.resolveConfiguration()

	options := CleanupOptions{
		RemoteName:        configuration.RemoteName,
		BaseReference:     configuration.BaseReference,
		PullRequestLimit:  configuration.PullRequestLimit,
		ProtectedBranches: configuration.ProtectedBranches,
		DryRun:            configuration.DryRun,
		Quiet:             configuration.Quiet,
		FetchPrune:        configuration.FetchPrune,
		WorkingDirectory:  builder.resolveWorkingDirectory(),
	}

	flags := command.Flags()
	if flags.Changed(flagRemoteNameConstant) {
		options.RemoteName, _ = flags.GetString(flagRemoteNameConstant)
	}
	if flags.Changed(flagBaseNameConstant) {
		options.BaseReference, _ = flags.GetString(flagBaseNameConstant)
	}
	if flags.Changed(flagLimitNameConstant) {
		options.PullRequestLimit, _ = flags.GetInt(flagLimitNameConstant)
	}
	if flags.Changed(flagProtectedNameConstant) {
		options.ProtectedBranches, _ = flags.GetStringSlice(flagProtectedNameConstant)
	}
	if flags.Changed(flagDryRunNameConstant) {
		options.DryRun, _ = flags.GetBool(flagDryRunNameConstant)
	}
	if flags.Changed(flagQuietNameConstant) {
		options.Quiet, _ = flags.GetBool(flagQuietNameConstant)
	}
	if flags.Changed(flagFetchNameConstant) {
		options.FetchPrune, _ = flags.GetBool(flagFetchNameConstant)
	}

	return options
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveWorkingDirectory() string {
	trimmedWorkingDirectory := strings.TrimSpace(builder.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryConstant
	}
	return trimmedWorkingDirectory
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (CommandExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	if creationError != nil {
		return nil, creationError
	}

	return shellExecutor, nil
}

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command) ConfirmationPrompter {
	if builder.Prompter != nil {
		return builder.Prompter
	}
	// Prompts must reach the terminal before the read blocks on stdin.
	return ui.NewIOConfirmationPrompter(command.InOrStdin(), utils.NewFlushingWriter(command.OutOrStdout()))
}
