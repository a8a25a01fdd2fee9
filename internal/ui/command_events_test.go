package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/forgebridge/forgebridge/internal/execshell"
	"github.com/forgebridge/forgebridge/internal/ui"
)

const (
	testEventWorkingDirectoryConstant = "/workspace/project"
	testEventBranchNameConstant       = "feature/login"
)

func buildBranchDeletionCommand() execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"branch", "--delete", testEventBranchNameConstant},
			WorkingDirectory: testEventWorkingDirectoryConstant,
		},
	}
}

func TestConsoleCommandEventLoggerLogsLifecycle(testInstance *testing.T) {
	testCases := []struct {
		name            string
		emitEvent       func(eventLogger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "started_event",
			emitEvent: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandStarted(buildBranchDeletionCommand())
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "Removing local branch feature/login in /workspace/project",
		},
		{
			name: "completed_event",
			emitEvent: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandCompleted(buildBranchDeletionCommand(), execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "Removed local branch feature/login in /workspace/project",
		},
		{
			name: "failed_event",
			emitEvent: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandCompleted(buildBranchDeletionCommand(), execshell.ExecutionResult{ExitCode: 1, StandardError: "denied"})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: "Failed to remove local branch feature/login in /workspace/project (exit code 1: denied)",
		},
		{
			name: "execution_failure_event",
			emitEvent: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandExecutionFailed(buildBranchDeletionCommand(), errors.New("git missing"))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: "Unable to remove local branch feature/login in /workspace/project: git missing",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zap.DebugLevel)
			eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observerCore))

			testCase.emitEvent(eventLogger)

			loggedEntries := observedLogs.All()
			require.Len(testInstance, loggedEntries, 1)
			require.Equal(testInstance, testCase.expectedLevel, loggedEntries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, loggedEntries[0].Message)
		})
	}
}

func TestConsoleCommandEventLoggerToleratesNilLogger(testInstance *testing.T) {
	eventLogger := ui.NewConsoleCommandEventLogger(nil)
	require.NotNil(testInstance, eventLogger)

	eventLogger.CommandStarted(buildBranchDeletionCommand())
	eventLogger.CommandCompleted(buildBranchDeletionCommand(), execshell.ExecutionResult{})
	eventLogger.CommandExecutionFailed(buildBranchDeletionCommand(), errors.New("failure"))
}
