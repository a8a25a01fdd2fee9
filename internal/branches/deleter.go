package branches

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/forgebridge/forgebridge/internal/gitrepo"
)

const (
	protectedRecheckMessageConstant       = "Branch became protected after classification, refusing to delete"
	batchDeclinedMessageConstant          = "Branch deletion declined"
	dryRunLocalDeletionMessageConstant    = "Would delete local branch"
	dryRunRemoteDeletionMessageConstant   = "Would delete remote branch"
	staleRemoteRecoveryMessageConstant    = "Remote branch is gone, force deleting stale local branch"
	localDeletionFailedMessageConstant    = "Local branch deletion failed"
	remoteDeletionFailedMessageConstant   = "Remote branch deletion failed"
	remoteProbeFailedMessageConstant      = "Remote branch probe failed after refused deletion"
	remoteNameLogFieldNameConstant        = "remote"
	batchSizeLogFieldNameConstant         = "branches"
	localOnlyPromptTemplateConstant       = "Delete %d local branch(es) with no counterpart on %s? [y/N]: "
	withRemotePromptTemplateConstant      = "Delete %d local branch(es) and their copies on %s? [y/N]: "
	confirmationFailedTemplateConstant    = "confirmation prompt failed: %w"
	forcedDeletionFailedTemplateConstant  = "forced deletion after refused deletion failed: %w"
	refusedThenForcedFailTemplateConstant = "%w; %w"
)

// DeletionExecutor deletes classified branch candidates one batch at a time.
//
// Failures are recorded per branch and never abort the batch: one branch that
// cannot be deleted must not strand the remaining candidates.
type DeletionExecutor struct {
	logger     *zap.Logger
	repository GitRepository
	prompter   ConfirmationPrompter
}

// NewDeletionExecutor constructs an executor over the provided repository manager and prompter.
func NewDeletionExecutor(logger *zap.Logger, repository GitRepository, prompter ConfirmationPrompter) *DeletionExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeletionExecutor{logger: logger, repository: repository, prompter: prompter}
}

// Execute deletes the local-only batch and then the with-remote batch,
// accumulating one outcome per branch.
//
// Each batch is gated by its own confirmation prompt unless the run is quiet
// or a dry run; a declined prompt skips that whole batch without producing
// outcomes. Only prompting failures are returned as errors.
func (executor *DeletionExecutor) Execute(executionContext context.Context, localOnly []BranchCandidate, withRemote []BranchCandidate, options CleanupOptions) ([]DeletionOutcome, error) {
	outcomes := make([]DeletionOutcome, 0, len(localOnly)+len(withRemote))

	localOnlyOutcomes, localOnlyError := executor.executeBatch(executionContext, localOnly, options, false)
	if localOnlyError != nil {
		return outcomes, localOnlyError
	}
	outcomes = append(outcomes, localOnlyOutcomes...)

	withRemoteOutcomes, withRemoteError := executor.executeBatch(executionContext, withRemote, options, true)
	if withRemoteError != nil {
		return outcomes, withRemoteError
	}
	outcomes = append(outcomes, withRemoteOutcomes...)

	return outcomes, nil
}

func (executor *DeletionExecutor) executeBatch(executionContext context.Context, candidates []BranchCandidate, options CleanupOptions, deleteRemoteCopies bool) ([]DeletionOutcome, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	confirmed, confirmationError := executor.confirmBatch(candidates, options, deleteRemoteCopies)
	if confirmationError != nil {
		return nil, fmt.Errorf(confirmationFailedTemplateConstant, confirmationError)
	}
	if !confirmed {
		executor.logger.Info(batchDeclinedMessageConstant, zap.Int(batchSizeLogFieldNameConstant, len(candidates)))
		return nil, nil
	}

	protectedSet := make(map[string]struct{}, len(options.ProtectedBranches))
	for _, protectedBranchName := range options.ProtectedBranches {
		protectedSet[protectedBranchName] = struct{}{}
	}

	outcomes := make([]DeletionOutcome, 0, len(candidates))
	for _, candidate := range candidates {
		if _, isProtected := protectedSet[candidate.Name]; isProtected {
			executor.logger.Warn(protectedRecheckMessageConstant, zap.String(branchLogFieldNameConstant, candidate.Name))
			continue
		}

		outcomes = append(outcomes, executor.deleteCandidate(executionContext, candidate, options, deleteRemoteCopies))
	}

	return outcomes, nil
}

func (executor *DeletionExecutor) confirmBatch(candidates []BranchCandidate, options CleanupOptions, deleteRemoteCopies bool) (bool, error) {
	if options.DryRun || options.Quiet {
		return true, nil
	}

	promptTemplate := localOnlyPromptTemplateConstant
	if deleteRemoteCopies {
		promptTemplate = withRemotePromptTemplateConstant
	}

	return executor.prompter.Confirm(fmt.Sprintf(promptTemplate, len(candidates), options.RemoteName))
}

func (executor *DeletionExecutor) deleteCandidate(executionContext context.Context, candidate BranchCandidate, options CleanupOptions, deleteRemoteCopies bool) DeletionOutcome {
	outcome := DeletionOutcome{BranchName: candidate.Name, DryRun: options.DryRun}

	if options.DryRun {
		executor.logger.Info(dryRunLocalDeletionMessageConstant, zap.String(branchLogFieldNameConstant, candidate.Name))
		if deleteRemoteCopies && candidate.HasRemote {
			executor.logger.Info(
				dryRunRemoteDeletionMessageConstant,
				zap.String(branchLogFieldNameConstant, candidate.Name),
				zap.String(remoteNameLogFieldNameConstant, options.RemoteName),
			)
		}
		return outcome
	}

	remoteConfirmedMissing := false

	deletionError := executor.repository.DeleteLocalBranch(executionContext, options.WorkingDirectory, candidate.Name, false)
	switch {
	case deletionError == nil:
		outcome.LocalDeleted = true
	case errors.Is(deletionError, gitrepo.ErrBranchNotFullyMerged):
		outcome = executor.recoverRefusedDeletion(executionContext, candidate, options, outcome, deletionError, &remoteConfirmedMissing)
	default:
		executor.logger.Warn(localDeletionFailedMessageConstant, zap.String(branchLogFieldNameConstant, candidate.Name), zap.Error(deletionError))
		outcome.FailureKind = DeletionFailureLocalDelete
		outcome.Failure = deletionError
	}

	if outcome.LocalDeleted && deleteRemoteCopies && candidate.HasRemote && !remoteConfirmedMissing {
		remoteError := executor.repository.DeleteRemoteBranch(executionContext, options.WorkingDirectory, options.RemoteName, candidate.Name)
		if remoteError != nil {
			executor.logger.Warn(
				remoteDeletionFailedMessageConstant,
				zap.String(branchLogFieldNameConstant, candidate.Name),
				zap.String(remoteNameLogFieldNameConstant, options.RemoteName),
				zap.Error(remoteError),
			)
			outcome.FailureKind = DeletionFailureRemoteDelete
			outcome.Failure = remoteError
		} else {
			outcome.RemoteDeleted = true
		}
	}

	return outcome
}

// recoverRefusedDeletion handles the branch whose non-forced deletion git
// refused. When the remote branch no longer exists the local branch is only
// unmerged relative to a stale remote-tracking ref, so a forced deletion is
// safe. When the remote branch still exists the refusal stands.
func (executor *DeletionExecutor) recoverRefusedDeletion(executionContext context.Context, candidate BranchCandidate, options CleanupOptions, outcome DeletionOutcome, refusalError error, remoteConfirmedMissing *bool) DeletionOutcome {
	remoteExists, probeError := executor.repository.RemoteBranchExists(executionContext, options.WorkingDirectory, options.RemoteName, candidate.Name)
	if probeError != nil {
		executor.logger.Warn(remoteProbeFailedMessageConstant, zap.String(branchLogFieldNameConstant, candidate.Name), zap.Error(probeError))
		outcome.FailureKind = DeletionFailureNotFullyMerged
		outcome.Failure = refusalError
		return outcome
	}

	if remoteExists {
		outcome.FailureKind = DeletionFailureNotFullyMerged
		outcome.Failure = refusalError
		return outcome
	}

	*remoteConfirmedMissing = true

	executor.logger.Info(staleRemoteRecoveryMessageConstant, zap.String(branchLogFieldNameConstant, candidate.Name))
	forcedError := executor.repository.DeleteLocalBranch(executionContext, options.WorkingDirectory, candidate.Name, true)
	if forcedError != nil {
		executor.logger.Warn(localDeletionFailedMessageConstant, zap.String(branchLogFieldNameConstant, candidate.Name), zap.Error(forcedError))
		outcome.FailureKind = DeletionFailureForcedDelete
		outcome.Failure = fmt.Errorf(refusedThenForcedFailTemplateConstant, refusalError, fmt.Errorf(forcedDeletionFailedTemplateConstant, forcedError))
		return outcome
	}

	outcome.LocalDeleted = true
	outcome.ForcedRecovery = true
	return outcome
}
