package branches

import (
	"context"

	"go.uber.org/zap"
)

const (
	mergeCheckFailedMessageConstant    = "Merge state could not be determined, skipping branch"
	lookupFailedDuringClassifyConstant = "Pull request lookup failed, classifying branch without pull request data"
	baseReferenceLogFieldNameConstant  = "base_ref"
)

// EligibilityClassifier applies the ordered deletion policy to a branch inventory.
//
// The policy checks, in order: protected list, current branch, open pull
// request, merge state against the base reference. A branch survives deletion
// on the first check that matches; only branches passing every check become
// deletion candidates.
type EligibilityClassifier struct {
	logger     *zap.Logger
	repository GitRepository
	lookup     PullRequestLookup
}

// NewEligibilityClassifier constructs a classifier over the provided collaborators.
func NewEligibilityClassifier(logger *zap.Logger, repository GitRepository, lookup PullRequestLookup) *EligibilityClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EligibilityClassifier{logger: logger, repository: repository, lookup: lookup}
}

// Classify partitions the inventory into deletion candidates and skipped branches.
//
// A merge check that cannot produce a definitive answer skips the branch:
// unknown merge state is never treated as merged.
func (classifier *EligibilityClassifier) Classify(executionContext context.Context, inventory BranchInventory, repositoryPath string, baseReference string, protectedBranches []string) (ClassificationResult, error) {
	protectedSet := make(map[string]struct{}, len(protectedBranches))
	for _, protectedBranchName := range protectedBranches {
		protectedSet[protectedBranchName] = struct{}{}
	}

	result := ClassificationResult{
		Eligible: make([]BranchCandidate, 0, len(inventory.LocalBranches)),
		Skipped:  make([]SkippedBranch, 0),
	}

	for _, branchName := range inventory.LocalBranches {
		if _, isProtected := protectedSet[branchName]; isProtected {
			result.Skipped = append(result.Skipped, SkippedBranch{Name: branchName, Reason: SkipReasonProtected})
			continue
		}

		if branchName == inventory.CurrentBranch {
			result.Skipped = append(result.Skipped, SkippedBranch{Name: branchName, Reason: SkipReasonCurrentBranch})
			continue
		}

		pullRequest, lookupError := classifier.lookup.PullRequestForBranch(executionContext, branchName)
		if lookupError != nil {
			// Missing forge data must never block cleanup; the merge check below
			// remains the safety gate.
			classifier.logger.Warn(lookupFailedDuringClassifyConstant, zap.String(branchLogFieldNameConstant, branchName), zap.Error(lookupError))
			pullRequest = nil
		}
		if pullRequest != nil && pullRequest.IsOpen() {
			result.Skipped = append(result.Skipped, SkippedBranch{Name: branchName, Reason: SkipReasonOpenPullRequest})
			continue
		}

		merged, mergeError := classifier.repository.IsMergedInto(executionContext, repositoryPath, branchName, baseReference)
		if mergeError != nil {
			classifier.logger.Warn(
				mergeCheckFailedMessageConstant,
				zap.String(branchLogFieldNameConstant, branchName),
				zap.String(baseReferenceLogFieldNameConstant, baseReference),
				zap.Error(mergeError),
			)
			result.Skipped = append(result.Skipped, SkippedBranch{Name: branchName, Reason: SkipReasonMergeUnknown})
			continue
		}
		if !merged {
			result.Skipped = append(result.Skipped, SkippedBranch{Name: branchName, Reason: SkipReasonNotMerged})
			continue
		}

		result.Eligible = append(result.Eligible, BranchCandidate{
			Name:        branchName,
			HasRemote:   inventory.HasRemoteBranch(branchName),
			PullRequest: pullRequest,
		})
	}

	return result, nil
}
