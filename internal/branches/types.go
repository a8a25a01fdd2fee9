package branches

import "github.com/forgebridge/forgebridge/internal/githubcli"

// SkipReason explains why a branch was excluded from deletion.
type SkipReason string

// Skip reason enumerations, ordered by classification precedence.
const (
	SkipReasonProtected       SkipReason = SkipReason("protected")
	SkipReasonCurrentBranch   SkipReason = SkipReason("current_branch")
	SkipReasonOpenPullRequest SkipReason = SkipReason("open_pull_request")
	SkipReasonNotMerged       SkipReason = SkipReason("not_merged")
	SkipReasonMergeUnknown    SkipReason = SkipReason("merge_state_unknown")
)

// BranchInventory captures the branch topology of a repository at one point in time.
type BranchInventory struct {
	LocalBranches  []string
	RemoteBranches map[string]struct{}
	CurrentBranch  string
}

// HasRemoteBranch reports whether the inventory tracks a remote branch with the provided name.
func (inventory BranchInventory) HasRemoteBranch(branchName string) bool {
	_, exists := inventory.RemoteBranches[branchName]
	return exists
}

// BranchCandidate pairs a local branch with the facts the classifier derived for it.
type BranchCandidate struct {
	Name        string
	HasRemote   bool
	PullRequest *githubcli.PullRequest
}

// SkippedBranch records a branch excluded from deletion and the reason.
type SkippedBranch struct {
	Name   string
	Reason SkipReason
}

// ClassificationResult partitions a branch inventory into deletion candidates and skipped branches.
type ClassificationResult struct {
	Eligible []BranchCandidate
	Skipped  []SkippedBranch
}

// EligibleWithRemote returns the candidates that also have a branch on the remote.
func (result ClassificationResult) EligibleWithRemote() []BranchCandidate {
	withRemote := make([]BranchCandidate, 0, len(result.Eligible))
	for _, candidate := range result.Eligible {
		if candidate.HasRemote {
			withRemote = append(withRemote, candidate)
		}
	}
	return withRemote
}

// EligibleLocalOnly returns the candidates with no counterpart on the remote.
func (result ClassificationResult) EligibleLocalOnly() []BranchCandidate {
	localOnly := make([]BranchCandidate, 0, len(result.Eligible))
	for _, candidate := range result.Eligible {
		if !candidate.HasRemote {
			localOnly = append(localOnly, candidate)
		}
	}
	return localOnly
}

// DeletionFailureKind distinguishes which half of a deletion failed.
type DeletionFailureKind string

// Deletion failure kinds.
const (
	DeletionFailureNone           DeletionFailureKind = DeletionFailureKind("")
	DeletionFailureLocalDelete    DeletionFailureKind = DeletionFailureKind("local_delete")
	DeletionFailureNotFullyMerged DeletionFailureKind = DeletionFailureKind("not_fully_merged")
	DeletionFailureForcedDelete   DeletionFailureKind = DeletionFailureKind("forced_delete")
	DeletionFailureRemoteDelete   DeletionFailureKind = DeletionFailureKind("remote_delete")
)

// DeletionOutcome records what happened to one branch during execution.
type DeletionOutcome struct {
	BranchName     string
	LocalDeleted   bool
	RemoteDeleted  bool
	ForcedRecovery bool
	DryRun         bool
	FailureKind    DeletionFailureKind
	Failure        error
}

// Succeeded reports whether the branch was handled without failures.
func (outcome DeletionOutcome) Succeeded() bool {
	return outcome.FailureKind == DeletionFailureNone
}

// CleanupSummary aggregates the results of one cleanup run.
type CleanupSummary struct {
	Outcomes []DeletionOutcome
	Skipped  []SkippedBranch
}

// DeletedLocalCount returns how many local branches were removed.
func (summary CleanupSummary) DeletedLocalCount() int {
	deletedCount := 0
	for _, outcome := range summary.Outcomes {
		if outcome.LocalDeleted {
			deletedCount++
		}
	}
	return deletedCount
}

// DeletedRemoteCount returns how many remote branches were removed.
func (summary CleanupSummary) DeletedRemoteCount() int {
	deletedCount := 0
	for _, outcome := range summary.Outcomes {
		if outcome.RemoteDeleted {
			deletedCount++
		}
	}
	return deletedCount
}

// FailureCount returns how many branches encountered deletion failures.
func (summary CleanupSummary) FailureCount() int {
	failureCount := 0
	for _, outcome := range summary.Outcomes {
		if !outcome.Succeeded() {
			failureCount++
		}
	}
	return failureCount
}
