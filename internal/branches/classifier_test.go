package branches_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/forgebridge/forgebridge/internal/branches"
	"github.com/forgebridge/forgebridge/internal/githubcli"
)

const (
	testClassifierRepositoryPathConstant = "/workspace/project"
	testClassifierBaseReferenceConstant  = "origin/main"
)

func buildInventory(localBranches []string, remoteBranches []string, currentBranch string) branches.BranchInventory {
	remoteBranchSet := make(map[string]struct{}, len(remoteBranches))
	for _, remoteBranchName := range remoteBranches {
		remoteBranchSet[remoteBranchName] = struct{}{}
	}
	return branches.BranchInventory{
		LocalBranches:  localBranches,
		RemoteBranches: remoteBranchSet,
		CurrentBranch:  currentBranch,
	}
}

func openPullRequest(branchName string) *githubcli.PullRequest {
	return &githubcli.PullRequest{Number: 7, State: githubcli.PullRequestStateOpen, HeadRefName: branchName}
}

func mergedPullRequest(branchName string) *githubcli.PullRequest {
	return &githubcli.PullRequest{Number: 8, State: githubcli.PullRequestStateMerged, HeadRefName: branchName}
}

func TestClassifyAppliesOrderedPolicy(testInstance *testing.T) {
	testCases := []struct {
		name            string
		localBranches   []string
		remoteBranches  []string
		currentBranch   string
		protected       []string
		pullRequests    map[string]*githubcli.PullRequest
		mergedBranches  map[string]bool
		mergeErrors     map[string]error
		expectedSkipped []branches.SkippedBranch
		expectedNames   []string
	}{
		{
			name:          "protected_precedes_current",
			localBranches: []string{"main"},
			currentBranch: "main",
			protected:     []string{"main"},
			expectedSkipped: []branches.SkippedBranch{
				{Name: "main", Reason: branches.SkipReasonProtected},
			},
		},
		{
			name:          "current_precedes_open_pull_request",
			localBranches: []string{"feature/login"},
			currentBranch: "feature/login",
			pullRequests:  map[string]*githubcli.PullRequest{"feature/login": openPullRequest("feature/login")},
			expectedSkipped: []branches.SkippedBranch{
				{Name: "feature/login", Reason: branches.SkipReasonCurrentBranch},
			},
		},
		{
			name:           "open_pull_request_precedes_merge_check",
			localBranches:  []string{"feature/login"},
			currentBranch:  "main",
			pullRequests:   map[string]*githubcli.PullRequest{"feature/login": openPullRequest("feature/login")},
			mergedBranches: map[string]bool{"feature/login": true},
			expectedSkipped: []branches.SkippedBranch{
				{Name: "feature/login", Reason: branches.SkipReasonOpenPullRequest},
			},
		},
		{
			name:           "unmerged_branch_skipped",
			localBranches:  []string{"feature/wip"},
			currentBranch:  "main",
			mergedBranches: map[string]bool{"feature/wip": false},
			expectedSkipped: []branches.SkippedBranch{
				{Name: "feature/wip", Reason: branches.SkipReasonNotMerged},
			},
		},
		{
			name:          "merge_unknown_skipped",
			localBranches: []string{"feature/odd"},
			currentBranch: "main",
			mergeErrors:   map[string]error{"feature/odd": errors.New("fatal: bad object")},
			expectedSkipped: []branches.SkippedBranch{
				{Name: "feature/odd", Reason: branches.SkipReasonMergeUnknown},
			},
		},
		{
			name:           "merged_closed_branch_eligible",
			localBranches:  []string{"feature/done", "feature/local"},
			remoteBranches: []string{"feature/done"},
			currentBranch:  "main",
			pullRequests:   map[string]*githubcli.PullRequest{"feature/done": mergedPullRequest("feature/done")},
			mergedBranches: map[string]bool{"feature/done": true, "feature/local": true},
			expectedNames:  []string{"feature/done", "feature/local"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			repository := &fakeRepository{
				mergedBranches: testCase.mergedBranches,
				mergeErrors:    testCase.mergeErrors,
			}
			lookup := staticLookup{pullRequests: testCase.pullRequests}

			classifier := branches.NewEligibilityClassifier(zap.NewNop(), repository, lookup)
			inventory := buildInventory(testCase.localBranches, testCase.remoteBranches, testCase.currentBranch)

			result, classificationError := classifier.Classify(context.Background(), inventory, testClassifierRepositoryPathConstant, testClassifierBaseReferenceConstant, testCase.protected)
			require.NoError(testInstance, classificationError)

			if len(testCase.expectedSkipped) > 0 {
				require.Equal(testInstance, testCase.expectedSkipped, result.Skipped)
			}

			eligibleNames := make([]string, 0, len(result.Eligible))
			for _, candidate := range result.Eligible {
				eligibleNames = append(eligibleNames, candidate.Name)
			}
			require.Equal(testInstance, testCase.expectedNames, coalesceNames(eligibleNames))
		})
	}
}

func coalesceNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	return names
}

func TestClassifyMarksRemotePresence(testInstance *testing.T) {
	repository := &fakeRepository{
		mergedBranches: map[string]bool{"feature/done": true, "feature/local": true},
	}
	classifier := branches.NewEligibilityClassifier(zap.NewNop(), repository, staticLookup{})
	inventory := buildInventory([]string{"feature/done", "feature/local"}, []string{"feature/done"}, "main")

	result, classificationError := classifier.Classify(context.Background(), inventory, testClassifierRepositoryPathConstant, testClassifierBaseReferenceConstant, nil)
	require.NoError(testInstance, classificationError)
	require.Len(testInstance, result.Eligible, 2)
	require.True(testInstance, result.Eligible[0].HasRemote)
	require.False(testInstance, result.Eligible[1].HasRemote)

	withRemote := result.EligibleWithRemote()
	require.Len(testInstance, withRemote, 1)
	require.Equal(testInstance, "feature/done", withRemote[0].Name)

	localOnly := result.EligibleLocalOnly()
	require.Len(testInstance, localOnly, 1)
	require.Equal(testInstance, "feature/local", localOnly[0].Name)
}

func TestClassifyToleratesPullRequestLookupFailures(testInstance *testing.T) {
	repository := &fakeRepository{
		mergedBranches: map[string]bool{"feature/done": true, "feature/wip": false},
	}
	lookup := staticLookup{lookupError: errors.New("gh: connection refused")}
	classifier := branches.NewEligibilityClassifier(zap.NewNop(), repository, lookup)
	inventory := buildInventory([]string{"feature/done", "feature/wip"}, nil, "main")

	result, classificationError := classifier.Classify(context.Background(), inventory, testClassifierRepositoryPathConstant, testClassifierBaseReferenceConstant, nil)
	require.NoError(testInstance, classificationError)

	// The merge check stays in charge when forge data is unavailable.
	require.Len(testInstance, result.Eligible, 1)
	require.Equal(testInstance, "feature/done", result.Eligible[0].Name)
	require.Nil(testInstance, result.Eligible[0].PullRequest)
	require.Equal(testInstance, []branches.SkippedBranch{{Name: "feature/wip", Reason: branches.SkipReasonNotMerged}}, result.Skipped)
}

func TestClassifyUsesProvidedBaseReference(testInstance *testing.T) {
	repository := &fakeRepository{
		mergedBranches: map[string]bool{"feature/done": true},
	}
	classifier := branches.NewEligibilityClassifier(zap.NewNop(), repository, staticLookup{})
	inventory := buildInventory([]string{"feature/done"}, nil, "main")

	_, classificationError := classifier.Classify(context.Background(), inventory, testClassifierRepositoryPathConstant, "origin/trunk", nil)
	require.NoError(testInstance, classificationError)
	require.Equal(testInstance, []string{"origin/trunk"}, repository.mergeBaseCalls)
}
