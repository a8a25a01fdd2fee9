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
	testLookupRepositoryPathConstant = "/workspace/project"
	testLookupRepositoryFullName     = "acme/widgets"
)

func sameRepoPullRequest(number int, state githubcli.PullRequestState, branchName string) githubcli.PullRequest {
	return githubcli.PullRequest{
		Number:                 number,
		State:                  state,
		HeadRefName:            branchName,
		HeadRepositoryFullName: testLookupRepositoryFullName,
	}
}

func TestBulkLookupIndexesSameRepositoryHeads(testInstance *testing.T) {
	reader := &fakePullRequestReader{
		bulkPullRequests: []githubcli.PullRequest{
			sameRepoPullRequest(1, githubcli.PullRequestStateMerged, "feature/done"),
			{
				Number:                 2,
				State:                  githubcli.PullRequestStateOpen,
				HeadRefName:            "feature/forked",
				HeadRepositoryFullName: "forker/widgets",
				IsCrossRepository:      true,
			},
			{
				Number:                 3,
				State:                  githubcli.PullRequestStateOpen,
				HeadRefName:            "feature/mirrored",
				HeadRepositoryFullName: "mirror/widgets",
			},
		},
	}

	lookup := branches.NewPullRequestLookup(context.Background(), zap.NewNop(), reader, testLookupRepositoryPathConstant, testLookupRepositoryFullName, 100)
	require.Equal(testInstance, 1, reader.bulkCalls)
	require.Equal(testInstance, []int{100}, reader.recordedLimits)

	donePullRequest, doneError := lookup.PullRequestForBranch(context.Background(), "feature/done")
	require.NoError(testInstance, doneError)
	require.NotNil(testInstance, donePullRequest)
	require.Equal(testInstance, 1, donePullRequest.Number)

	forkedPullRequest, forkedError := lookup.PullRequestForBranch(context.Background(), "feature/forked")
	require.NoError(testInstance, forkedError)
	require.Nil(testInstance, forkedPullRequest)

	mirroredPullRequest, mirroredError := lookup.PullRequestForBranch(context.Background(), "feature/mirrored")
	require.NoError(testInstance, mirroredError)
	require.Nil(testInstance, mirroredPullRequest)

	unknownPullRequest, unknownError := lookup.PullRequestForBranch(context.Background(), "feature/unknown")
	require.NoError(testInstance, unknownError)
	require.Nil(testInstance, unknownPullRequest)

	require.Empty(testInstance, reader.perBranchCalls)
}

func TestBulkLookupPrefersOpenPullRequest(testInstance *testing.T) {
	reader := &fakePullRequestReader{
		bulkPullRequests: []githubcli.PullRequest{
			sameRepoPullRequest(10, githubcli.PullRequestStateOpen, "feature/reused"),
			sameRepoPullRequest(11, githubcli.PullRequestStateClosed, "feature/reused"),
		},
	}

	lookup := branches.NewPullRequestLookup(context.Background(), zap.NewNop(), reader, testLookupRepositoryPathConstant, testLookupRepositoryFullName, 0)

	pullRequest, lookupError := lookup.PullRequestForBranch(context.Background(), "feature/reused")
	require.NoError(testInstance, lookupError)
	require.NotNil(testInstance, pullRequest)
	require.Equal(testInstance, 10, pullRequest.Number)
	require.True(testInstance, pullRequest.IsOpen())
}

func TestLookupDegradesToPerBranchOnBulkFailure(testInstance *testing.T) {
	reader := &fakePullRequestReader{
		bulkError: errors.New("gh: API rate limit exceeded"),
		perBranchPullRequests: map[string][]githubcli.PullRequest{
			"feature/active": {
				sameRepoPullRequest(20, githubcli.PullRequestStateClosed, "feature/active"),
				sameRepoPullRequest(21, githubcli.PullRequestStateOpen, "feature/active"),
			},
		},
	}

	lookup := branches.NewPullRequestLookup(context.Background(), zap.NewNop(), reader, testLookupRepositoryPathConstant, testLookupRepositoryFullName, 50)

	pullRequest, lookupError := lookup.PullRequestForBranch(context.Background(), "feature/active")
	require.NoError(testInstance, lookupError)
	require.NotNil(testInstance, pullRequest)
	require.Equal(testInstance, 21, pullRequest.Number)
	require.Equal(testInstance, []string{"feature/active"}, reader.perBranchCalls)
}

func TestPerBranchLookupContinuesWithoutDataOnFailure(testInstance *testing.T) {
	reader := &fakePullRequestReader{
		bulkError:       errors.New("gh: API rate limit exceeded"),
		perBranchErrors: map[string]error{"feature/odd": errors.New("gh: connection reset")},
	}

	lookup := branches.NewPullRequestLookup(context.Background(), zap.NewNop(), reader, testLookupRepositoryPathConstant, testLookupRepositoryFullName, 50)

	pullRequest, lookupError := lookup.PullRequestForBranch(context.Background(), "feature/odd")
	require.NoError(testInstance, lookupError)
	require.Nil(testInstance, pullRequest)
}

func TestPerBranchLookupExcludesForkHeads(testInstance *testing.T) {
	reader := &fakePullRequestReader{
		bulkError: errors.New("gh: unavailable"),
		perBranchPullRequests: map[string][]githubcli.PullRequest{
			"feature/shared-name": {
				{
					Number:                 30,
					State:                  githubcli.PullRequestStateOpen,
					HeadRefName:            "feature/shared-name",
					HeadRepositoryFullName: "forker/widgets",
					IsCrossRepository:      true,
				},
			},
		},
	}

	lookup := branches.NewPullRequestLookup(context.Background(), zap.NewNop(), reader, testLookupRepositoryPathConstant, testLookupRepositoryFullName, 50)

	pullRequest, lookupError := lookup.PullRequestForBranch(context.Background(), "feature/shared-name")
	require.NoError(testInstance, lookupError)
	require.Nil(testInstance, pullRequest)
}

func TestBulkLookupWithoutRepositoryIdentityUsesCrossRepositoryFlag(testInstance *testing.T) {
	reader := &fakePullRequestReader{
		bulkPullRequests: []githubcli.PullRequest{
			{
				Number:            40,
				State:             githubcli.PullRequestStateOpen,
				HeadRefName:       "feature/cross",
				IsCrossRepository: true,
			},
			sameRepoPullRequest(41, githubcli.PullRequestStateOpen, "feature/same"),
		},
	}

	lookup := branches.NewPullRequestLookup(context.Background(), zap.NewNop(), reader, testLookupRepositoryPathConstant, "", 50)

	crossPullRequest, crossError := lookup.PullRequestForBranch(context.Background(), "feature/cross")
	require.NoError(testInstance, crossError)
	require.Nil(testInstance, crossPullRequest)

	samePullRequest, sameError := lookup.PullRequestForBranch(context.Background(), "feature/same")
	require.NoError(testInstance, sameError)
	require.NotNil(testInstance, samePullRequest)
}
