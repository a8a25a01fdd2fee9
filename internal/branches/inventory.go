package branches

import (
	"context"
	"fmt"
)

const (
	localBranchInventoryErrorTemplateConstant   = "listing local branches: %w"
	remoteBranchInventoryErrorTemplateConstant  = "listing remote branches for %s: %w"
	currentBranchInventoryErrorTemplateConstant = "resolving current branch: %w"
)

// CollectBranchInventory gathers local branches, remote-tracking branches, and
// the current branch for the repository. Any failure is fatal because the
// classifier cannot make safe decisions from a partial inventory.
func CollectBranchInventory(executionContext context.Context, repository GitRepository, repositoryPath string, remoteName string) (BranchInventory, error) {
	localBranches, localError := repository.ListLocalBranches(executionContext, repositoryPath)
	if localError != nil {
		return BranchInventory{}, fmt.Errorf(localBranchInventoryErrorTemplateConstant, localError)
	}

	remoteBranchNames, remoteError := repository.ListRemoteBranches(executionContext, repositoryPath, remoteName)
	if remoteError != nil {
		return BranchInventory{}, fmt.Errorf(remoteBranchInventoryErrorTemplateConstant, remoteName, remoteError)
	}

	currentBranch, currentError := repository.GetCurrentBranch(executionContext, repositoryPath)
	if currentError != nil {
		return BranchInventory{}, fmt.Errorf(currentBranchInventoryErrorTemplateConstant, currentError)
	}

	remoteBranchSet := make(map[string]struct{}, len(remoteBranchNames))
	for _, remoteBranchName := range remoteBranchNames {
		remoteBranchSet[remoteBranchName] = struct{}{}
	}

	return BranchInventory{
		LocalBranches:  localBranches,
		RemoteBranches: remoteBranchSet,
		CurrentBranch:  currentBranch,
	}, nil
}
