package branches

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/forgebridge/forgebridge/internal/gitrepo"
)

const (
	fetchPruneFailedMessageConstant    = "Fetch with prune failed, continuing with cached remote state"
	metadataResolutionFailedMessage    = "Repository metadata resolution failed, fork exclusion degrades to the cross-repository flag"
	currentBranchNoticeMessageConstant = "Current branch is eligible for cleanup but cannot be deleted while checked out"
	noEligibleBranchesMessageConstant  = "No branches are eligible for deletion"
	cleanupSummaryMessageConstant      = "Branch cleanup finished"
	defaultBaseBranchNameConstant      = "main"
	baseReferenceSeparatorConstant     = "/"
	deletedLocalLogFieldNameConstant   = "deleted_local"
	deletedRemoteLogFieldNameConstant  = "deleted_remote"
	failedLogFieldNameConstant         = "failed"
	skippedLogFieldNameConstant        = "skipped"
	currentBranchLogFieldNameConstant  = "current_branch"
)

// CleanupOptions configures a single cleanup run.
type CleanupOptions struct {
	RemoteName        string
	BaseReference     string
	PullRequestLimit  int
	ProtectedBranches []string
	DryRun            bool
	Quiet             bool
	FetchPrune        bool
	WorkingDirectory  string
}

// normalize applies the same trimming and defaulting rules as the command configuration.
func (options CleanupOptions) normalize() CleanupOptions {
	configuration := CommandConfiguration{
		RemoteName:        options.RemoteName,
		BaseReference:     options.BaseReference,
		PullRequestLimit:  options.PullRequestLimit,
		ProtectedBranches: options.ProtectedBranches,
	}.sanitize()

	normalized := options
	normalized.RemoteName = configuration.RemoteName
	normalized.BaseReference = configuration.BaseReference
	normalized.PullRequestLimit = configuration.PullRequestLimit
	normalized.ProtectedBranches = configuration.ProtectedBranches
	return normalized
}

// Dependencies bundles the collaborators the cleanup service requires.
type Dependencies struct {
	Logger       *zap.Logger
	Repository   GitRepository
	PullRequests PullRequestReader
	Prompter     ConfirmationPrompter
}

// Service orchestrates branch inventory, classification, and deletion.
type Service struct {
	logger       *zap.Logger
	repository   GitRepository
	pullRequests PullRequestReader
	prompter     ConfirmationPrompter
}

// NewService validates the dependencies and constructs the cleanup service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Repository == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if dependencies.PullRequests == nil {
		return nil, ErrPullRequestsNotConfigured
	}
	if dependencies.Prompter == nil {
		return nil, ErrPrompterNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		logger:       logger,
		repository:   dependencies.Repository,
		pullRequests: dependencies.PullRequests,
		prompter:     dependencies.Prompter,
	}, nil
}

// Cleanup runs the full branch lifecycle pass for one repository.
//
// Individual branch deletion failures are reported in the summary rather than
// as an error: the run fails only when the repository state cannot be read or
// the user interaction breaks.
func (service *Service) Cleanup(executionContext context.Context, options CleanupOptions) (CleanupSummary, error) {
	options = options.normalize()

	if options.FetchPrune {
		if fetchError := service.repository.FetchPrune(executionContext, options.WorkingDirectory, options.RemoteName); fetchError != nil {
			service.logger.Warn(fetchPruneFailedMessageConstant, zap.Error(fetchError))
		}
	}

	inventory, inventoryError := CollectBranchInventory(executionContext, service.repository, options.WorkingDirectory, options.RemoteName)
	if inventoryError != nil {
		return CleanupSummary{}, inventoryError
	}

	repositoryFullName, defaultBranchName := service.resolveRepositoryIdentity(executionContext, options)
	baseReference := service.resolveBaseReference(options, defaultBranchName)

	lookup := NewPullRequestLookup(executionContext, service.logger, service.pullRequests, options.WorkingDirectory, repositoryFullName, options.PullRequestLimit)

	classifier := NewEligibilityClassifier(service.logger, service.repository, lookup)
	classification, classificationError := classifier.Classify(executionContext, inventory, options.WorkingDirectory, baseReference, options.ProtectedBranches)
	if classificationError != nil {
		return CleanupSummary{}, classificationError
	}

	service.reportCurrentBranchNotice(inventory, classification)

	if len(classification.Eligible) == 0 {
		service.logger.Info(noEligibleBranchesMessageConstant, zap.Int(skippedLogFieldNameConstant, len(classification.Skipped)))
		return CleanupSummary{Skipped: classification.Skipped}, nil
	}

	executor := NewDeletionExecutor(service.logger, service.repository, service.prompter)
	outcomes, executionError := executor.Execute(executionContext, classification.EligibleLocalOnly(), classification.EligibleWithRemote(), options)
	if executionError != nil {
		return CleanupSummary{Skipped: classification.Skipped}, executionError
	}

	summary := CleanupSummary{Outcomes: outcomes, Skipped: classification.Skipped}
	service.logger.Info(
		cleanupSummaryMessageConstant,
		zap.Int(deletedLocalLogFieldNameConstant, summary.DeletedLocalCount()),
		zap.Int(deletedRemoteLogFieldNameConstant, summary.DeletedRemoteCount()),
		zap.Int(failedLogFieldNameConstant, summary.FailureCount()),
		zap.Int(skippedLogFieldNameConstant, len(summary.Skipped)),
	)

	return summary, nil
}

// resolveRepositoryIdentity determines the repository full name and default
// branch, preferring forge metadata and falling back to the origin remote URL.
func (service *Service) resolveRepositoryIdentity(executionContext context.Context, options CleanupOptions) (string, string) {
	metadata, metadataError := service.pullRequests.ResolveRepoMetadata(executionContext, options.WorkingDirectory)
	if metadataError == nil {
		return metadata.NameWithOwner, metadata.DefaultBranch
	}

	service.logger.Warn(metadataResolutionFailedMessage, zap.Error(metadataError))

	remoteURLValue, remoteURLError := service.repository.GetRemoteURL(executionContext, options.WorkingDirectory, options.RemoteName)
	if remoteURLError != nil {
		return "", ""
	}

	parsedRemote, parseError := parseRemoteFullName(remoteURLValue)
	if parseError != nil {
		return "", ""
	}

	return parsedRemote, ""
}

func (service *Service) resolveBaseReference(options CleanupOptions, defaultBranchName string) string {
	if len(options.BaseReference) > 0 {
		return options.BaseReference
	}

	branchName := strings.TrimSpace(defaultBranchName)
	if len(branchName) == 0 {
		branchName = defaultBaseBranchNameConstant
	}

	return options.RemoteName + baseReferenceSeparatorConstant + branchName
}

// reportCurrentBranchNotice surfaces the skipped current branch, but only when
// the run will actually delete something else; an idle repository should not
// produce noise about its checked-out branch.
func (service *Service) reportCurrentBranchNotice(inventory BranchInventory, classification ClassificationResult) {
	if len(classification.Eligible) == 0 {
		return
	}

	for _, skippedBranch := range classification.Skipped {
		if skippedBranch.Reason == SkipReasonCurrentBranch {
			service.logger.Info(currentBranchNoticeMessageConstant, zap.String(currentBranchLogFieldNameConstant, inventory.CurrentBranch))
			return
		}
	}
}

func parseRemoteFullName(remoteURLValue string) (string, error) {
	parsedRemote, parseError := gitrepo.ParseRemoteURL(remoteURLValue)
	if parseError != nil {
		return "", parseError
	}
	return parsedRemote.FullName(), nil
}
