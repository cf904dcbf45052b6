package gitrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/quarkusio/get-contributors/internal/execshell"
)

const (
	gitCloneSubcommandConstant   = "clone"
	gitBranchFlagConstant        = "--branch"
	gitNoPagerFlagConstant       = "--no-pager"
	gitLogSubcommandConstant     = "log"
	gitAuthorFormatFlagConstant  = "--format=%an;%ae"
	gitNoMergesFlagConstant      = "--no-merges"
	gitSinceFlagConstant         = "--since"
	gitPathSeparatorConstant     = "--"
	gitRepositoryRootConstant    = "."
	historySinceLayoutConstant   = "2006-01-02"
	remoteURLFieldConstant       = "remote_url"
	targetDirectoryFieldConstant = "target_directory"
	repositoryPathFieldConstant  = "repository_path"
	sinceFieldConstant           = "since"
)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CloneRequest describes a clone into a scratch directory.
type CloneRequest struct {
	RemoteURL       string
	TargetDirectory string
	Branch          string
}

// HistoryRequest describes an author listing for one repository clone.
// Revision defaults to HEAD; Path defaults to the repository root.
type HistoryRequest struct {
	RepositoryPath string
	Since          time.Time
	Revision       string
	Path           string
}

// HistoryOutput holds the captured streams of a history listing.
type HistoryOutput struct {
	Log           string
	StandardError string
}

// HistoryManager clones repositories and lists their commit authors.
type HistoryManager struct {
	executor GitExecutor
}

// NewHistoryManager constructs a HistoryManager backed by the executor.
func NewHistoryManager(executor GitExecutor) (*HistoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &HistoryManager{executor: executor}, nil
}

// Clone runs `git clone [--branch B] <url> <target>`.
func (manager *HistoryManager) Clone(executionContext context.Context, request CloneRequest) error {
	if len(strings.TrimSpace(request.RemoteURL)) == 0 {
		return InvalidInputError{Field: remoteURLFieldConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(request.TargetDirectory)) == 0 {
		return InvalidInputError{Field: targetDirectoryFieldConstant, Message: requiredValueMessageConstant}
	}

	arguments := []string{gitCloneSubcommandConstant}
	if trimmedBranch := strings.TrimSpace(request.Branch); len(trimmedBranch) > 0 {
		arguments = append(arguments, gitBranchFlagConstant, trimmedBranch)
	}
	arguments = append(arguments, request.RemoteURL, request.TargetDirectory)

	if _, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{Arguments: arguments}); executionError != nil {
		return OperationError{Operation: OperationClone, Repository: request.RemoteURL, Cause: executionError}
	}
	return nil
}

// ExtractHistory runs `git log` for non-merge commits since the cutoff date.
// The captured streams are returned even when git exits with a non-zero code.
func (manager *HistoryManager) ExtractHistory(executionContext context.Context, request HistoryRequest) (HistoryOutput, error) {
	if len(strings.TrimSpace(request.RepositoryPath)) == 0 {
		return HistoryOutput{}, InvalidInputError{Field: repositoryPathFieldConstant, Message: requiredValueMessageConstant}
	}
	if request.Since.IsZero() {
		return HistoryOutput{}, InvalidInputError{Field: sinceFieldConstant, Message: requiredValueMessageConstant}
	}

	historyPath := strings.TrimSpace(request.Path)
	if len(historyPath) == 0 {
		historyPath = gitRepositoryRootConstant
	}

	arguments := []string{
		gitNoPagerFlagConstant,
		gitLogSubcommandConstant,
		gitAuthorFormatFlagConstant,
		gitNoMergesFlagConstant,
		gitSinceFlagConstant,
		request.Since.Format(historySinceLayoutConstant),
	}
	if trimmedRevision := strings.TrimSpace(request.Revision); len(trimmedRevision) > 0 {
		arguments = append(arguments, trimmedRevision)
	}
	arguments = append(arguments, gitPathSeparatorConstant, historyPath)

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: request.RepositoryPath,
	})
	if executionError != nil {
		var failedError execshell.CommandFailedError
		if errors.As(executionError, &failedError) {
			executionResult = failedError.Result
		}
		return HistoryOutput{Log: executionResult.StandardOutput, StandardError: executionResult.StandardError},
			OperationError{Operation: OperationLogHistory, Repository: request.RepositoryPath, Cause: executionError}
	}

	return HistoryOutput{Log: executionResult.StandardOutput, StandardError: executionResult.StandardError}, nil
}
