package collect

import (
	"errors"
	"fmt"
	"time"

	"github.com/quarkusio/get-contributors/internal/contributions"
	"github.com/quarkusio/get-contributors/internal/gitrepo"
)

const (
	scratchDirectoryExistsTemplateConstant = "%s already exists, please delete it before starting the script"
	repositoryStepErrorTemplateConstant    = "%s %s: %v"
	sinceRequiredMessageConstant           = "a since date (YYYY-MM-DD) must be provided"
	fileSystemMissingMessageConstant       = "collect service requires a filesystem"
	enumeratorMissingMessageConstant       = "collect service requires a repository enumerator"
	historyExtractorMissingMessageConstant = "collect service requires a history extractor"
)

// Errors returned while constructing or running the collection.
var (
	ErrSinceRequired           = errors.New(sinceRequiredMessageConstant)
	ErrFileSystemMissing       = errors.New(fileSystemMissingMessageConstant)
	ErrEnumeratorMissing       = errors.New(enumeratorMissingMessageConstant)
	ErrHistoryExtractorMissing = errors.New(historyExtractorMissingMessageConstant)
)

// ScratchDirectoryExistsError reports a leftover clone cache from an earlier run.
type ScratchDirectoryExistsError struct {
	Path string
}

// Error describes the conflicting directory.
func (existsError ScratchDirectoryExistsError) Error() string {
	return fmt.Sprintf(scratchDirectoryExistsTemplateConstant, existsError.Path)
}

// RepositoryStep names the per-repository stage that failed.
type RepositoryStep string

// Per-repository stages.
const (
	RepositoryStepResolve RepositoryStep = "resolving"
	RepositoryStepClone   RepositoryStep = "cloning"
	RepositoryStepHistory RepositoryStep = "reading history of"
	RepositoryStepCapture RepositoryStep = "saving history of"
)

// RepositoryError wraps a fatal failure for one repository.
type RepositoryError struct {
	Step       RepositoryStep
	Repository string
	Cause      error
}

// Error describes the failed stage.
func (repositoryError RepositoryError) Error() string {
	return fmt.Sprintf(repositoryStepErrorTemplateConstant, repositoryError.Step, repositoryError.Repository, repositoryError.Cause)
}

// Unwrap exposes the underlying cause.
func (repositoryError RepositoryError) Unwrap() error {
	return repositoryError.Cause
}

// Options captures the validated inputs of a collection run.
type Options struct {
	Since              time.Time
	BranchOverride     string
	SortStrategy       contributions.SortStrategy
	Protocol           gitrepo.RemoteProtocol
	GitHost            string
	CloneDirectory     string
	OutputDirectory    string
	CombinedReportFile string
	IdentityPolicy     contributions.IdentityPolicy
	Groups             []GroupConfiguration
}

// GroupSummary describes one emitted report.
type GroupSummary struct {
	Name         string
	ReportPath   string
	Repositories int
	Contributors int
	Commits      int
}

// Result summarizes a completed collection run.
type Result struct {
	Groups   []GroupSummary
	Combined GroupSummary
	Elapsed  time.Duration
}
