package shared

import (
	"context"
	"io/fs"
	"time"

	"github.com/quarkusio/get-contributors/internal/execshell"
	"github.com/quarkusio/get-contributors/internal/githubapi"
	"github.com/quarkusio/get-contributors/internal/gitrepo"
)

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FileSystem exposes the filesystem operations required by the collection workflow.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	MkdirAll(path string, permissions fs.FileMode) error
	WriteFile(path string, data []byte, permissions fs.FileMode) error
	AppendFile(path string, data []byte, permissions fs.FileMode) error
	RemoveFile(path string) error
}

// GitExecutor exposes the subset of shell execution used to drive git.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// HistoryExtractor clones repositories and captures their author logs.
type HistoryExtractor interface {
	Clone(executionContext context.Context, request gitrepo.CloneRequest) error
	ExtractHistory(executionContext context.Context, request gitrepo.HistoryRequest) (gitrepo.HistoryOutput, error)
}

// RepositoryEnumerator resolves the repositories that make up a group.
type RepositoryEnumerator interface {
	SearchRepositories(executionContext context.Context, organization string, topic string) ([]githubapi.Repository, error)
	GetRepository(executionContext context.Context, fullName string) (githubapi.Repository, error)
}
