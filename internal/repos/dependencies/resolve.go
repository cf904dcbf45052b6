package dependencies

import (
	"context"

	"go.uber.org/zap"

	"github.com/quarkusio/get-contributors/internal/execshell"
	"github.com/quarkusio/get-contributors/internal/githubapi"
	"github.com/quarkusio/get-contributors/internal/gitrepo"
	"github.com/quarkusio/get-contributors/internal/repos/filesystem"
	"github.com/quarkusio/get-contributors/internal/repos/shared"
)

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveClock returns the provided clock or the system clock.
func ResolveClock(existing shared.Clock) shared.Clock {
	if existing != nil {
		return existing
	}
	return shared.SystemClock{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveHistoryExtractor returns the provided extractor or constructs a git-backed one from the executor.
func ResolveHistoryExtractor(existing shared.HistoryExtractor, executor shared.GitExecutor) (shared.HistoryExtractor, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewHistoryManager(executor)
}

// ResolveRepositoryEnumerator returns the provided enumerator or a GitHub API client built from the configuration.
func ResolveRepositoryEnumerator(executionContext context.Context, existing shared.RepositoryEnumerator, configuration githubapi.ClientConfiguration) (shared.RepositoryEnumerator, error) {
	if existing != nil {
		return existing, nil
	}
	return githubapi.NewClient(executionContext, configuration)
}
