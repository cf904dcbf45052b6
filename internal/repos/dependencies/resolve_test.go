package dependencies_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quarkusio/get-contributors/internal/execshell"
	"github.com/quarkusio/get-contributors/internal/githubapi"
	"github.com/quarkusio/get-contributors/internal/gitrepo"
	"github.com/quarkusio/get-contributors/internal/repos/dependencies"
	"github.com/quarkusio/get-contributors/internal/repos/filesystem"
	"github.com/quarkusio/get-contributors/internal/repos/shared"
)

type recordingGitExecutor struct {
	calls []execshell.CommandDetails
}

func (executor *recordingGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.calls = append(executor.calls, details)
	return execshell.ExecutionResult{}, nil
}

func TestResolversPreferInjectedCollaborators(testInstance *testing.T) {
	injectedExecutor := &recordingGitExecutor{}
	resolvedExecutor, executorError := dependencies.ResolveGitExecutor(injectedExecutor, zap.NewNop())
	require.NoError(testInstance, executorError)
	require.Same(testInstance, injectedExecutor, resolvedExecutor)

	injectedExtractor, extractorCreationError := gitrepo.NewHistoryManager(injectedExecutor)
	require.NoError(testInstance, extractorCreationError)
	resolvedExtractor, extractorError := dependencies.ResolveHistoryExtractor(injectedExtractor, nil)
	require.NoError(testInstance, extractorError)
	require.Same(testInstance, injectedExtractor, resolvedExtractor)

	injectedClient, clientError := githubapi.NewClient(context.Background(), githubapi.ClientConfiguration{})
	require.NoError(testInstance, clientError)
	resolvedEnumerator, enumeratorError := dependencies.ResolveRepositoryEnumerator(context.Background(), injectedClient, githubapi.ClientConfiguration{})
	require.NoError(testInstance, enumeratorError)
	require.Same(testInstance, injectedClient, resolvedEnumerator)
}

func TestResolversBuildDefaults(testInstance *testing.T) {
	require.Equal(testInstance, filesystem.OSFileSystem{}, dependencies.ResolveFileSystem(nil))
	require.Equal(testInstance, shared.SystemClock{}, dependencies.ResolveClock(nil))

	resolvedExecutor, executorError := dependencies.ResolveGitExecutor(nil, zap.NewNop())
	require.NoError(testInstance, executorError)
	require.IsType(testInstance, &execshell.ShellExecutor{}, resolvedExecutor)

	resolvedExtractor, extractorError := dependencies.ResolveHistoryExtractor(nil, resolvedExecutor)
	require.NoError(testInstance, extractorError)
	require.IsType(testInstance, &gitrepo.HistoryManager{}, resolvedExtractor)

	resolvedEnumerator, enumeratorError := dependencies.ResolveRepositoryEnumerator(context.Background(), nil, githubapi.ClientConfiguration{Token: "token", BaseURL: "https://github.example.com/api/v3"})
	require.NoError(testInstance, enumeratorError)
	require.IsType(testInstance, &githubapi.Client{}, resolvedEnumerator)

	_, invalidURLError := dependencies.ResolveRepositoryEnumerator(context.Background(), nil, githubapi.ClientConfiguration{BaseURL: "not a url"})
	require.Error(testInstance, invalidURLError)
}
