package gitrepo_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quarkusio/get-contributors/internal/execshell"
	"github.com/quarkusio/get-contributors/internal/gitrepo"
)

const (
	testRemoteURLConstant       = "git@github.com:apache/camel-quarkus.git"
	testTargetDirectoryConstant = "scratch/apache/camel-quarkus"
)

type stubGitExecutor struct {
	result          execshell.ExecutionResult
	executionError  error
	recordedDetails []execshell.CommandDetails
}

func (executor *stubGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	return executor.result, executor.executionError
}

func TestNewHistoryManagerRequiresExecutor(testInstance *testing.T) {
	manager, creationError := gitrepo.NewHistoryManager(nil)
	require.Nil(testInstance, manager)
	require.ErrorIs(testInstance, creationError, gitrepo.ErrGitExecutorNotConfigured)
}

func TestHistoryManagerCloneArguments(testInstance *testing.T) {
	testCases := []struct {
		name              string
		request           gitrepo.CloneRequest
		expectedArguments []string
		expectError       bool
	}{
		{
			name:              "default_branch",
			request:           gitrepo.CloneRequest{RemoteURL: testRemoteURLConstant, TargetDirectory: testTargetDirectoryConstant},
			expectedArguments: []string{"clone", testRemoteURLConstant, testTargetDirectoryConstant},
		},
		{
			name:              "explicit_branch",
			request:           gitrepo.CloneRequest{RemoteURL: testRemoteURLConstant, TargetDirectory: testTargetDirectoryConstant, Branch: "3.x"},
			expectedArguments: []string{"clone", "--branch", "3.x", testRemoteURLConstant, testTargetDirectoryConstant},
		},
		{
			name:        "missing_remote",
			request:     gitrepo.CloneRequest{TargetDirectory: testTargetDirectoryConstant},
			expectError: true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			executor := &stubGitExecutor{}
			manager, creationError := gitrepo.NewHistoryManager(executor)
			require.NoError(testInstance, creationError)

			cloneError := manager.Clone(context.Background(), testCase.request)
			if testCase.expectError {
				require.Error(testInstance, cloneError)
				require.Empty(testInstance, executor.recordedDetails)
				return
			}
			require.NoError(testInstance, cloneError)
			require.Len(testInstance, executor.recordedDetails, 1)
			require.Equal(testInstance, testCase.expectedArguments, executor.recordedDetails[0].Arguments)
		})
	}
}

func TestHistoryManagerCloneWrapsFailure(testInstance *testing.T) {
	failure := execshell.CommandFailedError{Command: execshell.ShellCommand{Name: execshell.CommandGit}, Result: execshell.ExecutionResult{ExitCode: 128, StandardError: "Permission denied (publickey)."}}
	manager, creationError := gitrepo.NewHistoryManager(&stubGitExecutor{executionError: failure})
	require.NoError(testInstance, creationError)

	cloneError := manager.Clone(context.Background(), gitrepo.CloneRequest{RemoteURL: testRemoteURLConstant, TargetDirectory: testTargetDirectoryConstant})

	var operationError gitrepo.OperationError
	require.True(testInstance, errors.As(cloneError, &operationError))
	require.Equal(testInstance, gitrepo.OperationClone, operationError.Operation)
	require.Contains(testInstance, cloneError.Error(), "Permission denied (publickey).")
}

func TestHistoryManagerExtractHistoryArguments(testInstance *testing.T) {
	since := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name              string
		request           gitrepo.HistoryRequest
		expectedArguments []string
	}{
		{
			name:              "root_without_branch",
			request:           gitrepo.HistoryRequest{RepositoryPath: testTargetDirectoryConstant, Since: since},
			expectedArguments: []string{"--no-pager", "log", "--format=%an;%ae", "--no-merges", "--since", "2024-03-05", "--", "."},
		},
		{
			name:              "subdirectory_and_revision",
			request:           gitrepo.HistoryRequest{RepositoryPath: testTargetDirectoryConstant, Since: since, Revision: "origin/main", Path: "integration/quarkus"},
			expectedArguments: []string{"--no-pager", "log", "--format=%an;%ae", "--no-merges", "--since", "2024-03-05", "origin/main", "--", "integration/quarkus"},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			executor := &stubGitExecutor{result: execshell.ExecutionResult{StandardOutput: "Jane Doe;jane@x.com\n"}}
			manager, creationError := gitrepo.NewHistoryManager(executor)
			require.NoError(testInstance, creationError)

			output, extractError := manager.ExtractHistory(context.Background(), testCase.request)
			require.NoError(testInstance, extractError)
			require.Equal(testInstance, "Jane Doe;jane@x.com\n", output.Log)
			require.Len(testInstance, executor.recordedDetails, 1)
			require.Equal(testInstance, testCase.expectedArguments, executor.recordedDetails[0].Arguments)
			require.Equal(testInstance, testTargetDirectoryConstant, executor.recordedDetails[0].WorkingDirectory)
		})
	}
}

func TestHistoryManagerExtractHistoryKeepsStandardErrorOnFailure(testInstance *testing.T) {
	failure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result:  execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: bad revision 'missing'"},
	}
	manager, creationError := gitrepo.NewHistoryManager(&stubGitExecutor{executionError: failure})
	require.NoError(testInstance, creationError)

	output, extractError := manager.ExtractHistory(context.Background(), gitrepo.HistoryRequest{
		RepositoryPath: testTargetDirectoryConstant,
		Since:          time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Revision:       "missing",
	})

	require.Error(testInstance, extractError)
	require.ErrorAs(testInstance, extractError, &failure)
	require.Equal(testInstance, "fatal: bad revision 'missing'", output.StandardError)
}

func TestHistoryManagerExtractHistoryRequiresSince(testInstance *testing.T) {
	manager, creationError := gitrepo.NewHistoryManager(&stubGitExecutor{})
	require.NoError(testInstance, creationError)

	_, extractError := manager.ExtractHistory(context.Background(), gitrepo.HistoryRequest{RepositoryPath: testTargetDirectoryConstant})

	var inputError gitrepo.InvalidInputError
	require.ErrorAs(testInstance, extractError, &inputError)
}
