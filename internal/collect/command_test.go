package collect_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quarkusio/get-contributors/internal/collect"
	"github.com/quarkusio/get-contributors/internal/githubapi"
	"github.com/quarkusio/get-contributors/internal/repos/filesystem"
)

const (
	commandSinceArgumentConstant           = "2024-01-01"
	commandGroupsFileContentsConstant      = "groups:\n  - name: tools\n    report: tools.csv\n    repositories:\n      - name: acme/tool\n        path: cli\n"
	commandMissingSinceMessageConstant     = "a since date (YYYY-MM-DD) must be provided"
	commandUnsupportedSortFragmentConstant = "unsupported sort strategy"
)

type commandFixture struct {
	builder   collect.CommandBuilder
	extractor *stubHistoryExtractor
	workspace string
}

func newCommandFixture(testInstance *testing.T) commandFixture {
	testInstance.Helper()

	workspace := testInstance.TempDir()
	extractor := &stubHistoryExtractor{
		cloneRoot: filepath.Join(workspace, "clones"),
		logs: map[string]string{
			sharedRepositoryNameConstant: sharedRepositoryLogConstant,
			toolRepositoryNameConstant:   toolRepositoryLogConstant,
		},
	}
	enumerator := &stubRepositoryEnumerator{
		repositories: map[string]githubapi.Repository{
			sharedRepositoryNameConstant: {FullName: sharedRepositoryNameConstant},
			toolRepositoryNameConstant:   {FullName: toolRepositoryNameConstant},
		},
	}

	configuration := collect.DefaultCommandConfiguration()
	configuration.CloneDirectory = filepath.Join(workspace, "clones")
	configuration.OutputDirectory = filepath.Join(workspace, "reports")
	configuration.CombinedReport = combinedReportConstant
	configuration.Groups = []collect.GroupConfiguration{
		{
			Name:   coreGroupNameConstant,
			Report: coreReportConstant,
			Repositories: []collect.RepositoryConfiguration{
				{FullName: sharedRepositoryNameConstant, Primary: true},
				{FullName: toolRepositoryNameConstant},
			},
		},
	}

	return commandFixture{
		builder: collect.CommandBuilder{
			LoggerProvider:        func() *zap.Logger { return zap.NewNop() },
			ConfigurationProvider: func() collect.CommandConfiguration { return configuration },
			FileSystem:            filesystem.OSFileSystem{},
			HistoryExtractor:      extractor,
			RepositoryEnumerator:  enumerator,
			Clock:                 &steppingClock{current: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC), step: time.Minute},
			EnvironmentLookup:     func(string) (string, bool) { return "", false },
		},
		extractor: extractor,
		workspace: workspace,
	}
}

func executeCommand(testInstance *testing.T, builder collect.CommandBuilder, arguments []string) (string, error) {
	testInstance.Helper()

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetContext(context.Background())
	command.SetArgs(arguments)
	outputBuffer := &strings.Builder{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)

	executionError := command.Execute()
	return outputBuffer.String(), executionError
}

func TestCommandBuilderRequiresSinceDate(testInstance *testing.T) {
	fixture := newCommandFixture(testInstance)

	output, executionError := executeCommand(testInstance, fixture.builder, []string{})
	require.Error(testInstance, executionError)
	require.Equal(testInstance, commandMissingSinceMessageConstant, executionError.Error())
	require.Contains(testInstance, output, "collect [since]")
	require.Empty(testInstance, fixture.extractor.cloneRequests)
}

func TestCommandBuilderRejectsInvalidInput(testInstance *testing.T) {
	testCases := []struct {
		name             string
		arguments        []string
		expectedFragment string
	}{
		{
			name:             "malformed_since",
			arguments:        []string{"01/02/2024"},
			expectedFragment: "invalid since date \"01/02/2024\"",
		},
		{
			name:             "conflicting_since",
			arguments:        []string{"--since", "2023-01-01", commandSinceArgumentConstant},
			expectedFragment: "since date given twice",
		},
		{
			name:             "unsupported_sort",
			arguments:        []string{commandSinceArgumentConstant, "--sort", "alphabetical"},
			expectedFragment: commandUnsupportedSortFragmentConstant,
		},
		{
			name:             "unsupported_protocol",
			arguments:        []string{commandSinceArgumentConstant, "--protocol", "ftp"},
			expectedFragment: "unsupported remote protocol",
		},
		{
			name:             "too_many_arguments",
			arguments:        []string{commandSinceArgumentConstant, "2024-02-01"},
			expectedFragment: "accepts at most 1 arg(s)",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			fixture := newCommandFixture(subTest)

			_, executionError := executeCommand(subTest, fixture.builder, testCase.arguments)
			require.Error(subTest, executionError)
			require.Contains(subTest, executionError.Error(), testCase.expectedFragment)
			require.Empty(subTest, fixture.extractor.cloneRequests)
		})
	}
}

func TestCommandBuilderRunsCollection(testInstance *testing.T) {
	fixture := newCommandFixture(testInstance)

	output, executionError := executeCommand(testInstance, fixture.builder, []string{commandSinceArgumentConstant, "--branch", "3.8", "--sort", "commits"})
	require.NoError(testInstance, executionError)

	require.Contains(testInstance, output, "Analyzing 2 core repositories\n")
	require.Contains(testInstance, output, " > Analyzing acme/tool\n")
	require.Contains(testInstance, output, filepath.Join(fixture.workspace, "reports", coreReportConstant))
	require.Contains(testInstance, output, "Completed in 1m0s")

	require.Len(testInstance, fixture.extractor.cloneRequests, 2)
	require.Equal(testInstance, "3.8", fixture.extractor.cloneRequests[0].Branch)
	require.Equal(testInstance, "git@github.com:acme/shared.git", fixture.extractor.cloneRequests[0].RemoteURL)
	require.Empty(testInstance, fixture.extractor.cloneRequests[1].Branch)
	require.Equal(testInstance, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), fixture.extractor.historyRequests[0].Since)

	report, readError := os.ReadFile(filepath.Join(fixture.workspace, "reports", coreReportConstant))
	require.NoError(testInstance, readError)
	require.Equal(testInstance,
		reportHeaderLineConstant+
			"\"Jane Doe\";\"jane@example.com\";;2;acme/shared\n"+
			"\"John Roe\";\"john@example.com\";;1;acme/tool\n",
		string(report))
}

func TestCommandBuilderLoadsGroupsFile(testInstance *testing.T) {
	fixture := newCommandFixture(testInstance)
	groupsPath := filepath.Join(fixture.workspace, "groups.yaml")
	require.NoError(testInstance, os.WriteFile(groupsPath, []byte(commandGroupsFileContentsConstant), 0o644))

	output, executionError := executeCommand(testInstance, fixture.builder, []string{"--since", commandSinceArgumentConstant, "--groups", groupsPath})
	require.NoError(testInstance, executionError)

	require.Contains(testInstance, output, "Analyzing 1 tools repositories\n")
	require.Len(testInstance, fixture.extractor.historyRequests, 1)
	require.Equal(testInstance, "cli", fixture.extractor.historyRequests[0].Path)

	_, statError := os.Stat(filepath.Join(fixture.workspace, "reports", "tools.csv"))
	require.NoError(testInstance, statError)
}
