package contributions_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quarkusio/get-contributors/internal/contributions"
)

type recordingAppender struct {
	path        string
	data        []byte
	permissions fs.FileMode
	appendError error
}

func (appender *recordingAppender) AppendFile(path string, data []byte, permissions fs.FileMode) error {
	appender.path = path
	appender.data = append(appender.data, data...)
	appender.permissions = permissions
	return appender.appendError
}

func TestFormatReport(testInstance *testing.T) {
	records := []contributions.ContributorRecord{
		{DisplayName: "Jane \"JD\" Doe", Email: "jane@x.com", CommitCount: 3, Repositories: []string{"r1", "r2"}},
		{DisplayName: "The Octocat", Handle: "octocat", CommitCount: 1, Repositories: []string{"r1"}},
	}

	expected := "Name;Email;GH handle if no email;Commits;Repositories\n" +
		"\"Jane \"\"JD\"\" Doe\";\"jane@x.com\";;3;r1,r2\n" +
		"\"The Octocat\";\"\";octocat;1;r1\n"

	require.Equal(testInstance, expected, string(contributions.FormatReport(records)))
}

func TestFormatReportWithoutRecords(testInstance *testing.T) {
	require.Equal(testInstance, "Name;Email;GH handle if no email;Commits;Repositories\n", string(contributions.FormatReport(nil)))
}

func TestWriteReportSortsCopy(testInstance *testing.T) {
	records := []contributions.ContributorRecord{
		{DisplayName: "Bob", Email: "bob@x.com", CommitCount: 1, Repositories: []string{"r1"}},
		{DisplayName: "Alice", Email: "alice@x.com", CommitCount: 4, Repositories: []string{"r1"}},
	}
	appender := &recordingAppender{}

	require.NoError(testInstance, contributions.WriteReport(appender, "group.csv", records, contributions.SortByName))

	require.Equal(testInstance, "group.csv", appender.path)
	require.Equal(testInstance, fs.FileMode(0o644), appender.permissions)
	require.Equal(testInstance, "Name;Email;GH handle if no email;Commits;Repositories\n"+
		"\"Alice\";\"alice@x.com\";;4;r1\n"+
		"\"Bob\";\"bob@x.com\";;1;r1\n", string(appender.data))
	require.Equal(testInstance, "Bob", records[0].DisplayName)
}

func TestWriteReportPropagatesAppendError(testInstance *testing.T) {
	appendError := errors.New("disk full")
	appender := &recordingAppender{appendError: appendError}

	require.ErrorIs(testInstance, contributions.WriteReport(appender, "group.csv", nil, contributions.SortByCommits), appendError)
}
