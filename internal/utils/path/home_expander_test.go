package pathutils_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/quarkusio/get-contributors/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/contributor"

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name          string
		candidatePath string
		expectedPath  string
	}{
		{name: "bare_shortcut", candidatePath: "~", expectedPath: testHomeDirectoryConstant},
		{name: "nested_path", candidatePath: "~/get-contributors-repositories", expectedPath: filepath.Join(testHomeDirectoryConstant, "get-contributors-repositories")},
		{name: "other_user", candidatePath: "~alice/reports", expectedPath: "~alice/reports"},
		{name: "relative_path", candidatePath: "reports", expectedPath: "reports"},
		{name: "empty_path", candidatePath: "", expectedPath: ""},
	}

	lookupCount := 0
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		lookupCount++
		return testHomeDirectoryConstant, nil
	})

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subTest *testing.T) {
			require.Equal(subTest, testCase.expectedPath, expander.Expand(testCase.candidatePath))
		})
	}
	require.Equal(testInstance, 1, lookupCount)
}

func TestHomeExpanderKeepsPathWhenHomeUnknown(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("no home directory")
	})
	require.Equal(testInstance, "~/reports", expander.Expand("~/reports"))

	var nilExpander *pathutils.HomeExpander
	require.Equal(testInstance, "~/reports", nilExpander.Expand("~/reports"))
}
