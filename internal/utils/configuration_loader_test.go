package utils_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quarkusio/get-contributors/internal/utils"
)

const (
	testEnvironmentPrefixConstant                     = "TEST_CONTRIBUTORS"
	testCollectSectionKeyConstant                     = "collect"
	testSortKeyConstant                               = testCollectSectionKeyConstant + ".sort"
	testDefaultSortConstant                           = "name"
	testConfiguredSortConstant                        = "commits"
	testOverriddenSortConstant                        = "repositories"
	testFileSortConstant                              = "email"
	testConfigFileNameConstant                        = "config.yaml"
	testConfigContentTemplateConstant                 = "collect:\n  sort: %s\n"
	testCaseEmbeddedMessageConstant                   = "embedded configuration merges"
	testCaseDefaultsMessageConstant                   = "defaults are applied"
	testCaseFileMessageConstant                       = "config file overrides defaults"
	testCaseEnvironmentMessageConstant                = "environment overrides file"
	testConfigurationNameConstant                     = "config"
	testConfigurationTypeConstant                     = "yaml"
	configurationLoaderSubtestNameTemplateConstant    = "%d_%s"
	testEmbeddedSortConstant                          = "commits"
	testUserConfigurationDirectoryNameConstant        = "get-contributors"
	testXDGConfigHomeDirectoryNameConstant            = "config"
	testCaseSearchPathWorkingDirectoryMessageConstant = "searches working directory"
	testCaseSearchPathHomeDirectoryMessageConstant    = "searches home configuration directory"
)

type configurationFixture struct {
	Collect collectConfigurationFixture `mapstructure:"collect"`
}

type decodedConfigurationFixture struct {
	Mode    upperCaseMode `mapstructure:"mode"`
	Authors []string      `mapstructure:"authors"`
}

type upperCaseMode string

func (mode *upperCaseMode) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		return errors.New("mode must not be empty")
	}
	*mode = upperCaseMode(strings.ToUpper(string(text)))
	return nil
}

type collectConfigurationFixture struct {
	Sort string `mapstructure:"sort"`
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name            string
		embeddedSort    string
		fileSort        string
		environmentSort string
		expectedSort    string
	}{
		{
			name:            testCaseEmbeddedMessageConstant,
			embeddedSort:    testEmbeddedSortConstant,
			fileSort:        "",
			environmentSort: "",
			expectedSort:    testEmbeddedSortConstant,
		},
		{
			name:            testCaseDefaultsMessageConstant,
			embeddedSort:    testDefaultSortConstant,
			fileSort:        "",
			environmentSort: "",
			expectedSort:    testDefaultSortConstant,
		},
		{
			name:            testCaseFileMessageConstant,
			embeddedSort:    testDefaultSortConstant,
			fileSort:        testConfiguredSortConstant,
			environmentSort: "",
			expectedSort:    testConfiguredSortConstant,
		},
		{
			name:            testCaseEnvironmentMessageConstant,
			embeddedSort:    testDefaultSortConstant,
			fileSort:        testFileSortConstant,
			environmentSort: testOverriddenSortConstant,
			expectedSort:    testOverriddenSortConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			tempDirectory := testInstance.TempDir()
			configurationFilePath := ""
			if len(testCase.fileSort) > 0 {
				configurationFilePath = filepath.Join(tempDirectory, testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testCase.fileSort)
				writeError := os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600)
				require.NoError(testInstance, writeError)
			}

			if len(testCase.environmentSort) > 0 {
				environmentVariableName := fmt.Sprintf("%s_%s", testEnvironmentPrefixConstant, strings.ToUpper(strings.ReplaceAll(testSortKeyConstant, ".", "_")))
				testInstance.Setenv(environmentVariableName, testCase.environmentSort)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{tempDirectory})

			configurationLoader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testConfigContentTemplateConstant, testCase.embeddedSort)), testConfigurationTypeConstant)

			defaultValues := map[string]any{
				testSortKeyConstant: testDefaultSortConstant,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedSort, loadedConfiguration.Collect.Sort)

			if len(configurationFilePath) > 0 {
				require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
			} else {
				require.Empty(testInstance, metadata.ConfigFileUsed)
			}
		})
	}
}

func TestConfigurationLoaderSearchPaths(testInstance *testing.T) {
	testCases := []struct {
		name                         string
		configurationDirectorySelect func(workingDirectoryPath string, userConfigurationDirectoryPath string) string
	}{
		{
			name: testCaseSearchPathWorkingDirectoryMessageConstant,
			configurationDirectorySelect: func(workingDirectoryPath string, userConfigurationDirectoryPath string) string {
				return workingDirectoryPath
			},
		},
		{
			name: testCaseSearchPathHomeDirectoryMessageConstant,
			configurationDirectorySelect: func(workingDirectoryPath string, userConfigurationDirectoryPath string) string {
				return userConfigurationDirectoryPath
			},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			workingDirectoryPath := testInstance.TempDir()
			homeDirectoryPath := testInstance.TempDir()
			xdgConfigHomeDirectoryPath := filepath.Join(homeDirectoryPath, testXDGConfigHomeDirectoryNameConstant)

			testInstance.Setenv("HOME", homeDirectoryPath)
			testInstance.Setenv("XDG_CONFIG_HOME", xdgConfigHomeDirectoryPath)

			userConfigurationBaseDirectoryPath, userConfigurationDirectoryError := os.UserConfigDir()
			require.NoError(testInstance, userConfigurationDirectoryError)
			require.NotEmpty(testInstance, userConfigurationBaseDirectoryPath)

			userConfigurationDirectoryPath := filepath.Join(userConfigurationBaseDirectoryPath, testUserConfigurationDirectoryNameConstant)
			createDirectoryError := os.MkdirAll(userConfigurationDirectoryPath, 0o755)
			require.NoError(testInstance, createDirectoryError)

			selectedConfigurationDirectoryPath := testCase.configurationDirectorySelect(workingDirectoryPath, userConfigurationDirectoryPath)
			ensureSelectedDirectoryError := os.MkdirAll(selectedConfigurationDirectoryPath, 0o755)
			require.NoError(testInstance, ensureSelectedDirectoryError)

			configurationFilePath := filepath.Join(selectedConfigurationDirectoryPath, testConfigFileNameConstant)
			configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testConfiguredSortConstant)
			writeConfigurationError := os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600)
			require.NoError(testInstance, writeConfigurationError)

			configurationLoader := utils.NewConfigurationLoader(
				testConfigurationNameConstant,
				testConfigurationTypeConstant,
				testEnvironmentPrefixConstant,
				[]string{workingDirectoryPath, userConfigurationDirectoryPath},
			)

			defaultValues := map[string]any{
				testSortKeyConstant: testDefaultSortConstant,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration("", defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testConfiguredSortConstant, loadedConfiguration.Collect.Sort)
			require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
		})
	}
}

func TestConfigurationLoaderDecodeHooks(testInstance *testing.T) {
	testInstance.Setenv(testEnvironmentPrefixConstant+"_AUTHORS", "Jenkins CI,kie-ci")

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{testInstance.TempDir()})
	configurationLoader.SetEmbeddedConfiguration([]byte("mode: commits\n"), testConfigurationTypeConstant)

	loadedConfiguration := decodedConfigurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration("", map[string]any{"mode": "name", "authors": []string{}}, &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, upperCaseMode("COMMITS"), loadedConfiguration.Mode)
	require.Equal(testInstance, []string{"Jenkins CI", "kie-ci"}, loadedConfiguration.Authors)
}
