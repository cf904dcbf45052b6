package collect

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quarkusio/get-contributors/internal/contributions"
	"github.com/quarkusio/get-contributors/internal/gitrepo"
)

const (
	sinceConfigurationKeyConstant           = "since"
	branchConfigurationKeyConstant          = "branch"
	sortConfigurationKeyConstant            = "sort"
	tokenConfigurationKeyConstant           = "token"
	apiBaseURLConfigurationKeyConstant      = "api_base_url"
	gitHostConfigurationKeyConstant         = "git_host"
	protocolConfigurationKeyConstant        = "protocol"
	cloneDirectoryConfigurationKeyConstant  = "clone_directory"
	outputDirectoryConfigurationKeyConstant = "output_directory"
	combinedReportConfigurationKeyConstant  = "combined_report"
	groupsFileConfigurationKeyConstant      = "groups_file"
	botMarkerConfigurationKeyConstant       = "bot_marker"
	ignoredAuthorsConfigurationKeyConstant  = "ignored_authors"
	noReplySuffixConfigurationKeyConstant   = "no_reply_suffix"
	groupsConfigurationKeyConstant          = "groups"

	defaultGitHostConstant                = "github.com"
	defaultCloneDirectoryConstant         = "get-contributors-repositories"
	defaultOutputDirectoryConstant        = "."
	defaultCombinedReportConstant         = "all-contributors.csv"
	defaultBotMarkerConstant              = "[bot]"
	defaultNoReplySuffixConstant          = "@users.noreply.github.com"
	defaultSearchOrganizationConstant     = "quarkiverse"
	defaultSearchTopicConstant            = "quarkus-extension"
	defaultCoreGroupNameConstant          = "quarkus"
	defaultCoreReportConstant             = "quarkus.csv"
	defaultCoreRepositoryConstant         = "quarkusio/quarkus"
	defaultExtensionGroupNameConstant     = "quarkiverse"
	defaultExtensionReportConstant        = "quarkiverse.csv"
	defaultPlatformGroupNameConstant      = "platform"
	defaultPlatformReportConstant         = "platform-without-quarkiverse.csv"
	groupsFileLoadErrorTemplateConstant   = "failed to load groups file: %w"
	groupsFileParseErrorTemplateConstant  = "failed to parse groups file: %w"
	groupsFilePathRequiredMessageConstant = "groups file path must be provided"
	groupNameRequiredMessageConstant      = "group name must be provided"
	groupReportRequiredTemplateConstant   = "group %s must name a report file"
	groupSourceRequiredTemplateConstant   = "group %s must define a search or at least one repository"
	groupDuplicateTemplateConstant        = "group %s is defined more than once"
	reportDuplicateTemplateConstant       = "report file %s is used by more than one output"
	searchIncompleteTemplateConstant      = "group %s search requires both organization and topic"
	noGroupsConfiguredMessageConstant     = "no repository groups configured"
)

// CommandConfiguration captures persistent settings for the collect command.
type CommandConfiguration struct {
	Since           string                     `mapstructure:"since"`
	Branch          string                     `mapstructure:"branch"`
	Sort            contributions.SortStrategy `mapstructure:"sort"`
	Token           string                     `mapstructure:"token"`
	APIBaseURL      string                     `mapstructure:"api_base_url"`
	GitHost         string                     `mapstructure:"git_host"`
	Protocol        string                     `mapstructure:"protocol"`
	CloneDirectory  string                     `mapstructure:"clone_directory"`
	OutputDirectory string                     `mapstructure:"output_directory"`
	CombinedReport  string                     `mapstructure:"combined_report"`
	GroupsFile      string                     `mapstructure:"groups_file"`
	BotMarker       string                     `mapstructure:"bot_marker"`
	IgnoredAuthors  []string                   `mapstructure:"ignored_authors"`
	NoReplySuffix   string                     `mapstructure:"no_reply_suffix"`
	Groups          []GroupConfiguration       `mapstructure:"groups"`
}

// GroupConfiguration describes one repository group and the report it produces.
type GroupConfiguration struct {
	Name         string                    `mapstructure:"name" yaml:"name"`
	Report       string                    `mapstructure:"report" yaml:"report"`
	Search       *SearchConfiguration      `mapstructure:"search" yaml:"search,omitempty"`
	Repositories []RepositoryConfiguration `mapstructure:"repositories" yaml:"repositories,omitempty"`
}

// SearchConfiguration selects repositories by organization and topic.
type SearchConfiguration struct {
	Organization string `mapstructure:"organization" yaml:"organization"`
	Topic        string `mapstructure:"topic" yaml:"topic"`
}

// RepositoryConfiguration names a single repository and, optionally, the subdirectory whose history counts.
// Primary repositories follow the --branch override.
type RepositoryConfiguration struct {
	FullName string `mapstructure:"name" yaml:"name"`
	Path     string `mapstructure:"path" yaml:"path,omitempty"`
	Branch   string `mapstructure:"branch" yaml:"branch,omitempty"`
	Primary  bool   `mapstructure:"primary" yaml:"primary,omitempty"`
}

type groupsFile struct {
	Groups []GroupConfiguration `yaml:"groups"`
}

// DefaultCommandConfiguration returns baseline configuration values for the collect command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Sort:            contributions.SortByName,
		GitHost:         defaultGitHostConstant,
		Protocol:        string(gitrepo.RemoteProtocolSSH),
		CloneDirectory:  defaultCloneDirectoryConstant,
		OutputDirectory: defaultOutputDirectoryConstant,
		CombinedReport:  defaultCombinedReportConstant,
		BotMarker:       defaultBotMarkerConstant,
		IgnoredAuthors:  contributions.DefaultIgnoredAuthors(),
		NoReplySuffix:   defaultNoReplySuffixConstant,
		Groups:          DefaultGroups(),
	}
}

// DefaultGroups reproduces the Quarkus core, Quarkiverse and platform partition.
func DefaultGroups() []GroupConfiguration {
	return []GroupConfiguration{
		{
			Name:   defaultCoreGroupNameConstant,
			Report: defaultCoreReportConstant,
			Repositories: []RepositoryConfiguration{
				{FullName: defaultCoreRepositoryConstant, Primary: true},
			},
		},
		{
			Name:   defaultExtensionGroupNameConstant,
			Report: defaultExtensionReportConstant,
			Search: &SearchConfiguration{Organization: defaultSearchOrganizationConstant, Topic: defaultSearchTopicConstant},
		},
		{
			Name:   defaultPlatformGroupNameConstant,
			Report: defaultPlatformReportConstant,
			Repositories: []RepositoryConfiguration{
				{FullName: "apache/camel-quarkus"},
				{FullName: "kiegroup/kogito-runtimes", Path: "quarkus"},
				{FullName: "kiegroup/optaplanner", Path: "optaplanner-quarkus-integration"},
				{FullName: "datastax/cassandra-quarkus"},
				{FullName: "amqphub/quarkus-qpid-jms"},
				{FullName: "hazelcast/quarkus-hazelcast-client"},
				{FullName: "debezium/debezium", Path: "debezium-quarkus-outbox"},
				{FullName: "Blazebit/blaze-persistence", Path: "integration/quarkus"},
			},
		},
	}
}

// DefaultConfigurationValues produces Viper defaults for the collect command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + sinceConfigurationKeyConstant:           defaults.Since,
		rootKey + "." + branchConfigurationKeyConstant:          defaults.Branch,
		rootKey + "." + sortConfigurationKeyConstant:            string(defaults.Sort),
		rootKey + "." + tokenConfigurationKeyConstant:           defaults.Token,
		rootKey + "." + apiBaseURLConfigurationKeyConstant:      defaults.APIBaseURL,
		rootKey + "." + gitHostConfigurationKeyConstant:         defaults.GitHost,
		rootKey + "." + protocolConfigurationKeyConstant:        defaults.Protocol,
		rootKey + "." + cloneDirectoryConfigurationKeyConstant:  defaults.CloneDirectory,
		rootKey + "." + outputDirectoryConfigurationKeyConstant: defaults.OutputDirectory,
		rootKey + "." + combinedReportConfigurationKeyConstant:  defaults.CombinedReport,
		rootKey + "." + groupsFileConfigurationKeyConstant:      defaults.GroupsFile,
		rootKey + "." + botMarkerConfigurationKeyConstant:       defaults.BotMarker,
		rootKey + "." + ignoredAuthorsConfigurationKeyConstant:  defaults.IgnoredAuthors,
		rootKey + "." + noReplySuffixConfigurationKeyConstant:   defaults.NoReplySuffix,
		rootKey + "." + groupsConfigurationKeyConstant:          defaults.Groups,
	}
}

// IdentityPolicy builds the author filtering policy described by the configuration.
func (configuration CommandConfiguration) IdentityPolicy() contributions.IdentityPolicy {
	return contributions.IdentityPolicy{
		BotMarker:      configuration.BotMarker,
		IgnoredAuthors: append([]string{}, configuration.IgnoredAuthors...),
		NoReplySuffix:  configuration.NoReplySuffix,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	defaults := DefaultCommandConfiguration()

	sanitized.Since = strings.TrimSpace(configuration.Since)
	sanitized.Branch = strings.TrimSpace(configuration.Branch)
	sanitized.Token = strings.TrimSpace(configuration.Token)
	sanitized.APIBaseURL = strings.TrimSpace(configuration.APIBaseURL)
	sanitized.GitHost = valueOrDefault(configuration.GitHost, defaults.GitHost)
	sanitized.Protocol = valueOrDefault(configuration.Protocol, defaults.Protocol)
	sanitized.CloneDirectory = valueOrDefault(configuration.CloneDirectory, defaults.CloneDirectory)
	sanitized.OutputDirectory = valueOrDefault(configuration.OutputDirectory, defaults.OutputDirectory)
	sanitized.CombinedReport = valueOrDefault(configuration.CombinedReport, defaults.CombinedReport)
	sanitized.GroupsFile = strings.TrimSpace(configuration.GroupsFile)
	sanitized.IgnoredAuthors = sanitizeAuthors(configuration.IgnoredAuthors)
	if len(sanitized.Sort) == 0 {
		sanitized.Sort = defaults.Sort
	}
	if configuration.Groups == nil {
		sanitized.Groups = defaults.Groups
	} else {
		sanitized.Groups = sanitizeGroups(configuration.Groups)
	}

	return sanitized
}

func valueOrDefault(value string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}

func sanitizeAuthors(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}

func sanitizeGroups(raw []GroupConfiguration) []GroupConfiguration {
	sanitized := make([]GroupConfiguration, 0, len(raw))
	for _, group := range raw {
		trimmedGroup := GroupConfiguration{
			Name:   strings.TrimSpace(group.Name),
			Report: strings.TrimSpace(group.Report),
		}
		if group.Search != nil {
			trimmedGroup.Search = &SearchConfiguration{
				Organization: strings.TrimSpace(group.Search.Organization),
				Topic:        strings.TrimSpace(group.Search.Topic),
			}
		}
		for _, repository := range group.Repositories {
			trimmedName := strings.TrimSpace(repository.FullName)
			if len(trimmedName) == 0 {
				continue
			}
			trimmedGroup.Repositories = append(trimmedGroup.Repositories, RepositoryConfiguration{
				FullName: trimmedName,
				Path:     strings.TrimSpace(repository.Path),
				Branch:   strings.TrimSpace(repository.Branch),
				Primary:  repository.Primary,
			})
		}
		sanitized = append(sanitized, trimmedGroup)
	}
	return sanitized
}

// validateGroups rejects group sets that cannot produce distinct reports.
func validateGroups(groups []GroupConfiguration, combinedReport string) error {
	if len(groups) == 0 {
		return errors.New(noGroupsConfiguredMessageConstant)
	}

	seenGroups := make(map[string]struct{}, len(groups))
	seenReports := map[string]struct{}{combinedReport: {}}
	for _, group := range groups {
		if len(group.Name) == 0 {
			return errors.New(groupNameRequiredMessageConstant)
		}
		if _, exists := seenGroups[group.Name]; exists {
			return fmt.Errorf(groupDuplicateTemplateConstant, group.Name)
		}
		seenGroups[group.Name] = struct{}{}

		if len(group.Report) == 0 {
			return fmt.Errorf(groupReportRequiredTemplateConstant, group.Name)
		}
		if _, exists := seenReports[group.Report]; exists {
			return fmt.Errorf(reportDuplicateTemplateConstant, group.Report)
		}
		seenReports[group.Report] = struct{}{}

		if group.Search == nil && len(group.Repositories) == 0 {
			return fmt.Errorf(groupSourceRequiredTemplateConstant, group.Name)
		}
		if group.Search != nil && (len(group.Search.Organization) == 0 || len(group.Search.Topic) == 0) {
			return fmt.Errorf(searchIncompleteTemplateConstant, group.Name)
		}
	}
	return nil
}

// LoadGroupsFile reads group definitions from a YAML document with a top-level groups list.
func LoadGroupsFile(filePath string) ([]GroupConfiguration, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return nil, errors.New(groupsFilePathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return nil, fmt.Errorf(groupsFileLoadErrorTemplateConstant, readError)
	}

	var document groupsFile
	if unmarshalError := yaml.Unmarshal(contentBytes, &document); unmarshalError != nil {
		return nil, fmt.Errorf(groupsFileParseErrorTemplateConstant, unmarshalError)
	}

	return sanitizeGroups(document.Groups), nil
}
