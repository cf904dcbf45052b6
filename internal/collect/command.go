package collect

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quarkusio/get-contributors/internal/contributions"
	"github.com/quarkusio/get-contributors/internal/githubapi"
	"github.com/quarkusio/get-contributors/internal/githubauth"
	"github.com/quarkusio/get-contributors/internal/gitrepo"
	"github.com/quarkusio/get-contributors/internal/repos/dependencies"
	"github.com/quarkusio/get-contributors/internal/repos/shared"
	"github.com/quarkusio/get-contributors/internal/utils"
	"github.com/quarkusio/get-contributors/internal/utils/flags"
	pathutils "github.com/quarkusio/get-contributors/internal/utils/path"
)

const (
	commandUseConstant                     = "collect [since]"
	commandShortDescriptionConstant        = "Aggregate contributor statistics across repository groups"
	commandLongDescriptionConstant         = "collect clones every repository of the configured groups, reads the non-merge commit authors since the given date (YYYY-MM-DD), merges identities and writes one report per group plus a combined report."
	commandExecutionErrorTemplateConstant  = "contribution collection failed: %w"
	sinceParseErrorTemplateConstant        = "invalid since date %q: expected YYYY-MM-DD"
	sinceConflictTemplateConstant          = "since date given twice: %q and %q"
	sinceLayoutConstant                    = "2006-01-02"
	flagSinceNameConstant                  = "since"
	flagSinceDescriptionConstant           = "Only count commits made on or after this date (YYYY-MM-DD)"
	flagBranchNameConstant                 = "branch"
	flagBranchDescriptionConstant          = "Branch to analyze in primary repositories"
	flagSortNameConstant                   = "sort"
	flagSortDescriptionConstant            = "Report row order"
	flagTokenNameConstant                  = "token"
	flagTokenDescriptionConstant           = "GitHub token (defaults to GITHUB_TOKEN, GH_TOKEN or GITHUB_OAUTH)"
	flagCloneDirectoryNameConstant         = "clone-directory"
	flagCloneDirectoryDescriptionConstant  = "Scratch directory for clones; must not exist"
	flagOutputDirectoryNameConstant        = "output-directory"
	flagOutputDirectoryDescriptionConstant = "Directory receiving the report files"
	flagProtocolNameConstant               = "protocol"
	flagProtocolDescriptionConstant        = "Clone URL protocol"
	flagGroupsNameConstant                 = "groups"
	flagGroupsDescriptionConstant          = "YAML file with a groups list replacing the configured groups"
	tokenMissingMessageConstant            = "no GitHub token found; API requests are unauthenticated and heavily rate limited"
	collectStartedMessageConstant          = "collect started"
	logFieldConfigurationFileConstant      = "config_file"
	logFieldSinceConstant                  = "since"
	logFieldGroupCountConstant             = "group_count"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current collect configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the collect cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            shared.FileSystem
	GitExecutor           shared.GitExecutor
	HistoryExtractor      shared.HistoryExtractor
	RepositoryEnumerator  shared.RepositoryEnumerator
	Clock                 shared.Clock
	EnvironmentLookup     githubauth.EnvironmentLookup
	HomeExpander          *pathutils.HomeExpander
}

// Build constructs the collect command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(flagSinceNameConstant, "", flagSinceDescriptionConstant)
	command.Flags().String(flagBranchNameConstant, "", flagBranchDescriptionConstant)
	sortStrategy := contributions.SortByName
	command.Flags().Var(&sortStrategy, flagSortNameConstant, flags.FormatChoiceUsage(string(contributions.SortByName), contributions.SortStrategyChoices(), flagSortDescriptionConstant))
	command.Flags().String(flagTokenNameConstant, "", flagTokenDescriptionConstant)
	command.Flags().String(flagCloneDirectoryNameConstant, "", flagCloneDirectoryDescriptionConstant)
	command.Flags().String(flagOutputDirectoryNameConstant, "", flagOutputDirectoryDescriptionConstant)
	command.Flags().String(flagProtocolNameConstant, string(gitrepo.RemoteProtocolSSH), flags.FormatChoiceUsage(string(gitrepo.RemoteProtocolSSH), gitrepo.RemoteProtocolChoices(), flagProtocolDescriptionConstant))
	command.Flags().String(flagGroupsNameConstant, "", flagGroupsDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration(command)

	options, optionsError := builder.parseOptions(command, arguments, configuration)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	contextValues, _ := utils.CommandContextValuesFrom(command.Context())
	logger.Debug(
		collectStartedMessageConstant,
		zap.String(logFieldConfigurationFileConstant, contextValues.ConfigurationFilePath),
		zap.Time(logFieldSinceConstant, options.Since),
		zap.Int(logFieldGroupCountConstant, len(options.Groups)),
	)

	service, serviceError := builder.resolveService(command, logger, configuration)
	if serviceError != nil {
		return serviceError
	}

	result, runError := service.Run(command.Context(), options)
	if runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	return NewSummaryRenderer(command.OutOrStdout()).Render(result)
}

// resolveConfiguration overlays explicitly set flags on the configured values.
func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	stringOverrides := map[string]*string{
		flagSinceNameConstant:           &configuration.Since,
		flagBranchNameConstant:          &configuration.Branch,
		flagTokenNameConstant:           &configuration.Token,
		flagCloneDirectoryNameConstant:  &configuration.CloneDirectory,
		flagOutputDirectoryNameConstant: &configuration.OutputDirectory,
		flagProtocolNameConstant:        &configuration.Protocol,
		flagGroupsNameConstant:          &configuration.GroupsFile,
	}
	for flagName, target := range stringOverrides {
		if !command.Flags().Changed(flagName) {
			continue
		}
		flagValue, _ := command.Flags().GetString(flagName)
		*target = flagValue
	}
	if command.Flags().Changed(flagSortNameConstant) {
		configuration.Sort = contributions.SortStrategy(command.Flags().Lookup(flagSortNameConstant).Value.String())
	}

	return configuration.sanitize()
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string, configuration CommandConfiguration) (Options, error) {
	sinceValue := configuration.Since
	if len(arguments) > 0 {
		argumentValue := strings.TrimSpace(arguments[0])
		if command.Flags().Changed(flagSinceNameConstant) && argumentValue != sinceValue {
			return Options{}, fmt.Errorf(sinceConflictTemplateConstant, sinceValue, argumentValue)
		}
		sinceValue = argumentValue
	}
	if len(sinceValue) == 0 {
		if helpError := command.Help(); helpError != nil {
			return Options{}, helpError
		}
		return Options{}, ErrSinceRequired
	}
	since, parseError := time.Parse(sinceLayoutConstant, sinceValue)
	if parseError != nil {
		return Options{}, fmt.Errorf(sinceParseErrorTemplateConstant, sinceValue)
	}

	sortStrategy, sortError := contributions.ParseSortStrategy(string(configuration.Sort))
	if sortError != nil {
		return Options{}, sortError
	}

	protocol, protocolError := gitrepo.ParseRemoteProtocol(configuration.Protocol)
	if protocolError != nil {
		return Options{}, protocolError
	}

	homeExpander := builder.resolveHomeExpander()
	groups := configuration.Groups
	if len(configuration.GroupsFile) > 0 {
		loadedGroups, loadError := LoadGroupsFile(homeExpander.Expand(configuration.GroupsFile))
		if loadError != nil {
			return Options{}, loadError
		}
		groups = loadedGroups
	}

	return Options{
		Since:              since,
		BranchOverride:     configuration.Branch,
		SortStrategy:       sortStrategy,
		Protocol:           protocol,
		GitHost:            configuration.GitHost,
		CloneDirectory:     homeExpander.Expand(configuration.CloneDirectory),
		OutputDirectory:    homeExpander.Expand(configuration.OutputDirectory),
		CombinedReportFile: configuration.CombinedReport,
		IdentityPolicy:     configuration.IdentityPolicy(),
		Groups:             groups,
	}, nil
}

func (builder *CommandBuilder) resolveService(command *cobra.Command, logger *zap.Logger, configuration CommandConfiguration) (*Service, error) {
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger)
	if executorError != nil {
		return nil, executorError
	}

	historyExtractor, extractorError := dependencies.ResolveHistoryExtractor(builder.HistoryExtractor, gitExecutor)
	if extractorError != nil {
		return nil, extractorError
	}

	token, tokenFound := githubauth.ResolveToken(configuration.Token, builder.EnvironmentLookup)
	if !tokenFound && builder.RepositoryEnumerator == nil {
		logger.Warn(tokenMissingMessageConstant)
	}
	enumerator, enumeratorError := dependencies.ResolveRepositoryEnumerator(command.Context(), builder.RepositoryEnumerator, githubapi.ClientConfiguration{
		Token:   token,
		BaseURL: configuration.APIBaseURL,
	})
	if enumeratorError != nil {
		return nil, enumeratorError
	}

	return NewService(
		logger,
		dependencies.ResolveFileSystem(builder.FileSystem),
		enumerator,
		historyExtractor,
		shared.NewWriterReporter(utils.NewFlushingWriter(command.OutOrStdout())),
		dependencies.ResolveClock(builder.Clock),
	)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveHomeExpander() *pathutils.HomeExpander {
	if builder.HomeExpander != nil {
		return builder.HomeExpander
	}
	return pathutils.NewHomeExpander()
}
