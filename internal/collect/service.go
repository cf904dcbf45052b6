package collect

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/quarkusio/get-contributors/internal/contributions"
	"github.com/quarkusio/get-contributors/internal/githubapi"
	"github.com/quarkusio/get-contributors/internal/gitrepo"
	"github.com/quarkusio/get-contributors/internal/repos/shared"
)

const (
	groupHeaderTemplateConstant          = "Analyzing %d %s repositories\n"
	groupSeparatorConstant               = "\n"
	repositoryProgressTemplateConstant   = " > Analyzing %s\n"
	alreadyAnalyzedMessageConstant       = "    ... already analyzed\n"
	errorCaptureFileNameConstant         = "error.txt"
	contributionsCaptureFileNameConstant = "contributions.txt"
	originRemotePrefixConstant           = "origin/"
	combinedSummaryNameConstant          = "all groups"
	directoryPermissionsConstant         = fs.FileMode(0o755)
	captureFilePermissionsConstant       = fs.FileMode(0o644)
	groupLogFieldConstant                = "group"
	repositoryLogFieldConstant           = "repository"
	ingestedLogFieldConstant             = "ingested"
	ignoredLogFieldConstant              = "ignored"
	skippedLogFieldConstant              = "skipped"
	countedGloballyLogFieldConstant      = "counted_globally"
	contributorsLogFieldConstant         = "contributors"
	commitsLogFieldConstant              = "commits"
	reportLogFieldConstant               = "report"
	repositoryFoldedMessageConstant      = "repository history folded"
	reportWrittenMessageConstant         = "report written"
)

// Service walks the configured groups, folds each repository's author history and writes the reports.
type Service struct {
	logger           *zap.Logger
	fileSystem       shared.FileSystem
	enumerator       shared.RepositoryEnumerator
	historyExtractor shared.HistoryExtractor
	reporter         shared.Reporter
	clock            shared.Clock
}

type plannedRepository struct {
	coordinates gitrepo.RepositoryCoordinates
	cloneURL    string
	historyPath string
	branch      string
}

// NewService constructs a Service. A nil logger, reporter or clock falls back to a no-op logger, standard output and the system clock.
func NewService(logger *zap.Logger, fileSystem shared.FileSystem, enumerator shared.RepositoryEnumerator, historyExtractor shared.HistoryExtractor, reporter shared.Reporter, clock shared.Clock) (*Service, error) {
	if fileSystem == nil {
		return nil, ErrFileSystemMissing
	}
	if enumerator == nil {
		return nil, ErrEnumeratorMissing
	}
	if historyExtractor == nil {
		return nil, ErrHistoryExtractorMissing
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	if clock == nil {
		clock = shared.SystemClock{}
	}

	return &Service{
		logger:           logger,
		fileSystem:       fileSystem,
		enumerator:       enumerator,
		historyExtractor: historyExtractor,
		reporter:         reporter,
		clock:            clock,
	}, nil
}

// Run executes one collection pass. Any clone or history failure aborts the run.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	if options.Since.IsZero() {
		return Result{}, ErrSinceRequired
	}
	if validationError := validateGroups(options.Groups, options.CombinedReportFile); validationError != nil {
		return Result{}, validationError
	}

	startedAt := service.clock.Now()

	if prepareError := service.prepareScratchDirectory(options.CloneDirectory); prepareError != nil {
		return Result{}, prepareError
	}
	if prepareError := service.prepareOutputDirectory(options); prepareError != nil {
		return Result{}, prepareError
	}

	tracker := contributions.NewTracker(options.IdentityPolicy)
	repositoryCounts := make([]int, len(options.Groups))
	analyzedRepositories := make(map[string]struct{})

	for groupIndex, group := range options.Groups {
		plannedRepositories, planError := service.planGroup(executionContext, group, options)
		if planError != nil {
			return Result{}, planError
		}

		if groupIndex > 0 {
			service.reporter.Printf(groupSeparatorConstant)
		}
		service.reporter.Printf(groupHeaderTemplateConstant, len(plannedRepositories), group.Name)
		tracker.Group(group.Name)

		for _, repository := range plannedRepositories {
			if collectError := service.collectRepository(executionContext, tracker, group.Name, repository, options); collectError != nil {
				return Result{}, collectError
			}
			analyzedRepositories[strings.ToLower(repository.coordinates.FullName())] = struct{}{}
		}
		repositoryCounts[groupIndex] = len(plannedRepositories)
	}

	result := Result{Groups: make([]GroupSummary, 0, len(options.Groups))}
	for groupIndex, group := range options.Groups {
		summary, writeError := service.writeReport(group.Name, filepath.Join(options.OutputDirectory, group.Report), tracker.Group(group.Name), repositoryCounts[groupIndex], options.SortStrategy)
		if writeError != nil {
			return Result{}, writeError
		}
		result.Groups = append(result.Groups, summary)
	}

	combinedSummary, combinedError := service.writeReport(combinedSummaryNameConstant, filepath.Join(options.OutputDirectory, options.CombinedReportFile), tracker.Global(), len(analyzedRepositories), options.SortStrategy)
	if combinedError != nil {
		return Result{}, combinedError
	}
	result.Combined = combinedSummary
	result.Elapsed = service.clock.Now().Sub(startedAt)

	return result, nil
}

func (service *Service) prepareScratchDirectory(cloneDirectory string) error {
	_, statError := service.fileSystem.Stat(cloneDirectory)
	if statError == nil {
		return ScratchDirectoryExistsError{Path: cloneDirectory}
	}
	if !errors.Is(statError, fs.ErrNotExist) {
		return statError
	}
	return service.fileSystem.MkdirAll(cloneDirectory, directoryPermissionsConstant)
}

// prepareOutputDirectory removes reports left over from an earlier run so appends start from empty files.
func (service *Service) prepareOutputDirectory(options Options) error {
	if mkdirError := service.fileSystem.MkdirAll(options.OutputDirectory, directoryPermissionsConstant); mkdirError != nil {
		return mkdirError
	}

	reportFiles := make([]string, 0, len(options.Groups)+1)
	for _, group := range options.Groups {
		reportFiles = append(reportFiles, group.Report)
	}
	reportFiles = append(reportFiles, options.CombinedReportFile)

	for _, reportFile := range reportFiles {
		if removeError := service.fileSystem.RemoveFile(filepath.Join(options.OutputDirectory, reportFile)); removeError != nil {
			return removeError
		}
	}
	return nil
}

// planGroup resolves a group's sources into a list with each repository listed once.
func (service *Service) planGroup(executionContext context.Context, group GroupConfiguration, options Options) ([]plannedRepository, error) {
	plannedRepositories := make([]plannedRepository, 0)
	seenRepositories := make(map[string]struct{})

	appendPlanned := func(repository githubapi.Repository, configuration RepositoryConfiguration) error {
		planned, planError := planRepository(repository, configuration, options)
		if planError != nil {
			return RepositoryError{Step: RepositoryStepResolve, Repository: configuration.FullName, Cause: planError}
		}
		key := strings.ToLower(planned.coordinates.FullName())
		if _, seen := seenRepositories[key]; seen {
			return nil
		}
		seenRepositories[key] = struct{}{}
		plannedRepositories = append(plannedRepositories, planned)
		return nil
	}

	if group.Search != nil {
		searchResults, searchError := service.enumerator.SearchRepositories(executionContext, group.Search.Organization, group.Search.Topic)
		if searchError != nil {
			return nil, searchError
		}
		for _, repository := range searchResults {
			if appendError := appendPlanned(repository, RepositoryConfiguration{FullName: repository.FullName}); appendError != nil {
				return nil, appendError
			}
		}
	}

	for _, configuration := range group.Repositories {
		repository, lookupError := service.enumerator.GetRepository(executionContext, configuration.FullName)
		if lookupError != nil {
			return nil, RepositoryError{Step: RepositoryStepResolve, Repository: configuration.FullName, Cause: lookupError}
		}
		if appendError := appendPlanned(repository, configuration); appendError != nil {
			return nil, appendError
		}
	}

	return plannedRepositories, nil
}

func planRepository(repository githubapi.Repository, configuration RepositoryConfiguration, options Options) (plannedRepository, error) {
	fullName := repository.FullName
	if len(strings.TrimSpace(fullName)) == 0 {
		fullName = configuration.FullName
	}
	coordinates, parseError := gitrepo.ParseRepositoryFullName(fullName)
	if parseError != nil {
		return plannedRepository{}, parseError
	}

	cloneURL := repository.SSHURL
	if options.Protocol == gitrepo.RemoteProtocolHTTPS {
		cloneURL = repository.CloneURL
	}
	if len(strings.TrimSpace(cloneURL)) == 0 {
		formattedURL, formatError := gitrepo.FormatCloneURL(options.GitHost, options.Protocol, coordinates)
		if formatError != nil {
			return plannedRepository{}, formatError
		}
		cloneURL = formattedURL
	}

	branch := configuration.Branch
	if configuration.Primary && len(options.BranchOverride) > 0 {
		branch = options.BranchOverride
	}

	return plannedRepository{
		coordinates: coordinates,
		cloneURL:    cloneURL,
		historyPath: configuration.Path,
		branch:      branch,
	}, nil
}

// collectRepository clones the repository unless an earlier group already did, then folds its history.
// A repository that was already cloned only counts toward the current group.
func (service *Service) collectRepository(executionContext context.Context, tracker *contributions.Tracker, groupName string, repository plannedRepository, options Options) error {
	fullName := repository.coordinates.FullName()
	cloneDirectory := repository.coordinates.CloneDirectory(options.CloneDirectory)

	service.reporter.Printf(repositoryProgressTemplateConstant, fullName)

	_, statError := service.fileSystem.Stat(cloneDirectory)
	alreadyCloned := statError == nil
	if statError != nil && !errors.Is(statError, fs.ErrNotExist) {
		return RepositoryError{Step: RepositoryStepClone, Repository: fullName, Cause: statError}
	}

	if alreadyCloned {
		service.reporter.Printf(alreadyAnalyzedMessageConstant)
	} else {
		if mkdirError := service.fileSystem.MkdirAll(filepath.Dir(cloneDirectory), directoryPermissionsConstant); mkdirError != nil {
			return RepositoryError{Step: RepositoryStepClone, Repository: fullName, Cause: mkdirError}
		}
		cloneRequest := gitrepo.CloneRequest{RemoteURL: repository.cloneURL, TargetDirectory: cloneDirectory, Branch: repository.branch}
		if cloneError := service.historyExtractor.Clone(executionContext, cloneRequest); cloneError != nil {
			return RepositoryError{Step: RepositoryStepClone, Repository: fullName, Cause: cloneError}
		}
	}

	historyRequest := gitrepo.HistoryRequest{
		RepositoryPath: cloneDirectory,
		Since:          options.Since,
		Path:           repository.historyPath,
	}
	if len(repository.branch) > 0 {
		historyRequest.Revision = originRemotePrefixConstant + repository.branch
	}

	historyOutput, historyError := service.historyExtractor.ExtractHistory(executionContext, historyRequest)
	if captureError := service.captureHistory(cloneDirectory, historyOutput); captureError != nil {
		return RepositoryError{Step: RepositoryStepCapture, Repository: fullName, Cause: captureError}
	}
	if historyError != nil {
		return RepositoryError{Step: RepositoryStepHistory, Repository: fullName, Cause: historyError}
	}

	statistics := tracker.Fold(groupName, fullName, gitrepo.ParseAuthorLog(historyOutput.Log), !alreadyCloned)
	service.logger.Debug(repositoryFoldedMessageConstant,
		zap.String(groupLogFieldConstant, groupName),
		zap.String(repositoryLogFieldConstant, fullName),
		zap.Int(ingestedLogFieldConstant, statistics.Ingested),
		zap.Int(ignoredLogFieldConstant, statistics.Ignored),
		zap.Int(skippedLogFieldConstant, statistics.Skipped),
		zap.Bool(countedGloballyLogFieldConstant, !alreadyCloned),
	)
	return nil
}

// captureHistory keeps the raw git streams next to the clone for inspection after a run.
func (service *Service) captureHistory(cloneDirectory string, historyOutput gitrepo.HistoryOutput) error {
	if writeError := service.fileSystem.WriteFile(filepath.Join(cloneDirectory, errorCaptureFileNameConstant), []byte(historyOutput.StandardError), captureFilePermissionsConstant); writeError != nil {
		return writeError
	}
	return service.fileSystem.WriteFile(filepath.Join(cloneDirectory, contributionsCaptureFileNameConstant), []byte(historyOutput.Log), captureFilePermissionsConstant)
}

func (service *Service) writeReport(name string, reportPath string, scope *contributions.Scope, repositoryCount int, strategy contributions.SortStrategy) (GroupSummary, error) {
	records := scope.Records()
	if writeError := contributions.WriteReport(service.fileSystem, reportPath, records, strategy); writeError != nil {
		return GroupSummary{}, writeError
	}

	summary := GroupSummary{
		Name:         name,
		ReportPath:   reportPath,
		Repositories: repositoryCount,
		Contributors: len(records),
		Commits:      scope.CommitTotal(),
	}
	service.logger.Info(reportWrittenMessageConstant,
		zap.String(groupLogFieldConstant, name),
		zap.String(reportLogFieldConstant, reportPath),
		zap.Int(contributorsLogFieldConstant, summary.Contributors),
		zap.Int(commitsLogFieldConstant, summary.Commits),
	)
	return summary, nil
}
