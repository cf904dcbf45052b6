package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	commandWithArgumentsTemplateConstant    = "%s %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	gitCloneSubcommandNameConstant   = "clone"
	gitLogSubcommandNameConstant     = "log"
	gitBranchFlagConstant            = "--branch"
	gitSinceFlagConstant             = "--since"
	gitPathSeparatorArgumentConstant = "--"
	gitRepositoryRootPathConstant    = "."
)

const (
	gitCloneStartTemplateConstant            = "Cloning %s into %s"
	gitCloneSuccessTemplateConstant          = "Cloned %s into %s"
	gitCloneFailureTemplateConstant          = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant = "Unable to clone %s into %s: %s"
	gitLogStartTemplateConstant              = "Reading history of %s in %s since %s"
	gitLogSuccessTemplateConstant            = "Read history of %s in %s since %s"
	gitLogFailureTemplateConstant            = "Failed to read history of %s in %s since %s (exit code %d%s)"
	gitLogExecutionFailureTemplateConstant   = "Unable to read history of %s in %s since %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommandIndex := formatter.subcommandIndex(command.Details.Arguments)
	if subcommandIndex < 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch strings.TrimSpace(command.Details.Arguments[subcommandIndex]) {
	case gitCloneSubcommandNameConstant:
		return formatter.describeGitCloneMessage(command, command.Details.Arguments[subcommandIndex+1:], result, failure, stage)
	case gitLogSubcommandNameConstant:
		return formatter.describeGitLogMessage(command, command.Details.Arguments[subcommandIndex+1:], result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCloneMessage(command ShellCommand, arguments []string, result ExecutionResult, failure error, stage messageStage) string {
	positionalArguments := formatter.positionalArguments(arguments, gitBranchFlagConstant)
	remoteURL := formatter.ensureValue(formatter.argumentAtIndex(positionalArguments, 0))
	targetDirectory := formatter.ensureValue(formatter.argumentAtIndex(positionalArguments, 1))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCloneStartTemplateConstant, remoteURL, targetDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitCloneSuccessTemplateConstant, remoteURL, targetDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitCloneFailureTemplateConstant, remoteURL, targetDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCloneExecutionFailureTemplateConstant, remoteURL, targetDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitLogMessage(command ShellCommand, arguments []string, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	since := formatter.ensureValue(findFlagValue(arguments, gitSinceFlagConstant))
	historyPath := gitRepositoryRootPathConstant
	for argumentIndex, argument := range arguments {
		if argument == gitPathSeparatorArgumentConstant {
			historyPath = formatter.ensureValue(formatter.argumentAtIndex(arguments, argumentIndex+1))
			break
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitLogStartTemplateConstant, historyPath, workingDirectory, since)
	case messageStageSuccess:
		return fmt.Sprintf(gitLogSuccessTemplateConstant, historyPath, workingDirectory, since)
	case messageStageFailure:
		return fmt.Sprintf(gitLogFailureTemplateConstant, historyPath, workingDirectory, since, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitLogExecutionFailureTemplateConstant, historyPath, workingDirectory, since, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

// subcommandIndex skips global git options such as --no-pager.
func (formatter CommandMessageFormatter) subcommandIndex(arguments []string) int {
	for argumentIndex, argument := range arguments {
		if strings.HasPrefix(strings.TrimSpace(argument), flagPrefixConstant) {
			continue
		}
		return argumentIndex
	}
	return -1
}

// positionalArguments drops flags along with the values of the listed value-taking flags.
func (formatter CommandMessageFormatter) positionalArguments(arguments []string, valueFlags ...string) []string {
	positional := make([]string, 0, len(arguments))
	for argumentIndex := 0; argumentIndex < len(arguments); argumentIndex++ {
		argument := strings.TrimSpace(arguments[argumentIndex])
		if containsArgument(valueFlags, argument) {
			argumentIndex++
			continue
		}
		if strings.HasPrefix(argument, flagPrefixConstant) {
			continue
		}
		positional = append(positional, argument)
	}
	return positional
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf(commandWithArgumentsTemplateConstant, commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for argumentIndex, argument := range arguments {
		if strings.TrimSpace(argument) == flag && argumentIndex+1 < len(arguments) {
			return arguments[argumentIndex+1]
		}
	}
	return emptyStringConstant
}
