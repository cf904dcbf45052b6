package gitrepo

import (
	"errors"
	"fmt"
)

// OperationName identifies a git operation performed by the history manager.
type OperationName string

// Supported operations.
const (
	OperationClone      OperationName = OperationName("clone")
	OperationLogHistory OperationName = OperationName("log")
)

const (
	operationErrorTemplateConstant       = "git %s %s failed: %v"
	invalidInputErrorTemplateConstant    = "%s: %s"
	requiredValueMessageConstant         = "value required"
	executorNotConfiguredMessageConstant = "git executor not configured"
)

// ErrGitExecutorNotConfigured indicates the history manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// OperationError wraps a failed git operation with the repository it targeted.
type OperationError struct {
	Operation  OperationName
	Repository string
	Cause      error
}

// Error describes the failure.
func (operationError OperationError) Error() string {
	return fmt.Sprintf(operationErrorTemplateConstant, operationError.Operation, operationError.Repository, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// InvalidInputError reports a missing or malformed request field.
type InvalidInputError struct {
	Field   string
	Message string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.Field, inputError.Message)
}
