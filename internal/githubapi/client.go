package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

const (
	searchQueryTemplateConstant             = "org:%s topic:%s"
	searchOrderAscendingConstant            = "asc"
	searchPageSizeConstant                  = 100
	fullNameSeparatorConstant               = "/"
	baseURLSuffixConstant                   = "/"
	requiredValueMessageConstant            = "value required"
	invalidFullNameMessageConstant          = "expected owner/name"
	invalidBaseURLMessageConstant           = "invalid base url"
	httpClientNotConfiguredMessageConstant  = "github http client not configured"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	organizationFieldNameConstant           = "organization"
	topicFieldNameConstant                  = "topic"
	repositoryFieldNameConstant             = "repository"
	baseURLFieldNameConstant                = "base_url"
	searchRepositoriesOperationNameConstant = OperationName("SearchRepositories")
	getRepositoryOperationNameConstant      = OperationName("GetRepository")
)

// OperationName describes a named GitHub API call performed by the client.
type OperationName string

// ErrHTTPClientNotConfigured indicates the client was constructed without an HTTP client.
var ErrHTTPClientNotConfigured = errors.New(httpClientNotConfiguredMessageConstant)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps failures returned by the GitHub API.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// Repository holds the repository details the collection workflow consumes.
type Repository struct {
	FullName string
	Owner    string
	Name     string
	SSHURL   string
	CloneURL string
}

// ClientConfiguration configures authentication and the API endpoint.
type ClientConfiguration struct {
	Token   string
	BaseURL string
}

// Client performs repository lookups against the GitHub REST API.
type Client struct {
	github *github.Client
}

// NewHTTPClient returns an HTTP client that authenticates with the token, or an anonymous client when the token is empty.
func NewHTTPClient(executionContext context.Context, token string) *http.Client {
	trimmedToken := strings.TrimSpace(token)
	if len(trimmedToken) == 0 {
		return &http.Client{}
	}
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: trimmedToken})
	return oauth2.NewClient(executionContext, tokenSource)
}

// NewClient constructs a Client authenticated according to the configuration.
func NewClient(executionContext context.Context, configuration ClientConfiguration) (*Client, error) {
	return NewClientWithHTTPClient(NewHTTPClient(executionContext, configuration.Token), configuration.BaseURL)
}

// NewClientWithHTTPClient constructs a Client over the provided HTTP client. An empty base URL targets api.github.com.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	if httpClient == nil {
		return nil, ErrHTTPClientNotConfigured
	}

	githubClient := github.NewClient(httpClient)
	trimmedBaseURL := strings.TrimSpace(baseURL)
	if len(trimmedBaseURL) > 0 {
		if !strings.HasSuffix(trimmedBaseURL, baseURLSuffixConstant) {
			trimmedBaseURL += baseURLSuffixConstant
		}
		parsedBaseURL, parseError := url.Parse(trimmedBaseURL)
		if parseError != nil || len(parsedBaseURL.Host) == 0 {
			return nil, InvalidInputError{FieldName: baseURLFieldNameConstant, Message: invalidBaseURLMessageConstant}
		}
		githubClient.BaseURL = parsedBaseURL
	}

	return &Client{github: githubClient}, nil
}

// SearchRepositories lists every repository of the organization tagged with the topic, in ascending order.
func (client *Client) SearchRepositories(executionContext context.Context, organization string, topic string) ([]Repository, error) {
	trimmedOrganization := strings.TrimSpace(organization)
	if len(trimmedOrganization) == 0 {
		return nil, InvalidInputError{FieldName: organizationFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedTopic := strings.TrimSpace(topic)
	if len(trimmedTopic) == 0 {
		return nil, InvalidInputError{FieldName: topicFieldNameConstant, Message: requiredValueMessageConstant}
	}

	query := fmt.Sprintf(searchQueryTemplateConstant, trimmedOrganization, trimmedTopic)
	searchOptions := &github.SearchOptions{
		Order:       searchOrderAscendingConstant,
		ListOptions: github.ListOptions{PerPage: searchPageSizeConstant},
	}

	repositories := make([]Repository, 0)
	for {
		searchResult, response, searchError := client.github.Search.Repositories(executionContext, query, searchOptions)
		if searchError != nil {
			return nil, OperationError{Operation: searchRepositoriesOperationNameConstant, Cause: searchError}
		}
		for _, repository := range searchResult.Repositories {
			repositories = append(repositories, convertRepository(repository))
		}
		if response == nil || response.NextPage == 0 {
			break
		}
		searchOptions.Page = response.NextPage
	}

	return repositories, nil
}

// GetRepository looks up a repository by its owner/name full name.
func (client *Client) GetRepository(executionContext context.Context, fullName string) (Repository, error) {
	owner, name, found := strings.Cut(strings.TrimSpace(fullName), fullNameSeparatorConstant)
	if !found || len(owner) == 0 || len(name) == 0 {
		return Repository{}, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: invalidFullNameMessageConstant}
	}

	repository, _, lookupError := client.github.Repositories.Get(executionContext, owner, name)
	if lookupError != nil {
		return Repository{}, OperationError{Operation: getRepositoryOperationNameConstant, Cause: lookupError}
	}
	return convertRepository(repository), nil
}

func convertRepository(repository *github.Repository) Repository {
	return Repository{
		FullName: repository.GetFullName(),
		Owner:    repository.GetOwner().GetLogin(),
		Name:     repository.GetName(),
		SSHURL:   repository.GetSSHURL(),
		CloneURL: repository.GetCloneURL(),
	}
}
