// Package githubapi enumerates repositories through the GitHub REST API.
//
// Client wraps go-github with an oauth2 token source and exposes the two
// lookups the collection workflow needs: a paginated organization/topic search
// and a direct lookup by full name.
package githubapi
