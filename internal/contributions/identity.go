package contributions

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

const (
	defaultBotMarkerConstant        = "[bot]"
	defaultNoReplySuffixConstant    = "@users.noreply.github.com"
	emailLocalPartSeparatorConstant = "@"
	handleSeparatorConstant         = "+"
)

var defaultIgnoredAuthors = []string{
	"GitHub Action",
	"GitHub",
	"debezium-builder",
	"Debezium Builder",
	"bsig-cloud gh bot",
	"Jenkins CI",
	"kie-ci",
	"Ubuntu",
	"quarkiversebot",
}

// IdentityPolicy decides which authors are ignored and which emails are host-generated placeholders.
type IdentityPolicy struct {
	BotMarker      string
	IgnoredAuthors []string
	NoReplySuffix  string
}

// DefaultIdentityPolicy returns the policy used when no overrides are configured.
func DefaultIdentityPolicy() IdentityPolicy {
	return IdentityPolicy{
		BotMarker:      defaultBotMarkerConstant,
		IgnoredAuthors: DefaultIgnoredAuthors(),
		NoReplySuffix:  defaultNoReplySuffixConstant,
	}
}

// DefaultIgnoredAuthors lists the CI and automation display names dropped by default.
func DefaultIgnoredAuthors() []string {
	return append([]string{}, defaultIgnoredAuthors...)
}

// IsBot reports whether the raw author name belongs to an automation account.
func (policy IdentityPolicy) IsBot(authorName string) bool {
	if len(policy.BotMarker) > 0 && strings.Contains(authorName, policy.BotMarker) {
		return true
	}
	for _, ignoredAuthor := range policy.IgnoredAuthors {
		if authorName == ignoredAuthor {
			return true
		}
	}
	return false
}

// IsNoReplyEmail reports whether the email is a host-generated no-reply placeholder.
func (policy IdentityPolicy) IsNoReplyEmail(email string) bool {
	if len(policy.NoReplySuffix) == 0 {
		return false
	}
	return strings.Contains(email, policy.NoReplySuffix)
}

// NormalizeName transliterates the name to ASCII and lowercases it. The result is only used as a lookup key.
func NormalizeName(name string) string {
	return strings.ToLower(unidecode.Unidecode(name))
}

// ExtractHandle returns the account handle encoded in a no-reply email such as id+handle@domain.
func ExtractHandle(email string) string {
	localPart := email
	if separatorIndex := strings.Index(email, emailLocalPartSeparatorConstant); separatorIndex >= 0 {
		localPart = email[:separatorIndex]
	}
	if handleIndex := strings.LastIndex(localPart, handleSeparatorConstant); handleIndex >= 0 {
		return localPart[handleIndex+1:]
	}
	return localPart
}
