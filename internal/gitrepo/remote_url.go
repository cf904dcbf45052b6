package gitrepo

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	httpsProtocolPrefixConstant        = "https://"
	gitUserPrefixConstant              = "git@"
	sshPathDelimiterConstant           = ":"
	pathSeparatorConstant              = "/"
	gitSuffixConstant                  = ".git"
	sshCloneURLTemplateConstant        = "%s%s%s%s/%s%s"
	httpsCloneURLTemplateConstant      = "%s%s/%s/%s%s"
	fullNameParseErrorTemplateConstant = "%s: %s"
	invalidFullNameMessageConstant     = "expected owner/name"
	unknownProtocolMessageConstant     = "unsupported remote protocol"
	fullNameFieldConstant              = "repository"
	hostFieldConstant                  = "host"
)

// RemoteProtocol enumerates supported git remote protocols.
type RemoteProtocol string

// Supported remote protocols.
const (
	RemoteProtocolSSH   RemoteProtocol = RemoteProtocol("ssh")
	RemoteProtocolHTTPS RemoteProtocol = RemoteProtocol("https")
)

// RemoteProtocolChoices lists accepted protocol values.
func RemoteProtocolChoices() []string {
	return []string{string(RemoteProtocolSSH), string(RemoteProtocolHTTPS)}
}

// ParseRemoteProtocol validates a textual protocol. An empty value selects SSH.
func ParseRemoteProtocol(value string) (RemoteProtocol, error) {
	switch RemoteProtocol(strings.ToLower(strings.TrimSpace(value))) {
	case "", RemoteProtocolSSH:
		return RemoteProtocolSSH, nil
	case RemoteProtocolHTTPS:
		return RemoteProtocolHTTPS, nil
	default:
		return "", UnsupportedProtocolError{Protocol: RemoteProtocol(value)}
	}
}

// UnsupportedProtocolError indicates the provided protocol cannot be formatted.
type UnsupportedProtocolError struct {
	Protocol RemoteProtocol
}

// Error describes the unsupported protocol.
func (protocolError UnsupportedProtocolError) Error() string {
	return fmt.Sprintf(fullNameParseErrorTemplateConstant, protocolError.Protocol, unknownProtocolMessageConstant)
}

// RepositoryCoordinates identifies a hosted repository by owner and name.
type RepositoryCoordinates struct {
	Owner string
	Name  string
}

// ParseRepositoryFullName splits an owner/name string. A trailing .git suffix is ignored.
func ParseRepositoryFullName(fullName string) (RepositoryCoordinates, error) {
	trimmedFullName := strings.Trim(strings.TrimSpace(fullName), pathSeparatorConstant)
	segments := strings.Split(strings.TrimSuffix(trimmedFullName, gitSuffixConstant), pathSeparatorConstant)
	if len(segments) != 2 || len(strings.TrimSpace(segments[0])) == 0 || len(strings.TrimSpace(segments[1])) == 0 {
		return RepositoryCoordinates{}, InvalidInputError{Field: fullNameFieldConstant, Message: fmt.Sprintf(fullNameParseErrorTemplateConstant, fullName, invalidFullNameMessageConstant)}
	}
	return RepositoryCoordinates{Owner: strings.TrimSpace(segments[0]), Name: strings.TrimSpace(segments[1])}, nil
}

// FullName renders the owner/name form.
func (coordinates RepositoryCoordinates) FullName() string {
	return coordinates.Owner + pathSeparatorConstant + coordinates.Name
}

// CloneDirectory returns the directory below root that holds the clone.
func (coordinates RepositoryCoordinates) CloneDirectory(root string) string {
	return filepath.Join(root, coordinates.Owner, coordinates.Name)
}

// FormatCloneURL builds the clone URL for the repository on host using the protocol.
func FormatCloneURL(host string, protocol RemoteProtocol, coordinates RepositoryCoordinates) (string, error) {
	trimmedHost := strings.TrimSpace(host)
	if len(trimmedHost) == 0 {
		return "", InvalidInputError{Field: hostFieldConstant, Message: requiredValueMessageConstant}
	}
	if len(coordinates.Owner) == 0 || len(coordinates.Name) == 0 {
		return "", InvalidInputError{Field: fullNameFieldConstant, Message: requiredValueMessageConstant}
	}

	switch protocol {
	case RemoteProtocolSSH:
		return fmt.Sprintf(sshCloneURLTemplateConstant, gitUserPrefixConstant, trimmedHost, sshPathDelimiterConstant, coordinates.Owner, coordinates.Name, gitSuffixConstant), nil
	case RemoteProtocolHTTPS:
		return fmt.Sprintf(httpsCloneURLTemplateConstant, httpsProtocolPrefixConstant, trimmedHost, coordinates.Owner, coordinates.Name, gitSuffixConstant), nil
	default:
		return "", UnsupportedProtocolError{Protocol: protocol}
	}
}
