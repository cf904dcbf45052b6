package gitrepo

import (
	"strings"

	"github.com/quarkusio/get-contributors/internal/contributions"
)

const (
	authorFieldSeparatorConstant = ";"
	logLineSeparatorConstant     = "\n"
)

// ParseAuthorLog converts `%an;%ae` lines into author pairs. Blank lines are skipped;
// a line without a separator yields a pair with an empty email.
func ParseAuthorLog(log string) []contributions.AuthorPair {
	pairs := make([]contributions.AuthorPair, 0)
	for _, line := range strings.Split(log, logLineSeparatorConstant) {
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		fields := strings.Split(line, authorFieldSeparatorConstant)
		pair := contributions.AuthorPair{Name: strings.TrimSpace(fields[0])}
		if len(fields) > 1 {
			pair.Email = strings.TrimSpace(fields[1])
		}
		pairs = append(pairs, pair)
	}
	return pairs
}
