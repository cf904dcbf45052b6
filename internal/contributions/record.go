package contributions

import (
	"sort"
	"unicode/utf8"
)

// ContributorRecord is a resolved contributor within one accumulation scope.
type ContributorRecord struct {
	DisplayName  string
	Email        string
	Handle       string
	CommitCount  int
	Repositories []string
}

const liveEntryMarkerConstant = -1

// contributorEntry is the arena-owned mutable state behind a ContributorRecord.
// mergedInto holds the surviving entry identifier once the entry lost a merge.
type contributorEntry struct {
	displayName  string
	email        string
	handle       string
	commitCount  int
	repositories map[string]struct{}
	mergedInto   int
}

func newContributorEntry(displayName string, email string, handle string, repository string) contributorEntry {
	return contributorEntry{
		displayName:  displayName,
		email:        email,
		handle:       handle,
		commitCount:  1,
		repositories: map[string]struct{}{repository: {}},
		mergedInto:   liveEntryMarkerConstant,
	}
}

func (entry contributorEntry) live() bool {
	return entry.mergedInto == liveEntryMarkerConstant
}

func (entry contributorEntry) record() ContributorRecord {
	repositories := make([]string, 0, len(entry.repositories))
	for repository := range entry.repositories {
		repositories = append(repositories, repository)
	}
	sort.Strings(repositories)

	return ContributorRecord{
		DisplayName:  entry.displayName,
		Email:        entry.email,
		Handle:       entry.handle,
		CommitCount:  entry.commitCount,
		Repositories: repositories,
	}
}

// longerName returns the candidate when it has more characters than the current name.
func longerName(currentName string, candidateName string) string {
	if utf8.RuneCountInString(candidateName) > utf8.RuneCountInString(currentName) {
		return candidateName
	}
	return currentName
}
