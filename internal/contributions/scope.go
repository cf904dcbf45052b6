package contributions

import "strings"

// Scope accumulates contributor records for one group or for the global report.
//
// Records live in an arena; the name and email indexes store arena identifiers,
// so several keys may alias one record and a merge only redirects the loser.
type Scope struct {
	policy     IdentityPolicy
	entries    []contributorEntry
	nameIndex  map[string]int
	emailIndex map[string]int
	pairCount  int
}

// NewScope constructs an empty scope governed by the provided identity policy.
func NewScope(policy IdentityPolicy) *Scope {
	return &Scope{
		policy:     policy,
		nameIndex:  make(map[string]int),
		emailIndex: make(map[string]int),
	}
}

// Ingest folds one commit author into the scope. It returns false when the author name is empty.
func (scope *Scope) Ingest(repository string, authorName string, authorEmail string) bool {
	trimmedName := strings.TrimSpace(authorName)
	if len(trimmedName) == 0 {
		return false
	}

	normalizedName := NormalizeName(trimmedName)
	effectiveEmail := strings.TrimSpace(authorEmail)
	handle := ""
	if scope.policy.IsNoReplyEmail(effectiveEmail) {
		handle = ExtractHandle(effectiveEmail)
		effectiveEmail = ""
	}

	scope.pairCount++

	if entryIdentifier, found := scope.lookupName(normalizedName); found {
		scope.recordCommit(entryIdentifier, repository)
		scope.reconcileEmail(entryIdentifier, normalizedName, effectiveEmail)
		return true
	}

	if len(effectiveEmail) > 0 {
		if entryIdentifier, found := scope.lookupEmail(effectiveEmail); found {
			scope.recordCommit(entryIdentifier, repository)
			entry := &scope.entries[entryIdentifier]
			if entry.displayName != trimmedName {
				entry.displayName = longerName(entry.displayName, trimmedName)
				scope.nameIndex[normalizedName] = entryIdentifier
			}
			return true
		}

		entryIdentifier := scope.appendEntry(newContributorEntry(trimmedName, effectiveEmail, "", repository))
		scope.nameIndex[normalizedName] = entryIdentifier
		scope.emailIndex[effectiveEmail] = entryIdentifier
		return true
	}

	entryIdentifier := scope.appendEntry(newContributorEntry(trimmedName, "", handle, repository))
	scope.nameIndex[normalizedName] = entryIdentifier
	return true
}

// Records returns the live records in creation order.
func (scope *Scope) Records() []ContributorRecord {
	records := make([]ContributorRecord, 0, len(scope.entries))
	for _, entry := range scope.entries {
		if !entry.live() {
			continue
		}
		records = append(records, entry.record())
	}
	return records
}

// LookupName returns the record currently reachable from the normalized form of the provided name.
func (scope *Scope) LookupName(authorName string) (ContributorRecord, bool) {
	entryIdentifier, found := scope.lookupName(NormalizeName(strings.TrimSpace(authorName)))
	if !found {
		return ContributorRecord{}, false
	}
	return scope.entries[entryIdentifier].record(), true
}

// LookupEmail returns the record currently reachable from the provided email.
func (scope *Scope) LookupEmail(email string) (ContributorRecord, bool) {
	entryIdentifier, found := scope.lookupEmail(strings.TrimSpace(email))
	if !found {
		return ContributorRecord{}, false
	}
	return scope.entries[entryIdentifier].record(), true
}

// PairCount reports how many author pairs were folded into the scope.
func (scope *Scope) PairCount() int {
	return scope.pairCount
}

// CommitTotal sums the commit counts of all live records.
func (scope *Scope) CommitTotal() int {
	total := 0
	for _, entry := range scope.entries {
		if entry.live() {
			total += entry.commitCount
		}
	}
	return total
}

// reconcileEmail leaves the record untouched when its stored email already matches, including both empty.
func (scope *Scope) reconcileEmail(entryIdentifier int, normalizedName string, email string) {
	entry := &scope.entries[entryIdentifier]

	switch {
	case entry.email == email:
	case len(entry.email) == 0:
		if otherIdentifier, found := scope.lookupEmail(email); found && otherIdentifier != entryIdentifier {
			scope.merge(entryIdentifier, otherIdentifier, normalizedName)
			return
		}
		entry.email = email
		entry.handle = ""
		scope.emailIndex[email] = entryIdentifier
	case len(email) > 0:
		scope.emailIndex[email] = entryIdentifier
	}
}

// merge folds the name-matched entry into the email-matched survivor.
func (scope *Scope) merge(loserIdentifier int, survivorIdentifier int, normalizedName string) {
	loser := &scope.entries[loserIdentifier]
	survivor := &scope.entries[survivorIdentifier]

	survivor.displayName = longerName(survivor.displayName, loser.displayName)
	survivor.commitCount += loser.commitCount
	survivor.handle = ""
	for repository := range loser.repositories {
		survivor.repositories[repository] = struct{}{}
	}

	loser.mergedInto = survivorIdentifier
	loser.repositories = nil
	scope.nameIndex[normalizedName] = survivorIdentifier
}

func (scope *Scope) recordCommit(entryIdentifier int, repository string) {
	entry := &scope.entries[entryIdentifier]
	entry.commitCount++
	entry.repositories[repository] = struct{}{}
}

func (scope *Scope) appendEntry(entry contributorEntry) int {
	scope.entries = append(scope.entries, entry)
	return len(scope.entries) - 1
}

func (scope *Scope) lookupName(normalizedName string) (int, bool) {
	entryIdentifier, found := scope.nameIndex[normalizedName]
	if !found {
		return 0, false
	}
	return scope.resolve(entryIdentifier), true
}

func (scope *Scope) lookupEmail(email string) (int, bool) {
	if len(email) == 0 {
		return 0, false
	}
	entryIdentifier, found := scope.emailIndex[email]
	if !found {
		return 0, false
	}
	return scope.resolve(entryIdentifier), true
}

func (scope *Scope) resolve(entryIdentifier int) int {
	for !scope.entries[entryIdentifier].live() {
		entryIdentifier = scope.entries[entryIdentifier].mergedInto
	}
	return entryIdentifier
}
