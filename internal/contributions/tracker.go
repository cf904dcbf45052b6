package contributions

// AuthorPair is one raw commit author as reported by the history extractor.
type AuthorPair struct {
	Name  string
	Email string
}

// FoldStatistics summarizes the outcome of folding one repository's history.
type FoldStatistics struct {
	Ingested int
	Ignored  int
	Skipped  int
}

// Tracker owns the global scope and one scope per repository group.
type Tracker struct {
	policy     IdentityPolicy
	global     *Scope
	groups     map[string]*Scope
	groupOrder []string
}

// NewTracker constructs a tracker whose scopes share the provided identity policy.
func NewTracker(policy IdentityPolicy) *Tracker {
	return &Tracker{
		policy: policy,
		global: NewScope(policy),
		groups: make(map[string]*Scope),
	}
}

// Global returns the scope aggregating every group.
func (tracker *Tracker) Global() *Scope {
	return tracker.global
}

// Group returns the scope for the named group, creating it on first use.
func (tracker *Tracker) Group(groupName string) *Scope {
	if scope, exists := tracker.groups[groupName]; exists {
		return scope
	}
	scope := NewScope(tracker.policy)
	tracker.groups[groupName] = scope
	tracker.groupOrder = append(tracker.groupOrder, groupName)
	return scope
}

// GroupNames lists groups in the order they were first used.
func (tracker *Tracker) GroupNames() []string {
	return append([]string{}, tracker.groupOrder...)
}

// Fold ingests a repository's author pairs into the group scope and, when countTowardGlobal is set, into the global scope.
func (tracker *Tracker) Fold(groupName string, repository string, pairs []AuthorPair, countTowardGlobal bool) FoldStatistics {
	groupScope := tracker.Group(groupName)
	statistics := FoldStatistics{}

	for _, pair := range pairs {
		if tracker.policy.IsBot(pair.Name) {
			statistics.Ignored++
			continue
		}
		if countTowardGlobal {
			tracker.global.Ingest(repository, pair.Name, pair.Email)
		}
		if !groupScope.Ingest(repository, pair.Name, pair.Email) {
			statistics.Skipped++
			continue
		}
		statistics.Ingested++
	}

	return statistics
}
