package contributions

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

const (
	sortStrategyTypeNameConstant            = "sort"
	unsupportedSortStrategyTemplateConstant = "unsupported sort strategy %q (expected one of: %s)"
	sortStrategyChoiceSeparatorConstant     = ", "
)

// SortStrategy selects the ordering applied to report rows.
type SortStrategy string

// Supported sort strategies.
const (
	SortByName    SortStrategy = SortStrategy("name")
	SortByCommits SortStrategy = SortStrategy("commits")
)

var sortComparators = map[SortStrategy]func(first ContributorRecord, second ContributorRecord) int{
	SortByName: func(first ContributorRecord, second ContributorRecord) int {
		return strings.Compare(strings.ToLower(first.DisplayName), strings.ToLower(second.DisplayName))
	},
	SortByCommits: func(first ContributorRecord, second ContributorRecord) int {
		return cmp.Compare(second.CommitCount, first.CommitCount)
	},
}

// SortStrategyChoices lists the accepted sort strategy values.
func SortStrategyChoices() []string {
	return []string{string(SortByName), string(SortByCommits)}
}

// ParseSortStrategy validates a textual sort strategy. An empty value selects SortByName.
func ParseSortStrategy(value string) (SortStrategy, error) {
	normalizedValue := SortStrategy(strings.ToLower(strings.TrimSpace(value)))
	if len(normalizedValue) == 0 {
		return SortByName, nil
	}
	if _, supported := sortComparators[normalizedValue]; !supported {
		return "", fmt.Errorf(unsupportedSortStrategyTemplateConstant, value, strings.Join(SortStrategyChoices(), sortStrategyChoiceSeparatorConstant))
	}
	return normalizedValue, nil
}

// Sort orders records in place. Records that compare equal keep their relative order.
func (strategy SortStrategy) Sort(records []ContributorRecord) {
	comparator, supported := sortComparators[strategy]
	if !supported {
		comparator = sortComparators[SortByName]
	}
	slices.SortStableFunc(records, comparator)
}

// String implements pflag.Value.
func (strategy *SortStrategy) String() string {
	if strategy == nil || len(*strategy) == 0 {
		return string(SortByName)
	}
	return string(*strategy)
}

// Set implements pflag.Value.
func (strategy *SortStrategy) Set(value string) error {
	parsedStrategy, parseError := ParseSortStrategy(value)
	if parseError != nil {
		return parseError
	}
	*strategy = parsedStrategy
	return nil
}

// Type implements pflag.Value.
func (strategy *SortStrategy) Type() string {
	return sortStrategyTypeNameConstant
}

// UnmarshalText lets configuration decoding validate sort strategies.
func (strategy *SortStrategy) UnmarshalText(text []byte) error {
	return strategy.Set(string(text))
}
