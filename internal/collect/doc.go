// Package collect drives a contribution-statistics run over the configured
// repository groups used by the get-contributors CLI.
//
// It exposes CommandBuilder for wiring the collect Cobra command, Service for
// cloning repositories into the scratch directory and folding their author
// history into per-group and global scopes, and SummaryRenderer for the final
// totals table.
package collect
