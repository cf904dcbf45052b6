// Package gitrepo drives git to clone repositories and read their commit authors.
//
// HistoryManager issues `git clone` and `git log` through an execshell executor,
// ParseAuthorLog turns the captured log into author pairs, and the remote URL
// helpers map repository full names onto clone URLs and scratch directories.
package gitrepo
