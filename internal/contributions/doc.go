// Package contributions resolves commit authors into contributor records and
// renders them as delimited reports.
//
// Scope folds raw (author name, author email) pairs into identity-merged
// records keyed both by normalized name and by email, Tracker maintains the
// global scope alongside one scope per repository group, and WriteReport
// serializes sorted records using the semicolon-delimited report layout.
package contributions
