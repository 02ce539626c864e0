// Package installer copies Xcode templates into the user's template
// directory when the installed copy is missing or older than the source.
//
// The decision for one template:
//
//	destination missing                      -> install
//	source has no version                    -> leave the destination alone
//	destination has no version               -> update
//	both versioned                           -> update iff source > destination
//
// An update removes the installed directory and copies the source tree in
// its place; files are never merged. Missing or unreadable metadata counts
// as "no version" and is not reported. A missing source is reported as a
// warning and skipped. Remove and copy failures abort the run.
package installer
