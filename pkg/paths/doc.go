// Package paths provides centralized path handling for xctinstall.
//
// It resolves the user's home directory, the Xcode "File Templates"
// directory templates are installed into, and the XDG state directory used
// for the log file. Relative template sources are resolved against the
// working directory the tool was started from.
package paths
