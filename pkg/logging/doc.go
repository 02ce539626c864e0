// Package logging configures zerolog for xctinstall.
//
// Verbosity maps -v counts to levels: none is WARN, -v INFO, -vv DEBUG and
// -vvv TRACE. Logs are diagnostics only; the installer's status lines are
// written by pkg/output.
package logging
