// Package output writes the installer's status lines.
//
// The wording of each line is fixed; styling is only applied when the
// destination is a colour-capable terminal, so piped output and tests see
// plain text.
package output
