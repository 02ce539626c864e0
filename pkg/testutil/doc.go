// Package testutil provides fixtures for testing xctinstall components.
//
// Key components:
//   - NewTestFS: afero-backed in-memory filesystem
//   - TemplateBuilder: declarative .xctemplate directory setup
//   - FaultyFS: wraps an FS and fails selected operations
//   - Snapshot: captures a directory tree for byte-level comparison
//
// All fixture data is defined inline; tests should not depend on files
// checked into the repository.
package testutil
