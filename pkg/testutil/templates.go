package testutil

import (
	"fmt"
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/xctinstall/pkg/types"
)

// PlistWithVersion returns a TemplateInfo.plist whose Version is an <integer>
func PlistWithVersion(version int) string {
	return PlistWithValue("integer", fmt.Sprint(version))
}

// PlistWithValue returns a TemplateInfo.plist with Version stored as <kind>
func PlistWithValue(kind, value string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Kind</key>
	<string>Xcode.IDEFoundation.TextSubstitutionFileTemplateKind</string>
	<key>Version</key>
	<%[1]s>%[2]s</%[1]s>
</dict>
</plist>
`, kind, value)
}

// TemplateBuilder creates an .xctemplate directory
type TemplateBuilder struct {
	t     *testing.T
	fs    types.FS
	dir   string
	files map[string]string
}

// NewTemplate starts a template at dir with a default Swift source file
func NewTemplate(t *testing.T, fs types.FS, dir string) *TemplateBuilder {
	t.Helper()
	return &TemplateBuilder{
		t:   t,
		fs:  fs,
		dir: dir,
		files: map[string]string{
			"___FILEBASENAME___.swift": "//\n//  ___FILENAME___\n//\n\nimport Foundation\n",
		},
	}
}

// WithVersion adds a TemplateInfo.plist with an integer Version
func (b *TemplateBuilder) WithVersion(version int) *TemplateBuilder {
	return b.WithFile("TemplateInfo.plist", PlistWithVersion(version))
}

// WithMetadata adds a TemplateInfo.plist with arbitrary content
func (b *TemplateBuilder) WithMetadata(content string) *TemplateBuilder {
	return b.WithFile("TemplateInfo.plist", content)
}

// WithFile adds or replaces a file relative to the template root
func (b *TemplateBuilder) WithFile(rel, content string) *TemplateBuilder {
	b.files[rel] = content
	return b
}

// Build writes the template and returns its directory
func (b *TemplateBuilder) Build() string {
	b.t.Helper()
	if err := b.fs.MkdirAll(b.dir, 0755); err != nil {
		b.t.Fatalf("failed to create template dir %s: %v", b.dir, err)
	}
	for rel, content := range b.files {
		path := filepath.Join(b.dir, rel)
		if err := b.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			b.t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := b.fs.WriteFile(path, []byte(content), 0644); err != nil {
			b.t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	return b.dir
}

// Snapshot returns every file under root keyed by slash-separated relative path.
// Directories are recorded with a trailing slash and empty content.
func Snapshot(t *testing.T, fs types.FS, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	walk(t, fs, root, "", out)
	return out
}

func walk(t *testing.T, fs types.FS, root, rel string, out map[string]string) {
	t.Helper()
	entries, err := fs.ReadDir(filepath.Join(root, rel))
	if err != nil {
		t.Fatalf("failed to read %s: %v", filepath.Join(root, rel), err)
	}
	for _, e := range entries {
		childRel := filepath.Join(rel, e.Name())
		if e.IsDir() {
			out[filepath.ToSlash(childRel)+"/"] = ""
			walk(t, fs, root, childRel, out)
			continue
		}
		data, err := fs.ReadFile(filepath.Join(root, childRel))
		if err != nil {
			t.Fatalf("failed to read %s: %v", childRel, err)
		}
		out[filepath.ToSlash(childRel)] = string(data)
	}
}

// SortedKeys returns the keys of a snapshot in order
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
