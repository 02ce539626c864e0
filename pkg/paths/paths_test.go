package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/xctinstall/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvStateDir, "")

	tests := []struct {
		name     string
		opts     Options
		envSetup map[string]string
		validate func(t *testing.T, p Paths)
	}{
		{
			name: "default group destination",
			opts: Options{Group: "Fluency", WorkDir: "/repo"},
			validate: func(t *testing.T, p Paths) {
				want := filepath.Join(home, "Library", "Developer", "Xcode", "Templates", "File Templates", "Fluency")
				assert.Equal(t, want, p.DestinationDir())
			},
		},
		{
			name: "destination override with tilde",
			opts: Options{Group: "Ignored", Destination: "~/templates/custom", WorkDir: "/repo"},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, filepath.Join(home, "templates", "custom"), p.DestinationDir())
			},
		},
		{
			name: "relative sources resolve against work dir",
			opts: Options{Group: "Fluency", WorkDir: "/repo"},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/repo/scripts/templates/Swift File.xctemplate",
					p.ResolveSource("scripts/templates/Swift File.xctemplate"))
				assert.Equal(t, "/abs/T.xctemplate", p.ResolveSource("/abs/./T.xctemplate"))
				assert.Equal(t, filepath.Join(home, "T.xctemplate"), p.ResolveSource("~/T.xctemplate"))
			},
		},
		{
			name:     "work dir with tilde",
			opts:     Options{Group: "Fluency", WorkDir: "~/repo"},
			envSetup: map[string]string{EnvHome: home},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, filepath.Join(home, "repo", "T.xctemplate"), p.ResolveSource("T.xctemplate"))
				assert.Equal(t, filepath.Join(home, "repo", "~other", "T.xctemplate"),
					p.ResolveSource("~other/T.xctemplate"), "~user is not expanded")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}
			p, err := New(tt.opts)
			require.NoError(t, err)
			tt.validate(t, p)
		})
	}
}

func TestNew_WorkDirDefaultsToCwd(t *testing.T) {
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	p, err := New(Options{Group: "Fluency"})
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(filepath.Dir(p.ResolveSource("T.xctemplate")))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNew_InvalidGroup(t *testing.T) {
	for _, group := range []string{"", "..", "a/b"} {
		t.Run(group, func(t *testing.T) {
			_, err := New(Options{Group: group, WorkDir: "/repo"})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		})
	}
}

func TestStateDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"override", map[string]string{EnvStateDir: "/override"}, "/override"},
		{"override with tilde", map[string]string{EnvStateDir: "~/state"}, filepath.Join(home, "state")},
		{"xdg state home", map[string]string{EnvStateDir: "", EnvXDGStateHome: "/custom/state"}, "/custom/state/xctinstall"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, StateDir())
			assert.Equal(t, filepath.Join(tt.want, LogFileName), LogFilePath())
		})
	}
}
