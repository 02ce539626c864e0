package output

import (
	"bytes"
	stderrors "errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_PlainLines(t *testing.T) {
	tests := []struct {
		name  string
		print func(p *Printer)
		want  string
	}{
		{
			name:  "missing source",
			print: func(p *Printer) { p.MissingSource("scripts/templates/Swift File.xctemplate") },
			want:  "Warning: Template source not found: scripts/templates/Swift File.xctemplate\n",
		},
		{
			name:  "installing with version",
			print: func(p *Printer) { p.Installing("Swift File.xctemplate", "2") },
			want:  "Installing Xcode template: Swift File.xctemplate v2\n",
		},
		{
			name:  "installing without version",
			print: func(p *Printer) { p.Installing("Swift File.xctemplate", "") },
			want:  "Installing Xcode template: Swift File.xctemplate vunknown\n",
		},
		{
			name:  "dry run",
			print: func(p *Printer) { p.WouldInstall("Model.xctemplate", "3") },
			want:  "Would install Xcode template: Model.xctemplate v3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(New(&buf, false))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrinter_Status(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Status("/home/u/T", []StatusRow{
		{Name: "Swift File.xctemplate", SourceVersion: "3", InstalledVersion: "2", State: "update"},
		{Name: "Model.xctemplate", SourceVersion: "", State: "install"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Destination: /home/u/T", lines[0])
	assert.Contains(t, lines[1], "source v3")
	assert.Contains(t, lines[1], "installed v2")
	assert.True(t, strings.HasSuffix(lines[1], "update"))
	assert.Contains(t, lines[2], "source vunknown")
	assert.Contains(t, lines[2], "installed -")
}

func TestPrinter_StatusEmpty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Status("/d", nil)
	assert.Contains(t, buf.String(), "No templates configured.")
}

func TestError(t *testing.T) {
	assert.Equal(t, "Error: boom", Error(stderrors.New("boom"), false))
	assert.Contains(t, Error(stderrors.New("boom"), true), "Error: boom")
}

func TestSupportsColor_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, SupportsColor(f))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, SupportsColor(os.Stdout))
}
