package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleRegistry(t *testing.T) {
	require.NoError(t, ParseStyles(defaultStyles))

	for _, name := range []string{"Success", "Warning", "Error", "Info", "Muted", "TemplateName", "Version", "FilePath", "DryRunBanner"} {
		t.Run(name, func(t *testing.T) {
			_, exists := StyleRegistry[name]
			assert.True(t, exists, "Style %s should exist in registry", name)
		})
	}
}

func TestGetStyle(t *testing.T) {
	require.NoError(t, ParseStyles(defaultStyles))

	assert.True(t, GetStyle("Error").GetBold())
	assert.False(t, GetStyle("NonExistentStyle").GetBold())
}

func TestParseStyles(t *testing.T) {
	t.Cleanup(func() { _ = ParseStyles(defaultStyles) })

	require.NoError(t, ParseStyles([]byte(`
palette:
  pink: {light: "#ff00ff", dark: "#ff88ff"}
styles:
  Custom: {fg: pink, attrs: [underline]}
`)))
	assert.True(t, GetStyle("Custom").GetUnderline())
	_, exists := StyleRegistry["Success"]
	assert.False(t, exists, "registry is replaced, not merged")

	assert.Error(t, ParseStyles([]byte("styles: [")))
}

func TestParseStyles_Invalid(t *testing.T) {
	t.Cleanup(func() { _ = ParseStyles(defaultStyles) })
	require.NoError(t, ParseStyles(defaultStyles))

	err := ParseStyles([]byte(`styles: {X: {fg: nope}}`))
	assert.ErrorContains(t, err, `unknown color "nope"`)

	err = ParseStyles([]byte(`styles: {X: {attrs: [blink]}}`))
	assert.ErrorContains(t, err, `unknown attribute "blink"`)

	_, exists := StyleRegistry["Success"]
	assert.True(t, exists, "a failed parse keeps the previous registry")
}

func TestGetStyle_Attributes(t *testing.T) {
	require.NoError(t, ParseStyles(defaultStyles))

	assert.True(t, GetStyle("Warning").GetBold())
	assert.True(t, GetStyle("FilePath").GetItalic())
	assert.False(t, GetStyle("Success").GetBold())
}
