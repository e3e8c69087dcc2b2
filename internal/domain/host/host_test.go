package host

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHome struct{}

func (failingHome) HomeDir() (string, error) {
	return "", errors.New("$HOME is not defined")
}

func TestAppFacts(t *testing.T) {
	tests := []struct {
		app         App
		containerID string
		bundle      string
		display     string
		wire        string
	}{
		{Excel, "com.microsoft.Excel", "Microsoft Excel.app", "Excel", "excel"},
		{Word, "com.microsoft.Word", "Microsoft Word.app", "Word", "word"},
		{PowerPoint, "com.microsoft.Powerpoint", "Microsoft PowerPoint.app", "PowerPoint", "powerpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.display, func(t *testing.T) {
			assert.Equal(t, tt.containerID, tt.app.ContainerID())
			assert.Equal(t, tt.bundle, tt.app.BundleName())
			assert.Equal(t, tt.display, tt.app.DisplayName())
			assert.Equal(t, tt.wire, tt.app.String())
		})
	}
}

func TestAllOrder(t *testing.T) {
	assert.Equal(t, []App{Excel, Word, PowerPoint}, All())
}

func TestParse(t *testing.T) {
	for _, name := range []string{"excel", "Excel", " EXCEL "} {
		app, err := Parse(name)
		require.NoError(t, err)
		assert.Equal(t, Excel, app)
	}

	app, err := Parse("PowerPoint")
	require.NoError(t, err)
	assert.Equal(t, PowerPoint, app)

	_, err = Parse("outlook")
	assert.Error(t, err)
}

func TestAppJSON(t *testing.T) {
	data, err := json.Marshal(map[string]App{"app": Word})
	require.NoError(t, err)
	assert.JSONEq(t, `{"app":"word"}`, string(data))

	var decoded struct {
		App App `json:"app"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"app":"powerpoint"}`), &decoded))
	assert.Equal(t, PowerPoint, decoded.App)

	assert.Error(t, json.Unmarshal([]byte(`{"app":"visio"}`), &decoded))
}

func TestRegistryPaths(t *testing.T) {
	reg := NewRegistry(StaticHome("/Users/ada"), "")

	assert.Equal(t, "/Applications/Microsoft Excel.app", reg.BundlePath(Excel))

	dir, err := reg.SideloadDir(PowerPoint)
	require.NoError(t, err)
	assert.Equal(t, "/Users/ada/Library/Containers/com.microsoft.Powerpoint/Data/Documents/wef", dir)

	manifest, err := reg.ManifestPath(Word)
	require.NoError(t, err)
	assert.Equal(t, "/Users/ada/Library/Containers/com.microsoft.Word/Data/Documents/wef/optivise.xml", manifest)
}

func TestRegistryCustomAppsRoot(t *testing.T) {
	reg := NewRegistry(StaticHome("/Users/ada"), "/opt/apps")
	assert.Equal(t, "/opt/apps/Microsoft Word.app", reg.BundlePath(Word))
}

func TestRegistryHomeUnresolved(t *testing.T) {
	resolvers := map[string]HomeResolver{
		"resolver error": failingHome{},
		"empty static":   StaticHome(""),
		"relative home":  StaticHome("relative/home"),
	}

	for name, resolver := range resolvers {
		t.Run(name, func(t *testing.T) {
			reg := NewRegistry(resolver, "")

			_, err := reg.SideloadDir(Excel)
			assert.ErrorIs(t, err, ErrHomeUnresolved)

			_, err = reg.ManifestPath(Excel)
			assert.ErrorIs(t, err, ErrHomeUnresolved)
		})
	}
}

func TestPolicy(t *testing.T) {
	def := DefaultPolicy()
	assert.True(t, def.Supported(Excel))
	assert.False(t, def.Supported(Word))
	assert.False(t, def.Supported(PowerPoint))

	p, err := ParsePolicy([]string{"word", "", "PowerPoint"})
	require.NoError(t, err)
	assert.False(t, p.Supported(Excel))
	assert.True(t, p.Supported(Word))
	assert.True(t, p.Supported(PowerPoint))

	_, err = ParsePolicy([]string{"excel", "onenote"})
	assert.Error(t, err)

	var zero Policy
	assert.False(t, zero.Supported(Excel))
}
