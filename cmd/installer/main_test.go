package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bcssewl/optivise-installer/internal/app"
)

type mockOpener struct {
	mock.Mock
}

func (m *mockOpener) Open(ctx context.Context, path string) error {
	return m.Called(path).Error(0)
}

type cliEnv struct {
	home string
	apps string
}

func setup(t *testing.T) cliEnv {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<OfficeApp xmlns="http://schemas.microsoft.com/office/appforoffice/1.1"/>`))
	}))
	t.Cleanup(upstream.Close)

	e := cliEnv{home: t.TempDir(), apps: t.TempDir()}
	t.Setenv("MANIFEST_URL", upstream.URL)
	t.Setenv("HOME_DIR_OVERRIDE", e.home)
	t.Setenv("APPLICATIONS_ROOT", e.apps)
	t.Setenv("SUPPORTED_APPS", "excel")
	return e
}

func execute(t *testing.T, args []string, opts ...app.Option) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr, opts...)
	return code, stdout.String(), stderr.String()
}

func TestUsage(t *testing.T) {
	setup(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"reinstall"}},
		{"missing app", []string{"install"}},
		{"bad flag", []string{"-nope", "status"}},
		{"bad format", []string{"-o", "xml", "status"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := execute(t, tt.args)
			assert.Equal(t, exitUsage, code)
			assert.Contains(t, stderr, "usage: installer")
		})
	}
}

func TestStatusJSON(t *testing.T) {
	e := setup(t)
	require.NoError(t, os.MkdirAll(filepath.Join(e.apps, "Microsoft Excel.app"), 0o755))

	code, stdout, _ := execute(t, []string{"-o", "json", "status"})
	require.Equal(t, exitOK, code)

	var statuses []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &statuses))
	require.Len(t, statuses, 3)
	assert.Equal(t, "Excel", statuses[0]["app"])
	assert.Equal(t, true, statuses[0]["office_installed"])
}

func TestStatusYAML(t *testing.T) {
	setup(t)

	code, stdout, _ := execute(t, []string{"-o", "yaml", "status"})
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "app: Excel")
	assert.Contains(t, stdout, "manifest_installed: false")
}

func TestStatusTable(t *testing.T) {
	setup(t)

	code, stdout, _ := execute(t, []string{"status"})
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "APP")
	assert.Contains(t, stdout, "PowerPoint")
}

func TestInstallUninstall(t *testing.T) {
	e := setup(t)
	manifest := filepath.Join(e.home, "Library/Containers/com.microsoft.Excel/Data/Documents/wef/optivise.xml")

	code, stdout, stderr := execute(t, []string{"install", "excel"})
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "Optivise add-in installed for Excel. Restart Excel to activate.\n", stdout)
	assert.FileExists(t, manifest)

	code, stdout, _ = execute(t, []string{"uninstall-all"})
	require.Equal(t, exitOK, code)
	assert.Equal(t, "Optivise add-in removed from Excel. Restart Excel to complete.\n", stdout)
	assert.NoFileExists(t, manifest)

	code, stdout, _ = execute(t, []string{"uninstall", "excel"})
	require.Equal(t, exitOK, code)
	assert.Equal(t, "Add-in is not installed\n", stdout)
}

func TestInstallRejected(t *testing.T) {
	setup(t)

	code, _, stderr := execute(t, []string{"install", "word"})
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "Optivise does not support Word yet")

	code, _, stderr = execute(t, []string{"install", "outlook"})
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "Unknown application: outlook")
}

func TestOpen(t *testing.T) {
	e := setup(t)
	bundle := filepath.Join(e.apps, "Microsoft Word.app")

	code, _, stderr := execute(t, []string{"open", "word"})
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "Word is not installed")

	require.NoError(t, os.MkdirAll(bundle, 0o755))
	opener := &mockOpener{}
	opener.On("Open", bundle).Return(nil).Once()

	code, stdout, _ := execute(t, []string{"open", "word"}, app.WithOpener(opener))
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Opened Word\n", stdout)
	opener.AssertExpectations(t)
}

func TestLaunchable(t *testing.T) {
	e := setup(t)
	require.NoError(t, os.MkdirAll(filepath.Join(e.apps, "Microsoft Excel.app"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(e.apps, "Microsoft Word.app"), 0o755))

	code, stdout, _ := execute(t, []string{"-o", "json", "launchable"})
	require.Equal(t, exitOK, code)
	assert.JSONEq(t, `["excel"]`, stdout)
}
