package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listMappingsJSON(t *testing.T, storageRoot string) []any {
	t.Helper()

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewMappingsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"list", storageRoot})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	mappings, ok := data["mappings"].([]any)
	require.True(t, ok)
	return mappings
}

func TestMappingsAddAndList(t *testing.T) {
	storage := t.TempDir()

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewMappingsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"add", storage,
		"--linux-path", "/pipeline/configs/demo/primary",
		"--mac-path", "/pipeline/configs/demo/primary"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "mapping recorded")

	mappings := listMappingsJSON(t, storage)
	require.Len(t, mappings, 1)
	entry, ok := mappings[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/pipeline/configs/demo/primary", entry["linux_path"])
	assert.Equal(t, "/pipeline/configs/demo/primary", entry["mac_path"])
}

func TestMappingsAddDuplicate(t *testing.T) {
	storage := t.TempDir()

	for i := 0; i < 2; i++ {
		cmd := NewMappingsCommand(&RootOptions{Format: "text"})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"add", storage, "--linux-path", "/pipeline/configs/demo/primary"})
		require.NoError(t, cmd.Execute())
	}

	assert.Len(t, listMappingsJSON(t, storage), 1)
}

func TestMappingsAddRequiresAPath(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewMappingsCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"add", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "at least one of")
}

func TestMappingsListEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewMappingsCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"list", t.TempDir()})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "no configurations mapped")
}
