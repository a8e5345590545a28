package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos"
	"github.com/sustainabos/sustainabos-go/internal/testwb"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	workbook := testwb.Save(t, dir, "tracker.xlsx", testwb.Fleet())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"--workbook", workbook,
	}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVesselCommandJSON(t *testing.T) {
	out, err := run(t, "vessel", "BOS", "DUBAI", "--format", "json")
	require.NoError(t, err)

	var view models.View
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 2, view.Len())
	assert.Equal(t, "BOS DUBAI", view.Rows[0][1])
}

func TestVesselCommandNotFound(t *testing.T) {
	_, err := run(t, "vessel", "Ghost")
	assert.ErrorIs(t, err, sustainabos.ErrNotFound)
}

func TestDeviceCommandTable(t *testing.T) {
	out, err := run(t, "device", "Hull Coating")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "| Vessel Name | Devices |"))
	assert.True(t, strings.HasPrefix(lines[2], "| BOS DUBAI | Hull Coating | In Process |"))
}

func TestListsCommand(t *testing.T) {
	out, err := run(t, "lists", "devices", "-f", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `["LED Lighting","Hull Coating"]`, out)

	_, err = run(t, "lists", "crew")
	assert.Error(t, err)
}

func TestTopCommand(t *testing.T) {
	out, err := run(t, "top", "-n", "1", "-f", "toon")
	require.NoError(t, err)
	assert.Contains(t, out, "BOS DUBAI")
	assert.NotContains(t, out, "Lewek Hydra")
}

func TestExportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.arrow")
	_, err := run(t, "export", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	reader, err := ipc.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer reader.Release()
	require.True(t, reader.Next())
	assert.Equal(t, int64(4), reader.Record().NumRows())
}

func TestInspectCommand(t *testing.T) {
	out, err := run(t, "inspect", "-f", "json")
	require.NoError(t, err)

	var infos []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, "Tracker", infos[0]["name"])
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "lists", "-f", "yaml")
	assert.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "sustainabos.yaml")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "--workbook", "fleet.xlsx", "init"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "workbook: fleet.xlsx")
	assert.Contains(t, string(data), "first_row: 23")

	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", path, "init"})
	assert.Error(t, cmd.Execute())

	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "--workbook", "other.xlsx", "init", "--force"})
	require.NoError(t, cmd.Execute())
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "workbook: other.xlsx")
}
