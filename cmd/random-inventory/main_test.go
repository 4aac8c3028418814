package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := newCommand(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cluster.yml")
	require.NoError(t, os.WriteFile(path, []byte("plugin: cwnr.bnp.random_plugin\nnumber_of_workers: 2\n"), 0644))

	out, err := execute(t, "--list", "-i", path)
	require.NoError(t, err)

	var parsed map[string]struct {
		Hosts    []string                          `json:"hosts"`
		Children []string                          `json:"children"`
		Hostvars map[string]map[string]interface{} `json:"hostvars"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	assert.Len(t, parsed["etcd"].Hosts, 3)
	assert.Len(t, parsed["kube-master"].Hosts, 3)
	assert.Len(t, parsed["kube-worker"].Hosts, 2)
	assert.Equal(t, []string{"etcd", "kube-master", "kube-worker"}, parsed["all"].Children)
	assert.Len(t, parsed["_meta"].Hostvars, 8)
}

func TestListEnvProfileYAML(t *testing.T) {
	t.Setenv("NUMBER_OF_WORKERS", "1")

	out, err := execute(t, "--list", "--profile", "env", "--yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "kube_worker:")
	assert.Contains(t, out, "role: kube_master")
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	missingKey := filepath.Join(dir, "cluster.yml")
	require.NoError(t, os.WriteFile(missingKey, []byte("plugin: cwnr.bnp.random_plugin\n"), 0644))
	jsonFile := filepath.Join(dir, "cluster.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte("{}"), 0644))

	tests := map[string]struct {
		args     []string
		expected string
	}{
		"no action": {
			args:     []string{"-i", missingKey},
			expected: "one of --list or --host is required",
		},
		"no config": {
			args:     []string{"--list", "--profile", "strict"},
			expected: "needs an inventory configuration file",
		},
		"missing option": {
			args:     []string{"--list", "-i", missingKey},
			expected: missingKey + " -> number_of_workers",
		},
		"not yaml": {
			args:     []string{"--list", "-i", jsonFile},
			expected: "is not a readable .yml or .yaml file",
		},
		"unknown profile": {
			args:     []string{"--list", "--profile", "other"},
			expected: "unknown profile",
		},
	}

	for tn, tc := range tests {
		t.Run(tn, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expected)
		})
	}
}

func TestHostUnknown(t *testing.T) {
	t.Setenv("NUMBER_OF_WORKERS", "1")

	out, err := execute(t, "--host", "host_100000", "--profile", "env")
	require.NoError(t, err)
	assert.JSONEq(t, "{}", out)
}

func TestDoc(t *testing.T) {
	out, err := execute(t, "--doc", "--profile", "strict")
	require.NoError(t, err)
	assert.Contains(t, out, "name: cwnr.bnp.random_plugin")
	assert.Contains(t, out, "plugin_type: inventory")
}
