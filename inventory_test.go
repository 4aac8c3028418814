package random_inventory

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestInventoryErrors(t *testing.T) {
	tests := map[string]struct {
		run      func(inv *Inventory) error
		expected error
	}{
		"duplicate group": {
			run: func(inv *Inventory) error {
				return inv.AddGroup("etcd")
			},
			expected: ErrGroupAlreadyExists,
		},
		"duplicate host": {
			run: func(inv *Inventory) error {
				return inv.AddHost("host-1")
			},
			expected: ErrHostAlreadyExists,
		},
		"child of missing group": {
			run: func(inv *Inventory) error {
				return inv.AddChild("kube-master", "host-1")
			},
			expected: ErrGroupNotFound,
		},
		"missing child": {
			run: func(inv *Inventory) error {
				return inv.AddChild("etcd", "host-2")
			},
			expected: ErrHostNotFound,
		},
		"variable of missing host": {
			run: func(inv *Inventory) error {
				return inv.SetVariable("host-2", "role", "etcd")
			},
			expected: ErrHostNotFound,
		},
		"hosts of missing group": {
			run: func(inv *Inventory) error {
				_, err := inv.GroupHosts("kube-worker")
				return err
			},
			expected: ErrGroupNotFound,
		},
		"vars of missing host": {
			run: func(inv *Inventory) error {
				_, err := inv.HostVars("host-2")
				return err
			},
			expected: ErrHostNotFound,
		},
	}

	for tn, tc := range tests {
		t.Run(tn, func(t *testing.T) {
			inv := NewInventory()
			require.NoError(t, inv.AddGroup("etcd"))
			require.NoError(t, inv.AddHost("host-1"))

			err := tc.run(inv)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.expected), err.Error())
			assert.Equal(t, tc.expected, errors.Cause(err))
		})
	}
}

func TestInventoryAddChildTwice(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.AddGroup("etcd"))
	require.NoError(t, inv.AddHost("host-1"))
	require.NoError(t, inv.AddChild("etcd", "host-1"))
	require.NoError(t, inv.AddChild("etcd", "host-1"))

	hosts, err := inv.GroupHosts("etcd")
	require.NoError(t, err)
	assert.Equal(t, []string{"host-1"}, hosts)
}

func sampleInventory(t *testing.T) *Inventory {
	t.Helper()
	inv := NewInventory()
	require.NoError(t, inv.AddGroup("etcd"))
	require.NoError(t, inv.AddGroup("kube-worker"))
	require.NoError(t, inv.AddHost("host-100001"))
	require.NoError(t, inv.AddChild("etcd", "host-100001"))
	require.NoError(t, inv.SetVariable("host-100001", "role", "etcd"))
	require.NoError(t, inv.SetVariable("host-100001", "uuid", "b5e3a4a6-63a5-4a0d-9d53-0f4a0f0e6c2a"))
	return inv
}

func TestInventoryJSON(t *testing.T) {
	b, err := json.Marshal(sampleInventory(t))
	require.NoError(t, err)

	expected := `{
		"etcd": {"hosts": ["host-100001"]},
		"kube-worker": {"hosts": []},
		"all": {"hosts": [], "children": ["etcd", "kube-worker"]},
		"_meta": {"hostvars": {
			"host-100001": {"role": "etcd", "uuid": "b5e3a4a6-63a5-4a0d-9d53-0f4a0f0e6c2a"}
		}}
	}`
	assert.JSONEq(t, expected, string(b))
}

func TestInventoryYAML(t *testing.T) {
	b, err := sampleInventory(t).YAML()
	require.NoError(t, err)

	parsed := YmlInventory{}
	require.NoError(t, yaml.Unmarshal(b, &parsed))

	all := parsed["all"]
	require.NotNil(t, all)
	require.Contains(t, all.Children, "etcd")
	require.Contains(t, all.Children, "kube-worker")
	assert.Equal(t, "etcd", all.Children["etcd"].Hosts["host-100001"]["role"])
	assert.Empty(t, all.Children["kube-worker"].Hosts)
}

func TestInventoryHostVarsIsCopy(t *testing.T) {
	inv := sampleInventory(t)

	vars, err := inv.HostVars("host-100001")
	require.NoError(t, err)
	vars["role"] = "changed"

	vars, err = inv.HostVars("host-100001")
	require.NoError(t, err)
	assert.Equal(t, "etcd", vars["role"])
}
