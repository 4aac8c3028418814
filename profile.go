package random_inventory

import (
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type OptionSource int

const (
	// SourceOption reads number_of_workers from the configuration file and
	// fails when it is missing.
	SourceOption OptionSource = iota
	// SourceEnvironment reads number_of_workers from an Environment and
	// falls back to DefaultNumberOfWorkers.
	SourceEnvironment
)

// Profile holds everything that differs between the plugin flavours.
type Profile struct {
	Name        string
	MasterGroup string
	WorkerGroup string
	HostPrefix  string
	Source      OptionSource
}

var (
	StrictProfile = Profile{
		Name:        "cwnr.bnp.random_plugin",
		MasterGroup: "kube-master",
		WorkerGroup: "kube-worker",
		HostPrefix:  "host-",
		Source:      SourceOption,
	}

	EnvProfile = Profile{
		Name:        "cwnr.bnp.random_env_plugin",
		MasterGroup: "kube_master",
		WorkerGroup: "kube_worker",
		HostPrefix:  "host_",
		Source:      SourceEnvironment,
	}

	profiles = map[string]Profile{
		"strict": StrictProfile,
		"env":    EnvProfile,
	}
)

// ProfileByName accepts a short profile name or a plugin name.
func ProfileByName(name string) (Profile, error) {
	if p, ok := profiles[name]; ok {
		return p, nil
	}
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, errors.Errorf("unknown profile %q, expected one of %v", name, ProfileNames())
}

func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type groupSize struct {
	name  string
	count int
}

func (p Profile) groups(workers int) []groupSize {
	return []groupSize{
		{"etcd", 3},
		{p.MasterGroup, 3},
		{p.WorkerGroup, workers},
	}
}

// Descriptor documents a plugin and its options.
type Descriptor struct {
	Name             string               `yaml:"name"`
	PluginType       string               `yaml:"plugin_type"`
	ShortDescription string               `yaml:"short_description"`
	Description      string               `yaml:"description"`
	Options          map[string]OptionDoc `yaml:"options"`
}

type OptionDoc struct {
	Description string      `yaml:"description"`
	Type        string      `yaml:"type,omitempty"`
	Required    bool        `yaml:"required"`
	Default     interface{} `yaml:"default,omitempty"`
	Env         []EnvDoc    `yaml:"env,omitempty"`
}

type EnvDoc struct {
	Name string `yaml:"name"`
}

func (p Profile) Descriptor() Descriptor {
	workers := OptionDoc{
		Description: "Number of worker nodes to generate",
		Type:        "int",
		Required:    true,
	}
	if p.Source == SourceEnvironment {
		workers.Required = false
		workers.Default = DefaultNumberOfWorkers
		workers.Env = []EnvDoc{{Name: EnvNumberOfWorkers}}
	}

	return Descriptor{
		Name:             p.Name,
		PluginType:       "inventory",
		ShortDescription: "Generates random hosts looking like k8s cluster",
		Description:      "Returns a dynamic host inventory that is generated to look like k8s cluster",
		Options: map[string]OptionDoc{
			OptionPlugin: {
				Description: "Name of the plugin, must be " + p.Name,
				Type:        "str",
			},
			OptionNumberOfWorkers: workers,
		},
	}
}

func (d Descriptor) YAML() ([]byte, error) {
	b, err := yaml.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling plugin documentation")
	}
	return b, nil
}
