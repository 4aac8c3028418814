package random_inventory

// HostVars are the variables attached to a single host.
type HostVars map[string]interface{}

type Host struct {
	Vars   HostVars
	Groups []string
}

type Group struct {
	Hosts []string
}

// jsonGroup is a group as printed by `--list`.
type jsonGroup struct {
	Hosts    []string `json:"hosts"`
	Children []string `json:"children,omitempty"`
}

type Meta struct {
	Hostvars map[string]HostVars `json:"hostvars"`
}

type YmlGroup struct {
	Hosts    map[string]HostVars  `yaml:"hosts,omitempty"`
	Children map[string]*YmlGroup `yaml:"children,omitempty"`
}

type YmlInventory map[string]*YmlGroup
