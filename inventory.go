package random_inventory

import (
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Sink receives the groups, hosts and variables produced by a plugin.
type Sink interface {
	AddGroup(name string) error
	AddHost(name string) error
	AddChild(group, host string) error
	SetVariable(host, key string, value interface{}) error
}

// Inventory is an in-memory Sink. Groups and hosts keep insertion order.
type Inventory struct {
	groups     map[string]*Group
	groupOrder []string
	hosts      map[string]*Host
	hostOrder  []string
}

var _ Sink = &Inventory{}

func NewInventory() *Inventory {
	return &Inventory{
		groups: map[string]*Group{},
		hosts:  map[string]*Host{},
	}
}

func (i *Inventory) AddGroup(name string) error {
	if _, ok := i.groups[name]; ok {
		return errors.Wrapf(ErrGroupAlreadyExists, "group %q", name)
	}
	i.groups[name] = &Group{Hosts: []string{}}
	i.groupOrder = append(i.groupOrder, name)
	return nil
}

func (i *Inventory) AddHost(name string) error {
	if _, ok := i.hosts[name]; ok {
		return errors.Wrapf(ErrHostAlreadyExists, "host %q", name)
	}
	i.hosts[name] = &Host{Vars: HostVars{}}
	i.hostOrder = append(i.hostOrder, name)
	return nil
}

// AddChild puts host into group. Adding a host twice to the same group is a
// no-op.
func (i *Inventory) AddChild(group, host string) error {
	g, ok := i.groups[group]
	if !ok {
		return errors.Wrapf(ErrGroupNotFound, "group %q", group)
	}
	h, ok := i.hosts[host]
	if !ok {
		return errors.Wrapf(ErrHostNotFound, "host %q", host)
	}

	for _, member := range g.Hosts {
		if member == host {
			return nil
		}
	}
	g.Hosts = append(g.Hosts, host)
	h.Groups = append(h.Groups, group)
	return nil
}

func (i *Inventory) SetVariable(host, key string, value interface{}) error {
	h, ok := i.hosts[host]
	if !ok {
		return errors.Wrapf(ErrHostNotFound, "host %q", host)
	}
	h.Vars[key] = value
	return nil
}

// Groups returns group names in the order they were added.
func (i *Inventory) Groups() []string {
	return append([]string{}, i.groupOrder...)
}

// Hosts returns host names in the order they were added.
func (i *Inventory) Hosts() []string {
	return append([]string{}, i.hostOrder...)
}

func (i *Inventory) GroupHosts(group string) ([]string, error) {
	g, ok := i.groups[group]
	if !ok {
		return nil, errors.Wrapf(ErrGroupNotFound, "group %q", group)
	}
	return append([]string{}, g.Hosts...), nil
}

func (i *Inventory) GroupsOf(host string) ([]string, error) {
	h, ok := i.hosts[host]
	if !ok {
		return nil, errors.Wrapf(ErrHostNotFound, "host %q", host)
	}
	return append([]string{}, h.Groups...), nil
}

// HostVars returns a copy of the variables of host, as printed by `--host`.
func (i *Inventory) HostVars(host string) (HostVars, error) {
	h, ok := i.hosts[host]
	if !ok {
		return nil, errors.Wrapf(ErrHostNotFound, "host %q", host)
	}
	vars := HostVars{}
	for k, v := range h.Vars {
		vars[k] = v
	}
	return vars, nil
}

// MarshalJSON renders the inventory in the shape expected from a dynamic
// inventory script called with `--list`.
func (i *Inventory) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{}

	children := []string{}
	for _, name := range i.groupOrder {
		if name == "all" {
			continue
		}
		out[name] = jsonGroup{Hosts: i.groups[name].Hosts}
		children = append(children, name)
	}

	all := jsonGroup{Hosts: []string{}, Children: children}
	if g, ok := i.groups["all"]; ok {
		all.Hosts = g.Hosts
	}
	out["all"] = all

	meta := Meta{Hostvars: map[string]HostVars{}}
	for _, name := range i.hostOrder {
		meta.Hostvars[name] = i.hosts[name].Vars
	}
	out["_meta"] = meta

	return json.Marshal(out)
}

// YAML renders the inventory as a YAML inventory file.
func (i *Inventory) YAML() ([]byte, error) {
	all := &YmlGroup{Children: map[string]*YmlGroup{}}

	for _, name := range i.groupOrder {
		g := &YmlGroup{Hosts: map[string]HostVars{}}
		for _, host := range i.groups[name].Hosts {
			g.Hosts[host] = i.hosts[host].Vars
		}
		if name == "all" {
			all.Hosts = g.Hosts
			continue
		}
		all.Children[name] = g
	}

	b, err := yaml.Marshal(YmlInventory{"all": all})
	if err != nil {
		return nil, errors.Wrap(err, "marshaling yaml inventory")
	}
	return b, nil
}
