package random_inventory

import (
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	hostSuffixMin = 100000
	hostSuffixMax = 999999
)

// Plugin generates a random inventory shaped like a kubernetes cluster:
// three etcd hosts, three masters and a configurable number of workers.
type Plugin struct {
	Profile Profile

	// Env is only consulted by profiles reading from the environment.
	Env Environment

	// Intn, NewUUID and FileCheck default to math/rand, uuid.NewString and
	// a readable regular file check.
	Intn      func(n int) int
	NewUUID   func() string
	FileCheck func(path string) bool

	// NumberOfWorkers holds the value resolved by the last Parse.
	NumberOfWorkers int
}

func New(profile Profile, env Environment) *Plugin {
	return &Plugin{
		Profile:         profile,
		Env:             env,
		Intn:            rand.Intn,
		NewUUID:         uuid.NewString,
		FileCheck:       readableFile,
		NumberOfWorkers: DefaultNumberOfWorkers,
	}
}

func (p *Plugin) Name() string {
	return p.Profile.Name
}

func (p *Plugin) Documentation() Descriptor {
	return p.Profile.Descriptor()
}

// VerifyFile reports whether path is a readable YAML file this plugin
// could be run against.
func (p *Plugin) VerifyFile(path string) bool {
	check := p.FileCheck
	if check == nil {
		check = readableFile
	}
	if !check(path) {
		return false
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func readableFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	return err == nil && info.Mode().IsRegular()
}

// Parse fills inv with a freshly generated inventory. The cache flag is
// accepted for compatibility and ignored.
func (p *Plugin) Parse(inv Sink, loader Loader, path string, cache bool) error {
	log := AddLogger().WithField("plugin", p.Name())
	log.Debugf("parsing %q (cache=%t)", path, cache)

	workers, err := p.numberOfWorkers(loader, path)
	if err != nil {
		return err
	}
	p.NumberOfWorkers = workers

	for _, g := range p.Profile.groups(workers) {
		if err := inv.AddGroup(g.name); err != nil {
			return errors.Wrapf(err, "generating inventory from %s", path)
		}

		for n := 0; n < g.count; n++ {
			host := p.hostName()
			if err := p.addHost(inv, g.name, host); err != nil {
				return errors.Wrapf(err, "generating inventory from %s", path)
			}
		}
		log.Debugf("generated group %s with %d hosts", g.name, g.count)
	}

	return nil
}

func (p *Plugin) addHost(inv Sink, group, host string) error {
	if err := inv.AddHost(host); err != nil {
		return err
	}
	if err := inv.AddChild(group, host); err != nil {
		return err
	}
	if err := inv.SetVariable(host, "role", group); err != nil {
		return err
	}
	return inv.SetVariable(host, "uuid", p.newUUID())
}

func (p *Plugin) numberOfWorkers(loader Loader, path string) (int, error) {
	if p.Profile.Source == SourceEnvironment {
		return intFromEnvironment(p.Env, EnvNumberOfWorkers, DefaultNumberOfWorkers), nil
	}

	if loader == nil {
		return 0, errors.New("no configuration loader")
	}
	raw, err := loader.Load(path)
	if err != nil {
		return 0, errors.Wrapf(err, "loading configuration %s", path)
	}

	opts, err := DecodeOptions(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "configuration %s", path)
	}
	if opts.Plugin != "" && opts.Plugin != p.Profile.Name {
		return 0, errors.Errorf("%s is configured for plugin %q, not %q", path, opts.Plugin, p.Profile.Name)
	}
	if opts.NumberOfWorkers == nil {
		return 0, errors.WithStack(&ConfigError{Path: path, Key: OptionNumberOfWorkers})
	}
	return *opts.NumberOfWorkers, nil
}

func (p *Plugin) hostName() string {
	intn := p.Intn
	if intn == nil {
		intn = rand.Intn
	}
	suffix := hostSuffixMin + intn(hostSuffixMax-hostSuffixMin+1)
	return p.Profile.HostPrefix + strconv.Itoa(suffix)
}

func (p *Plugin) newUUID() string {
	if p.NewUUID == nil {
		return uuid.NewString()
	}
	return p.NewUUID()
}
