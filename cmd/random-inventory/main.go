package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	inventory "github.com/inhuman/random-inventory"
)

type options struct {
	list       bool
	host       string
	profile    string
	config     string
	yaml       bool
	doc        bool
	logLevel   string
	consulAddr string
	consulDC   string
	consulPath string
}

func main() {
	if err := newCommand(os.Stdout).Execute(); err != nil {
		inventory.AddLogger().Error(err)
		os.Exit(1)
	}
}

func newCommand(out io.Writer) *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "random-inventory",
		Short: "Dynamic inventory of random hosts looking like a k8s cluster",
		Long: `Generates etcd, master and worker groups of randomly named hosts.
Each host gets a "role" and a "uuid" variable.

Ansible calls dynamic inventory scripts with --list or --host only, so the
profile and configuration file can also be set with RANDOM_INVENTORY_PROFILE
and RANDOM_INVENTORY_CONFIG.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(o, out)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&o.list, "list", false, "Print the whole inventory")
	flags.StringVar(&o.host, "host", "", "Print the variables of a single host")
	flags.StringVar(&o.profile, "profile", envOr("RANDOM_INVENTORY_PROFILE", "strict"), "Plugin profile: strict or env")
	flags.StringVarP(&o.config, "inventory", "i", os.Getenv("RANDOM_INVENTORY_CONFIG"), "Inventory configuration file (.yml or .yaml)")
	flags.BoolVar(&o.yaml, "yaml", false, "Print the inventory as YAML instead of JSON")
	flags.BoolVar(&o.doc, "doc", false, "Print the plugin documentation and exit")
	flags.StringVar(&o.logLevel, "log-level", "info", "Log level")
	flags.StringVar(&o.consulAddr, "consul-addr", "", "Read number of workers from this Consul agent (env profile)")
	flags.StringVar(&o.consulDC, "consul-datacenter", "", "Consul datacenter")
	flags.StringVar(&o.consulPath, "consul-prefix", "random-inventory", "Consul KV prefix")

	return cmd
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func run(o *options, out io.Writer) error {
	if err := inventory.SetLogLevel(o.logLevel); err != nil {
		return err
	}

	profile, err := inventory.ProfileByName(o.profile)
	if err != nil {
		return err
	}

	env := inventory.OSEnvironment()
	if o.consulAddr != "" {
		source, err := inventory.NewConsulSource(o.consulAddr, o.consulDC, o.consulPath)
		if err != nil {
			return err
		}
		env = source.Lookup
	}

	plugin := inventory.New(profile, env)

	if o.doc {
		b, err := plugin.Documentation().YAML()
		if err != nil {
			return err
		}
		_, err = out.Write(b)
		return err
	}

	if !o.list && o.host == "" {
		return errors.New("one of --list or --host is required")
	}

	if profile.Source == inventory.SourceOption && o.config == "" {
		return errors.Errorf("profile %s needs an inventory configuration file (-i)", o.profile)
	}
	if o.config != "" && !plugin.VerifyFile(o.config) {
		return errors.Errorf("%s is not a readable .yml or .yaml file", o.config)
	}

	inv := inventory.NewInventory()
	if err := plugin.Parse(inv, inventory.FileLoader{}, o.config, false); err != nil {
		return err
	}

	if o.host != "" {
		// Every run draws new names, so an unknown host gets no vars rather
		// than an error.
		vars, err := inv.HostVars(o.host)
		if errors.Cause(err) == inventory.ErrHostNotFound {
			vars = inventory.HostVars{}
		} else if err != nil {
			return err
		}
		return writeJSON(out, vars)
	}

	if o.yaml {
		b, err := inv.YAML()
		if err != nil {
			return err
		}
		_, err = out.Write(b)
		return err
	}
	return writeJSON(out, inv)
}

func writeJSON(out io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling inventory")
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}
