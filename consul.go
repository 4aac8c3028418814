package random_inventory

import (
	"strings"

	"github.com/hashicorp/consul/api"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/pkg/errors"
)

// ConsulSource serves option values stored in Consul KV under
// "<prefix>/<key>". Its Lookup method can be used as an Environment.
type ConsulSource struct {
	kv         *api.KV
	prefix     string
	datacenter string
}

func NewConsulSource(consulAddr, datacenter, prefix string) (*ConsulSource, error) {
	client, err := api.NewClient(&api.Config{
		Address:    consulAddr,
		Scheme:     "http",
		HttpClient: cleanhttp.DefaultPooledClient(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating consul client")
	}

	return &ConsulSource{
		kv:         client.KV(),
		prefix:     strings.Trim(prefix, "/"),
		datacenter: datacenter,
	}, nil
}

func (c *ConsulSource) key(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + "/" + key
}

// Lookup reports a missing key and a failed request the same way, as unset.
func (c *ConsulSource) Lookup(key string) (string, bool) {
	pair, _, err := c.kv.Get(c.key(key), &api.QueryOptions{
		Datacenter: c.datacenter,
	})
	if err != nil {
		AddLogger().Warnf("consul lookup of %s failed: %v", c.key(key), err)
		return "", false
	}
	if pair == nil {
		return "", false
	}
	return string(pair.Value), true
}
