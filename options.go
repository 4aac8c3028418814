package random_inventory

import (
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

const (
	OptionPlugin          = "plugin"
	OptionNumberOfWorkers = "number_of_workers"

	// EnvNumberOfWorkers is the environment key read by the env profile.
	EnvNumberOfWorkers = "NUMBER_OF_WORKERS"

	DefaultNumberOfWorkers = 10
)

// Loader turns an inventory configuration file into a set of raw options.
type Loader interface {
	Load(path string) (map[string]interface{}, error)
}

// FileLoader reads YAML configuration files from disk.
type FileLoader struct{}

func (FileLoader) Load(path string) (map[string]interface{}, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "expanding %s", path)
	}

	b, err := os.ReadFile(expanded)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", expanded)
	}

	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", expanded)
	}
	return raw, nil
}

// Options are the settings understood by the plugin. A nil NumberOfWorkers
// means the key was absent.
type Options struct {
	Plugin          string `mapstructure:"plugin"`
	NumberOfWorkers *int   `mapstructure:"number_of_workers"`
}

// DecodeOptions coerces raw option values ("5" and 5.0 both become 5).
// Strings are always read as base 10, so "010" is 10 and "0x10" is an error.
func DecodeOptions(raw map[string]interface{}) (*Options, error) {
	opts := &Options{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decimalStringToInt,
		WeaklyTypedInput: true,
		Result:           opts,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating options decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "decoding options")
	}
	return opts, nil
}

func decimalStringToInt(from, to reflect.Kind, data interface{}) (interface{}, error) {
	if from != reflect.String || to != reflect.Int {
		return data, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(data.(string)))
	if err != nil {
		return nil, errors.Errorf("%q is not a decimal integer", data)
	}
	return n, nil
}

// Environment looks up a single value by key, like os.LookupEnv.
type Environment func(key string) (string, bool)

func OSEnvironment() Environment {
	return os.LookupEnv
}

func MapEnvironment(values map[string]string) Environment {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

// intFromEnvironment returns def when key is unset, empty or not an integer.
func intFromEnvironment(env Environment, key string, def int) int {
	if env == nil {
		return def
	}
	v, ok := env(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		AddLogger().Debugf("ignoring %s=%q: %v", key, v, err)
		return def
	}
	return n
}
