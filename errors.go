package random_inventory

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrHostNotFound       = errors.New("host does not exist")
	ErrHostAlreadyExists  = errors.New("host already exists")
	ErrGroupNotFound      = errors.New("group does not exist")
	ErrGroupAlreadyExists = errors.New("group already exists")
)

// ConfigError is returned when a required option is missing from the
// configuration file.
type ConfigError struct {
	Path string
	Key  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required option on the configuration file: %s -> %s", e.Path, e.Key)
}

// IsConfigError reports whether err, or any error it wraps, is a *ConfigError.
func IsConfigError(err error) bool {
	var cerr *ConfigError
	return errors.As(err, &cerr)
}
