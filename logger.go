package random_inventory

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	once sync.Once
	le   *log.Entry
)

// AddLogger returns the process wide log entry. Logs go to stderr so that
// stdout only carries the inventory.
func AddLogger() *log.Entry {
	once.Do(func() {
		logger := log.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&log.TextFormatter{
			FullTimestamp:    true,
			QuoteEmptyFields: true,
		})
		logger.SetLevel(log.InfoLevel)
		le = log.NewEntry(logger)
	})

	return le
}

func SetLogLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	AddLogger().Logger.SetLevel(lvl)
	return nil
}
