package circuit

import (
	"sync"

	"go.uber.org/zap"
)

var (
	log     *zap.Logger
	logOnce sync.Once
)

// Logger returns the circuit package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	logOnce.Do(func() {
		if log == nil {
			log = zap.NewNop()
		}
	})
	return log
}

// SetLogger configures the circuit package's logger.
// This must be called before any decoding.
func SetLogger(l *zap.Logger) {
	log = l
}

func logger() *zap.Logger {
	return Logger()
}
