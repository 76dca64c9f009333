package storage

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
)

// badgerLogger routes Badger's printf-style logging into logr.
// Badger's info chatter goes to V(1) and debug output to V(2).
type badgerLogger struct {
	log logr.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(nil, sprintf(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Info(sprintf(format, args...), "level", "warning")
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.V(1).Info(sprintf(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.V(2).Info(sprintf(format, args...))
}

func sprintf(format string, args ...interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
