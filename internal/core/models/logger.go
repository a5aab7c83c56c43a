package models

import (
	"sync/atomic"

	"github.com/TahliaK/wight-whale/internal/core/observability/log"
)

type logHolder struct{ l log.Log }

var pkgLogger atomic.Value // logHolder

// SetLogger replaces the logger used by object image loading.
func SetLogger(l log.Log) {
	pkgLogger.Store(logHolder{l: l})
}

func logger() log.Log {
	if h, ok := pkgLogger.Load().(logHolder); ok && h.l != nil {
		return h.l
	}
	return log.Provide().With(log.String("component", "models"))
}
