package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient. Tests back it with miniredis rather
// than a generated mock since repositories rely on WATCH/MULTI semantics.
type Client interface {
	redis.UniversalClient
}

// Nil is returned by reads that find no key
const Nil = redis.Nil

// TxFailedErr is returned when a WATCHed key changed before EXEC
const TxFailedErr = redis.TxFailedErr
