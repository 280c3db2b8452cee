package middleware

import "github.com/collecty/richtext/pkg/ports"

// Middleware allows wrapping a ContentStore to add behavior.
type Middleware func(ports.ContentStore) ports.ContentStore

// Wrap applies mws to store so that the first middleware is the outermost.
// If store can be watched, the result can be too.
func Wrap(store ports.ContentStore, mws ...Middleware) ports.ContentStore {
	out := store
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}

	if w, ok := store.(ports.Watchable); ok {
		if _, ok := out.(ports.Watchable); !ok {
			return &watchableStore{ContentStore: out, Watchable: w}
		}
	}
	return out
}

type watchableStore struct {
	ports.ContentStore
	ports.Watchable
}
