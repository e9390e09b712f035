package storage

// KV is the minimal get/set surface over the flat key-value table.
// Values are JSON documents; Set fully overwrites whatever was at key.
type KV interface {
	// Get returns the value at key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

type Provider interface {
	KV

	// Lifecycle
	Init() error
	Load() error
	Close() error

	Delete(key string) error
	// Keys returns every key starting with prefix, sorted ascending.
	Keys(prefix string) ([]string, error)

	// Utils
	GetConfigPath() string
}

// Atomic is implemented by providers that can run a read-modify-write
// sequence under an exclusive lock. The KV handed to fn must only be used
// inside fn.
type Atomic interface {
	Atomically(fn func(KV) error) error
}

// Update runs fn atomically when p supports it, and directly against p otherwise.
func Update(p Provider, fn func(KV) error) error {
	if a, ok := p.(Atomic); ok {
		return a.Atomically(fn)
	}
	return fn(p)
}
