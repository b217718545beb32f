// Package buildcache implements the CLI's content-addressed skip-recompile
// cache (SPEC_FULL §5.4): hash the input AST JSON plus the resolved
// compile.Options, and if an entry for that hash already exists on disk,
// return its cached output instead of recompiling. Modeled loosely on the
// teacher's habit of writing a side artifact next to its compiled output
// (cmd/vartan/compile.go's writeCompiledGrammarAndReport), generalized
// from "always write a report" to "skip work when the inputs are
// unchanged".
package buildcache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/nihei9/pegc/compile"
)

// Key hashes astJSON and opts into the cache key this package indexes
// entries by (SPEC_FULL §5.4/§4.10: xxhash.Sum64, the same hash family the
// emitted parser's own memo cache uses, §4.10).
func Key(astJSON []byte, opts compile.Options) (uint64, error) {
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return 0, err
	}
	h := xxhash.New()
	h.Write(astJSON)
	h.Write([]byte{0})
	h.Write(optsJSON)
	return h.Sum64(), nil
}

// Cache is a directory of <hex key>.go files holding previously compiled
// parser sources.
type Cache struct {
	Dir string
}

// New returns a Cache rooted at dir, creating it if necessary.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{Dir: dir}, nil
}

func (c *Cache) path(key uint64) string {
	return filepath.Join(c.Dir, keyHex(key)+".go")
}

// Lookup returns the cached source for key, if present.
func (c *Cache) Lookup(key uint64) (src string, ok bool, err error) {
	b, err := os.ReadFile(c.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

// Store saves src under key for future Lookup calls.
func (c *Cache) Store(key uint64, src string) error {
	return os.WriteFile(c.path(key), []byte(src), 0o644)
}

func keyHex(key uint64) string {
	const digits = "0123456789abcdef"
	buf := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		buf[i] = digits[key&0xf]
		key >>= 4
	}
	return string(buf)
}
