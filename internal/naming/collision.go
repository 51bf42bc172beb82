package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/backmassage/mediaconv/internal/media"
)

// ErrOutputExists is returned by [Claims.Reserve] when the output is taken
// and auto-rename is off.
var ErrOutputExists = errors.New("already exists")

// Claims hands out output paths for one run. A path is taken when it exists
// on disk or another input has already reserved it, so concurrent workers
// never pick the same name. All methods are goroutine-safe.
type Claims struct {
	mu     sync.Mutex
	owners map[string]string // output path → input path that reserved it
	next   map[string]int    // requested path → next rename suffix to probe
}

// NewClaims creates an empty claim set.
func NewClaims() *Claims {
	return &Claims{
		owners: make(map[string]string),
		next:   make(map[string]int),
	}
}

// Reserve returns the output path input should write to. When requested is
// free it is returned as-is. When it is taken and autoRename is false,
// ErrOutputExists is returned. Otherwise "<stem>_N<ext>" names are probed
// from N=1 and the first free one is reserved.
func (c *Claims) Reserve(input, requested string, autoRename bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.taken(input, requested) {
		c.owners[requested] = input
		return requested, nil
	}
	if !autoRename {
		return "", errors.Wrapf(ErrOutputExists, "%s", requested)
	}

	n := c.next[requested]
	if n == 0 {
		n = 1
	}
	for {
		candidate := RenameCandidate(requested, n)
		n++
		if !c.taken(input, candidate) {
			c.next[requested] = n
			c.owners[candidate] = input
			return candidate, nil
		}
	}
}

// owner returns the input that reserved path, if any.
func (c *Claims) owner(path string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	owner, ok := c.owners[path]
	return owner, ok
}

func (c *Claims) taken(input, path string) bool {
	if owner, ok := c.owners[path]; ok && owner != input {
		return true
	}
	_, err := os.Lstat(path)
	return err == nil
}

// RenameCandidate returns the n-th auto-rename variant of path:
// "/out/clip.mp4" becomes "/out/clip_2.mp4" for n=2.
func RenameCandidate(path string, n int) string {
	dir, base := filepath.Split(path)
	stem, ext := media.SplitExt(base)
	return filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
}
