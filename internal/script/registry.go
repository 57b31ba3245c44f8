package script

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/luiz-simples/keyop.git/internal/domain"
	"github.com/luiz-simples/keyop.git/internal/logger"
)

var log = logger.Component("script")

// Registry resolves logical script names to Lua source. Loaded sources are
// cached for the lifetime of the registry; hits never take the gate.
type Registry struct {
	source fs.FS
	cache  *xsync.MapOf[Name, string]
	gate   sync.Mutex
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(Embedded())
})

func NewRegistry(source fs.FS) *Registry {
	return &Registry{
		source: source,
		cache:  xsync.NewMapOf[Name, string](),
	}
}

// Default is the process-wide registry over the embedded scripts.
func Default() *Registry {
	return defaultRegistry()
}

func (registry *Registry) Load(ctx context.Context, name Name) (string, error) {
	if source, cached := registry.cache.Load(name); cached {
		return source, nil
	}

	registry.gate.Lock()
	defer registry.gate.Unlock()

	if source, cached := registry.cache.Load(name); cached {
		return source, nil
	}

	if err := ctx.Err(); hasError(err) {
		return "", fmt.Errorf("%w: %w", domain.ErrCanceled, err)
	}

	source, err := registry.read(name)

	if hasError(err) {
		return "", err
	}

	registry.cache.Store(name, source)
	log.Debug("lua script loaded", "script", string(name), "bytes", len(source))

	return source, nil
}

// Preload reads every known script so that later calls never touch the file
// system.
func (registry *Registry) Preload(ctx context.Context) error {
	for _, name := range Names() {
		if _, err := registry.Load(ctx, name); hasError(err) {
			return err
		}
	}

	return nil
}

func (registry *Registry) read(name Name) (string, error) {
	path, known := Path(name)

	if !known {
		return "", fmt.Errorf("%w: %s", domain.ErrScriptNotFound, name)
	}

	content, err := fs.ReadFile(registry.source, path)

	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", domain.ErrScriptNotFound, path)
	}

	if hasError(err) {
		return "", fmt.Errorf("read lua script %s: %w", path, err)
	}

	if isBlank(string(content)) {
		return "", fmt.Errorf("%w: %s", domain.ErrScriptEmpty, path)
	}

	return string(content), nil
}

func hasError(err error) bool {
	return err != nil
}

func isBlank(content string) bool {
	return len(strings.TrimSpace(content)) == 0
}
