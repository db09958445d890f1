// Package vm implements the handler registry: the mapping from handler names
// to handler instances that the runtime consults to decide which code runs
// for an account.
package vm

import (
	"errors"
	"fmt"
	"sort"

	"github.com/accountvm/testkit/framework"
	"github.com/accountvm/testkit/message"
)

// ErrDuplicateHandler is returned when a name is registered twice. Silent
// replacement is disallowed; two components believing they own the same name
// is a bug worth surfacing.
var ErrDuplicateHandler = errors.New("handler name already registered")

// Registry maps handler names to handler instances. It is the unit of
// resolution for "which code runs for this account."
//
// A Registry is not safe for concurrent use. The test kit assumes
// single-threaded test execution; wrap access in a mutex if that ever changes.
type Registry struct {
	handlers map[string]message.Handler
	logger   framework.Logger
}

// NewRegistry creates an empty registry. A nil logger disables debug output.
func NewRegistry(logger framework.Logger) *Registry {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Registry{
		handlers: make(map[string]message.Handler),
		logger:   logger,
	}
}

// Register binds a name to a handler instance. The registry takes ownership
// of the instance. Registering a name twice fails with ErrDuplicateHandler.
func (r *Registry) Register(name string, handler message.Handler) error {
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateHandler, name)
	}
	r.handlers[name] = handler
	r.logger.Printf("registered handler %q", name)
	return nil
}

// Resolve returns the handler bound to name, or an error wrapping
// message.ErrHandlerNotFound if the name is unregistered.
func (r *Registry) Resolve(name string) (message.Handler, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", message.ErrHandlerNotFound, name)
	}
	return h, nil
}

// Names returns the registered handler names in sorted order, for diagnostics.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
