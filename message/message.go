package message

// AccountID is an opaque unique identifier for an account. IDs are allocated
// by the runtime and are never reused within a runtime instance's lifetime.
type AccountID uint64

// RootAccount is the reserved identity that account-creation calls execute as
// when no other caller applies. The runtime allocates ordinary account IDs
// above it.
const RootAccount AccountID = 1

// GasUnlimited is the resource budget meaning "no limit". The test kit always
// builds contexts with this budget; metering belongs to a real runtime, not
// this layer.
const GasUnlimited uint64 = 0

// OnCreate is the message name dispatched to an account immediately after it
// is bound to its handler. Handlers without initialization logic decline it
// with ErrNotHandled, which account creation tolerates.
const OnCreate = "$on_create"

// Message is one unit of dispatch: a header naming the target and caller
// accounts, a message name that selects behavior within the target's handler,
// and an opaque payload.
type Message struct {
	// Target is the account the message is addressed to.
	Target AccountID

	// Caller is the account the message is sent as.
	Caller AccountID

	// Name selects which of the target handler's operations is being invoked.
	Name string

	// Data is the opaque payload. Its encoding is an agreement between the
	// sender and the handler; the dispatch layer never inspects it.
	Data []byte
}

// Invoker is the callback surface representing "the host": anything that can
// accept a message and route it to the right handler. The harness and the
// runtime both implement it, so handlers can make nested calls through the
// context they execute under.
type Invoker interface {
	Invoke(msg *Message) ([]byte, error)
}

// Handler processes messages addressed to an account. Implementations must
// return ErrNotHandled (possibly wrapped) when they decline a message, so
// that composition layers can distinguish "not mine" from a real failure.
type Handler interface {
	Handle(ctx *Context, msg *Message) ([]byte, error)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx *Context, msg *Message) ([]byte, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx *Context, msg *Message) ([]byte, error) {
	return f(ctx, msg)
}

// ResourceScope is the configuration a handler instance is constructed from.
// The test kit always supplies the zero value; real runtimes use it to carve
// out state namespaces per account.
type ResourceScope struct {
	// StatePrefix namespaces any state the handler owns. Empty in tests.
	StatePrefix []byte
}

// HandlerType is the constraint for handler implementations that the harness
// can construct on its own: a pointer type that declares its registry name
// and can be initialized from a resource scope. The name must be constant for
// the type (callable on a zero instance).
type HandlerType[H any] interface {
	*H
	Handler

	// HandlerName returns the unique registry name for this handler type.
	HandlerName() string

	// Setup initializes a freshly allocated instance from the given scope.
	Setup(scope ResourceScope) error
}
