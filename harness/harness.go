// Package harness is the entry point for tests against account and handler
// implementations. A TestApp owns a handler registry and a runtime instance,
// and exposes operations to register handler types, mint client accounts and
// contexts, install mock handler chains, and dispatch messages.
//
// A TestApp and everything it owns assume single-threaded test execution.
package harness

import (
	"errors"
	"fmt"

	"github.com/accountvm/testkit/framework"
	"github.com/accountvm/testkit/message"
	"github.com/accountvm/testkit/mock"
	"github.com/accountvm/testkit/runtime"
	"github.com/accountvm/testkit/vm"
)

// ErrInitialization is returned when constructing a handler instance fails.
var ErrInitialization = errors.New("handler initialization failed")

// TestApp is a test harness for an account runtime. The zero value is not
// usable; create one with New or NewWithLogger.
type TestApp struct {
	registry *vm.Registry
	runtime  *runtime.Runtime
	mockID   uint64
	logger   framework.Logger
}

// New creates a harness with debug logging disabled.
func New() *TestApp {
	return NewWithLogger(framework.NullLogger())
}

// NewWithLogger creates a harness that writes debug output to logger. The
// built-in default no-op account handler is registered here, so that plain
// client accounts can be created without any further setup.
func NewWithLogger(logger framework.Logger) *TestApp {
	if logger == nil {
		logger = framework.NullLogger()
	}
	registry := vm.NewRegistry(logger)
	app := &TestApp{
		registry: registry,
		runtime:  runtime.New(registry, logger),
		logger:   logger,
	}
	if err := RegisterHandler[defaultAccount](app); err != nil {
		// The default account handler cannot fail to construct; if it does,
		// the harness itself is broken.
		panic(fmt.Sprintf("testkit: registering default account handler: %v", err))
	}
	return app
}

// RegisterHandler constructs a fresh instance of handler type H using the
// default (empty) resource scope and registers it under H's declared name, so
// that accounts backed by this handler can be created. Construction failures
// are wrapped with ErrInitialization; duplicate names propagate
// vm.ErrDuplicateHandler.
func RegisterHandler[H any, PH message.HandlerType[H]](app *TestApp) error {
	h := PH(new(H))
	if err := h.Setup(message.ResourceScope{}); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInitialization, h.HandlerName(), err)
	}
	return app.registry.Register(h.HandlerName(), h)
}

// NewClientAccount creates, as root, a new account bound to the built-in
// default no-op handler and returns its ID. Use it to mint addressable
// identities for test actors that need no behavior of their own.
func (a *TestApp) NewClientAccount() (message.AccountID, error) {
	return a.runtime.CreateAccount(message.RootAccount, defaultAccountName, nil)
}

// NewClientContext creates a new client account and wraps it in a context.
func (a *TestApp) NewClientContext() (*message.Context, error) {
	id, err := a.NewClientAccount()
	if err != nil {
		return nil, err
	}
	return a.ClientContextFor(id), nil
}

// ClientContextFor builds a context in which both the caller and the target
// equal the given account, with an unrestricted resource budget. Production
// contexts usually have distinct caller and target; self-calling is a test
// convenience.
func (a *TestApp) ClientContextFor(id message.AccountID) *message.Context {
	return message.NewContext(id, id, message.GasUnlimited, a)
}

// CreateAccountRaw creates a new account bound to the named handler,
// executing as the context's account. Most tests use the typed CreateAccount
// function instead; the raw form exists for handlers registered under
// computed names.
func (a *TestApp) CreateAccountRaw(ctx *message.Context, handlerName string, initData []byte) (message.AccountID, error) {
	return a.runtime.CreateAccount(ctx.Account(), handlerName, initData)
}

// AddMock registers the given mock chain under a fresh unique name and
// creates an account bound to it, returning the new account's ID. The
// registration is permanent for the harness's lifetime; there is no
// unregister operation.
func (a *TestApp) AddMock(ctx *message.Context, chain *mock.Chain) (message.AccountID, error) {
	name := a.nextMockName()
	if err := a.registry.Register(name, chain); err != nil {
		return 0, err
	}
	return a.CreateAccountRaw(ctx, name, nil)
}

// nextMockName allocates names mock0, mock1, ... strictly increasing and
// never reused within this harness instance's lifetime.
func (a *TestApp) nextMockName() string {
	name := fmt.Sprintf("mock%d", a.mockID)
	a.mockID++
	return name
}

// Invoke makes the harness the message-passing entry point: every invocation
// is forwarded unchanged to the owned runtime instance.
func (a *TestApp) Invoke(msg *message.Message) ([]byte, error) {
	return a.runtime.Invoke(msg)
}

// HandlerNameFor reports which handler name an account is bound to.
func (a *TestApp) HandlerNameFor(id message.AccountID) (string, error) {
	return a.runtime.HandlerNameFor(id)
}
