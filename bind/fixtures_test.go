package bind_test

import (
	"errors"

	"github.com/sghaida/modbind/bind"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

// obj is the resource type used throughout the tests.
type obj struct{ ID string }

// observed returns a logger that records everything at debug and above.
func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// trace records the order in which lifecycle callbacks run.
type trace struct{ events []string }

func (t *trace) add(e string) { t.events = append(t.events, e) }

// rootMod is a root with one of each declaration kind plus an Initializer hook.
type rootMod struct {
	*bind.Root[*obj]

	Knight *obj            `preload:"Town,Knight"`
	Town   map[string]*obj `preloads:"Town"`
	_      bind.Init       `init:"Setup"`
	_      bind.Init       `init:"Ready"`

	tr        *trace
	seenAtSet *obj
	extra     []bind.Request
	failSetup error
}

func newRootMod(tr *trace, opts ...bind.Option) *rootMod {
	m := &rootMod{Root: bind.NewRoot[*obj](opts...), tr: tr}
	if err := m.Bind(m); err != nil {
		panic(err)
	}
	return m
}

func (m *rootMod) Initialize() error {
	m.tr.add("root:Initialize")
	return nil
}

func (m *rootMod) Setup() error {
	m.tr.add("root:Setup")
	m.seenAtSet = m.Knight
	return m.failSetup
}

func (m *rootMod) Ready() { m.tr.add("root:Ready") }

func (m *rootMod) CustomRequests() []bind.Request { return m.extra }

// childMod is a child with a single binding and one initializer.
type childMod struct {
	*bind.Child[*obj]

	Shade *obj      `preload:"Cave,Shade"`
	_     bind.Init `init:"Start"`

	label    string
	tr       *trace
	onStart  func(c *childMod) error
	startErr error
}

func newChildMod(root *bind.Root[*obj], label string, tr *trace) *childMod {
	c := &childMod{Child: bind.NewChild(root), label: label, tr: tr}
	if err := c.Bind(c); err != nil {
		panic(err)
	}
	return c
}

func (c *childMod) Start() error {
	c.tr.add(c.label + ":Start")
	if c.onStart != nil {
		return c.onStart(c)
	}
	return c.startErr
}

var errBoom = errors.New("boom")

func fullTable() (bind.ResourceTable[*obj], *obj, *obj, *obj) {
	knight := &obj{ID: "knight"}
	bench := &obj{ID: "bench"}
	shade := &obj{ID: "shade"}
	t := bind.ResourceTable[*obj]{}
	t.Provide("Town", "Knight", knight).
		Provide("Town", "Bench", bench).
		Provide("Cave", "Shade", shade)
	return t, knight, bench, shade
}
