package adapter

import (
	"github.com/jask/jaskcalc/internal/calc"
)

// KeyHandler receives one key name and reports whether it was consumed.
type KeyHandler func(keyName string) bool

// Capabilities is what a host offers the adapter: a place to plug in the key
// handler, and a sink for rendered output.
type Capabilities struct {
	RegisterInputSource func(KeyHandler)
	RenderOutput        func(Display)
}

// InputAdapter translates key names into engine operations and pushes the
// rendered display to the host after every handled key.
type InputAdapter struct {
	engine   *calc.Engine
	keys     *KeyRegistry
	renderer DisplayRenderer
	output   func(Display)
}

// NewInputAdapter wires engine to the host described by caps. A nil keys
// uses the default bindings. The initial display is rendered immediately.
func NewInputAdapter(engine *calc.Engine, keys *KeyRegistry, caps Capabilities) *InputAdapter {
	if keys == nil {
		keys = NewKeyRegistry()
	}
	a := &InputAdapter{
		engine: engine,
		keys:   keys,
		output: caps.RenderOutput,
	}
	if caps.RegisterInputSource != nil {
		caps.RegisterInputSource(a.HandleKey)
	}
	a.render()
	return a
}

// HandleKey resolves keyName in the calculator scope and applies it.
// Global keys such as quit are left to the host.
func (a *InputAdapter) HandleKey(keyName string) bool {
	b := a.keys.Lookup(keyName, ScopeCalculator)
	if b == nil {
		return false
	}
	return a.Dispatch(b.Action, normalizeKeyName(keyName))
}

// Press feeds keys in order and returns how many were handled.
func (a *InputAdapter) Press(keys ...string) int {
	n := 0
	for _, k := range keys {
		if a.HandleKey(k) {
			n++
		}
	}
	return n
}

// Dispatch runs action against the engine. keyName is only consulted by
// ActionDigit, where it carries the digit itself.
func (a *InputAdapter) Dispatch(action Action, keyName string) bool {
	e := a.engine
	switch action {
	case ActionDigit:
		if len(keyName) != 1 || keyName[0] < '0' || keyName[0] > '9' {
			return false
		}
		e.AppendDigit(rune(keyName[0]))
	case ActionDecimal:
		e.AppendDigit('.')
	case ActionAdd:
		e.ChooseOperator(calc.Add)
	case ActionSubtract:
		e.ChooseOperator(calc.Subtract)
	case ActionMultiply:
		e.ChooseOperator(calc.Multiply)
	case ActionDivide:
		e.ChooseOperator(calc.Divide)
	case ActionModulo:
		e.ChooseOperator(calc.Modulo)
	case ActionCompute:
		e.Compute()
	case ActionDelete:
		e.DeleteLastChar()
	case ActionClear:
		e.ClearAll()
	case ActionNegate:
		e.Negate()
	case ActionPercent:
		e.Percent()
	default:
		return false
	}
	a.render()
	return true
}

// OperatorAction returns the action that chooses op.
func OperatorAction(op calc.Operator) (Action, bool) {
	switch op {
	case calc.Add:
		return ActionAdd, true
	case calc.Subtract:
		return ActionSubtract, true
	case calc.Multiply:
		return ActionMultiply, true
	case calc.Divide:
		return ActionDivide, true
	case calc.Modulo:
		return ActionModulo, true
	}
	return "", false
}

// Display renders the engine's current state.
func (a *InputAdapter) Display() Display {
	return a.renderer.Render(a.engine.Snapshot())
}

// Keys exposes the registry used for lookups.
func (a *InputAdapter) Keys() *KeyRegistry {
	return a.keys
}

func (a *InputAdapter) render() {
	if a.output != nil {
		a.output(a.Display())
	}
}
