package server

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jask/jaskcalc/internal/adapter"
	"github.com/jask/jaskcalc/internal/calc"
)

// DefaultID names the calculator used when a tool call omits calculator_id.
const DefaultID = "default"

var (
	ErrUnknownCalculator  = errors.New("unknown calculator")
	ErrTooManyCalculators = errors.New("too many calculators")
)

// calculator owns one engine. The adapter is not safe for concurrent use,
// so every call goes through mu.
type calculator struct {
	mu    sync.Mutex
	id    string
	input *adapter.InputAdapter
}

func (c *calculator) do(fn func(*adapter.InputAdapter)) adapter.Display {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fn != nil {
		fn(c.input)
	}
	return c.input.Display()
}

// Registry holds the calculators of one server.
type Registry struct {
	mu    sync.Mutex
	keys  *adapter.KeyRegistry
	max   int
	calcs map[string]*calculator
}

// NewRegistry creates a registry holding at most limit calculators, the
// default one included. A limit below one means no limit.
func NewRegistry(keys *adapter.KeyRegistry, limit int) *Registry {
	if keys == nil {
		keys = adapter.NewKeyRegistry()
	}
	r := &Registry{
		keys:  keys,
		max:   limit,
		calcs: make(map[string]*calculator),
	}
	r.calcs[DefaultID] = r.newCalculator(DefaultID)
	return r
}

func (r *Registry) newCalculator(id string) *calculator {
	return &calculator{
		id:    id,
		input: adapter.NewInputAdapter(calc.NewEngine(), r.keys, adapter.Capabilities{}),
	}
}

// Create starts a fresh calculator and returns its id.
func (r *Registry) Create() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max > 0 && len(r.calcs) >= r.max {
		return "", fmt.Errorf("%w: limit is %d", ErrTooManyCalculators, r.max)
	}
	id := uuid.NewString()
	r.calcs[id] = r.newCalculator(id)
	return id, nil
}

func (r *Registry) get(id string) (*calculator, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = DefaultID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.calcs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, id)
	}
	return c, nil
}

// Close drops a calculator. Closing the default calculator resets it.
func (r *Registry) Close(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		id = DefaultID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.calcs[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCalculator, id)
	}
	if id == DefaultID {
		r.calcs[id] = r.newCalculator(id)
		return nil
	}
	delete(r.calcs, id)
	return nil
}

// IDs lists the open calculators in sorted order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.calcs))
	for id := range r.calcs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
