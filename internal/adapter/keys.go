package adapter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/jaskcalc/internal/config"
)

var (
	ErrUnknownScope  = errors.New("unknown scope")
	ErrUnknownAction = errors.New("unknown action in scope")
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	ScopeGlobal         = "global"
	ScopeCalculator     = "calculator"
	ScopeCommandPalette = "command_palette"
)

const (
	ActionQuit           Action = "quit"
	ActionCommandPalette Action = "command_palette"
	ActionToggleHelp     Action = "toggle_help"

	ActionDigit    Action = "digit"
	ActionDecimal  Action = "decimal"
	ActionAdd      Action = "add"
	ActionSubtract Action = "subtract"
	ActionMultiply Action = "multiply"
	ActionDivide   Action = "divide"
	ActionModulo   Action = "modulo"
	ActionCompute  Action = "compute"
	ActionDelete   Action = "delete"
	ActionClear    Action = "clear"
	ActionNegate   Action = "negate"
	ActionPercent  Action = "percent"

	ActionNavigate Action = "navigate"
	ActionSelect   Action = "select"
	ActionClose    Action = "close"
)

var digitKeys = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	reg(ScopeGlobal, ActionQuit, []string{"q", "ctrl+c"}, "quit")
	reg(ScopeGlobal, ActionCommandPalette, []string{"ctrl+k"}, "commands")
	reg(ScopeGlobal, ActionToggleHelp, []string{"?"}, "help")

	reg(ScopeCalculator, ActionDigit, append([]string{"0-9"}, digitKeys...), "digit")
	reg(ScopeCalculator, ActionDecimal, []string{"."}, "decimal")
	reg(ScopeCalculator, ActionAdd, []string{"+"}, "add")
	reg(ScopeCalculator, ActionSubtract, []string{"-"}, "subtract")
	reg(ScopeCalculator, ActionMultiply, []string{"*"}, "multiply")
	reg(ScopeCalculator, ActionDivide, []string{"/"}, "divide")
	reg(ScopeCalculator, ActionModulo, []string{"%"}, "modulo")
	reg(ScopeCalculator, ActionCompute, []string{"enter", "="}, "equals")
	reg(ScopeCalculator, ActionDelete, []string{"backspace"}, "delete")
	reg(ScopeCalculator, ActionClear, []string{"esc", "c", "ac"}, "clear")
	reg(ScopeCalculator, ActionNegate, []string{"n"}, "+/-")
	reg(ScopeCalculator, ActionPercent, []string{"p"}, "percent")

	reg(ScopeCommandPalette, ActionNavigate, []string{"up/down", "up", "down", "ctrl+p", "ctrl+n"}, "navigate")
	reg(ScopeCommandPalette, ActionSelect, []string{"enter"}, "run")
	reg(ScopeCommandPalette, ActionClose, []string{"esc"}, "close")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.bindingsByScope[scope]; !ok {
			r.bindingsByScope[scope] = nil
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 {
			continue
		}
		if r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup resolves a key in scope, falling back to the global scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != ScopeGlobal {
		if b := r.lookupInScope(keyName, ScopeGlobal); b != nil {
			return b
		}
	}
	return nil
}

// HelpBindings converts a scope's bindings for bubbles/help. The first key is
// used as the help label, so display-only labels like "0-9" go first.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if len(b.Keys) == 0 {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

// KeysFor returns the keys bound to action in scope.
func (r *KeyRegistry) KeysFor(action Action, scope string) []string {
	for _, b := range r.BindingsForScope(scope) {
		if b.Action == action {
			return append([]string(nil), b.Keys...)
		}
	}
	return nil
}

// ApplyKeybindingConfig replaces the keys of configured actions. Every entry
// is validated, conflicts included, before any binding changes, so a failed
// call leaves the registry as it was.
func (r *KeyRegistry) ApplyKeybindingConfig(items []config.Keybinding) error {
	if r == nil || len(items) == 0 {
		return nil
	}
	type pair struct {
		scope  string
		action Action
	}
	seenPair := make(map[pair]bool)
	pending := make(map[*Binding][]string)
	for _, o := range items {
		scope := strings.TrimSpace(o.Scope)
		if scope == "" {
			return fmt.Errorf("keybinding: scope is required")
		}
		action := Action(strings.TrimSpace(o.Action))
		if action == "" {
			return fmt.Errorf("keybinding scope=%q: action is required", scope)
		}
		keys := normalizeKeyList(o.Keys)
		if len(keys) == 0 {
			return fmt.Errorf("keybinding scope=%q action=%q: keys are required", scope, action)
		}

		bindings := r.bindingsByScope[scope]
		if len(bindings) == 0 {
			return fmt.Errorf("keybinding scope=%q action=%q: %w", scope, action, ErrUnknownScope)
		}
		var target *Binding
		for _, b := range bindings {
			if b.Action == action {
				target = b
				break
			}
		}
		if target == nil {
			return fmt.Errorf("keybinding scope=%q action=%q: %w", scope, action, ErrUnknownAction)
		}
		p := pair{scope: scope, action: action}
		if seenPair[p] {
			return fmt.Errorf("keybinding scope=%q action=%q: duplicated entry", scope, action)
		}
		seenPair[p] = true
		pending[target] = keys
	}

	for scope, bindings := range r.bindingsByScope {
		seen := make(map[string]Action)
		for _, b := range bindings {
			keys := b.Keys
			if override, ok := pending[b]; ok {
				keys = override
			}
			for _, k := range keys {
				if prev, ok := seen[k]; ok {
					return fmt.Errorf("keybinding conflict in scope=%q: key %q used by both %q and %q", scope, k, prev, b.Action)
				}
				seen[k] = b.Action
			}
		}
	}

	for b, keys := range pending {
		b.Keys = keys
	}
	r.rebuildIndex()
	return nil
}

func (r *KeyRegistry) ExportKeybindingConfig() []config.Keybinding {
	if r == nil {
		return nil
	}
	var out []config.Keybinding
	for scope, bindings := range r.bindingsByScope {
		for _, b := range bindings {
			out = append(out, config.Keybinding{
				Scope:  scope,
				Action: string(b.Action),
				Keys:   append([]string(nil), b.Keys...),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Scope != out[j].Scope {
			return out[i].Scope < out[j].Scope
		}
		return out[i].Action < out[j].Action
	})
	return out
}

func (r *KeyRegistry) rebuildIndex() {
	r.indexByScope = make(map[string]map[string]*Binding, len(r.bindingsByScope))
	for scope, bindings := range r.bindingsByScope {
		r.indexByScope[scope] = make(map[string]*Binding)
		for _, b := range bindings {
			for _, k := range b.Keys {
				r.indexByScope[scope][k] = b
			}
		}
	}
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// Preserve single uppercase rune so uppercase/lowercase bindings
			// can be distinct actions within the same scope.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "escape", "esc")
	s = strings.ReplaceAll(s, "spacebar", "space")
	return s
}
