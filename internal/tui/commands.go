package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskcalc/internal/adapter"
)

type Command struct {
	ID          string
	Label       string
	Description string
	Category    string
	Enabled     func(m model) (bool, string)
	Execute     func(m model) (model, tea.Cmd, error)
}

type CommandMatch struct {
	Command        Command
	Score          int
	Enabled        bool
	DisabledReason string
}

type CommandRegistry struct {
	commands []Command
	byID     map[string]Command
}

func NewCommandRegistry() *CommandRegistry {
	r := &CommandRegistry{}
	r.commands = []Command{
		dispatchCommand("calc:compute", "Compute Result", "Apply the pending operator", adapter.ActionCompute),
		dispatchCommand("calc:clear", "Clear All", "Reset operands and operator", adapter.ActionClear),
		dispatchCommand("calc:delete", "Delete Last Digit", "Remove the last character of the entry", adapter.ActionDelete),
		dispatchCommand("calc:negate", "Negate", "Flip the sign of the entry", adapter.ActionNegate),
		dispatchCommand("calc:percent", "Percent", "Divide the entry by one hundred", adapter.ActionPercent),
		dispatchCommand("op:add", "Add", "Choose the + operator", adapter.ActionAdd),
		dispatchCommand("op:subtract", "Subtract", "Choose the − operator", adapter.ActionSubtract),
		dispatchCommand("op:multiply", "Multiply", "Choose the × operator", adapter.ActionMultiply),
		dispatchCommand("op:divide", "Divide", "Choose the ÷ operator", adapter.ActionDivide),
		dispatchCommand("op:modulo", "Modulo", "Choose the % operator", adapter.ActionModulo),
		{
			ID:          "view:keypad",
			Label:       "Toggle Keypad",
			Description: "Show or hide the on-screen keypad",
			Category:    "View",
			Enabled:     commandAlwaysEnabled,
			Execute: func(m model) (model, tea.Cmd, error) {
				m.cfg.UI.ShowKeypad = !m.cfg.UI.ShowKeypad
				return m, nil, nil
			},
		},
		{
			ID:          "view:help",
			Label:       "Toggle Help",
			Description: "Show all key bindings in the footer",
			Category:    "View",
			Enabled:     commandAlwaysEnabled,
			Execute: func(m model) (model, tea.Cmd, error) {
				m.help.ShowAll = !m.help.ShowAll
				return m, nil, nil
			},
		},
		{
			ID:          "settings:save",
			Label:       "Save Settings",
			Description: "Write view preferences to config.toml",
			Category:    "Settings",
			Enabled:     commandAlwaysEnabled,
			Execute: func(m model) (model, tea.Cmd, error) {
				cfg := m.cfg
				cfg.UI.ShowHelp = m.help.ShowAll
				if err := m.saveConfig(cfg); err != nil {
					return m, nil, fmt.Errorf("save settings: %w", err)
				}
				m.setStatus("Settings saved.")
				return m, nil, nil
			},
		},
		{
			ID:          "app:quit",
			Label:       "Quit",
			Description: "Exit jaskcalc",
			Category:    "App",
			Enabled:     commandAlwaysEnabled,
			Execute: func(m model) (model, tea.Cmd, error) {
				return m, tea.Quit, nil
			},
		},
	}
	r.byID = make(map[string]Command, len(r.commands))
	for _, cmd := range r.commands {
		r.byID[cmd.ID] = cmd
	}
	return r
}

func dispatchCommand(id, label, desc string, action adapter.Action) Command {
	return Command{
		ID:          id,
		Label:       label,
		Description: desc,
		Category:    "Calculator",
		Enabled: func(m model) (bool, string) {
			if m.host.display.Error && action != adapter.ActionClear {
				return false, "Clear the error first."
			}
			return true, ""
		},
		Execute: func(m model) (model, tea.Cmd, error) {
			if !m.host.input.Dispatch(action, "") {
				return m, nil, fmt.Errorf("action %q not handled", action)
			}
			return m, nil, nil
		},
	}
}

func commandAlwaysEnabled(model) (bool, string) {
	return true, ""
}

func (r *CommandRegistry) All() []Command {
	if r == nil {
		return nil
	}
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

func (r *CommandRegistry) Search(query string, m model, lastCommandID string) []CommandMatch {
	if r == nil {
		return nil
	}
	q := strings.TrimSpace(query)
	out := make([]CommandMatch, 0, len(r.commands))
	for _, cmd := range r.commands {
		matched, score := commandMatchScore(cmd, q)
		if !matched {
			continue
		}
		enabled := true
		reason := ""
		if cmd.Enabled != nil {
			enabled, reason = cmd.Enabled(m)
		}
		out = append(out, CommandMatch{
			Command:        cmd,
			Score:          score,
			Enabled:        enabled,
			DisabledReason: reason,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Enabled != out[j].Enabled {
			return out[i].Enabled
		}
		iMRU := lastCommandID != "" && out[i].Command.ID == lastCommandID
		jMRU := lastCommandID != "" && out[j].Command.ID == lastCommandID
		if iMRU != jMRU {
			return iMRU
		}
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return false
	})
	return out
}

func (r *CommandRegistry) ExecuteByID(id string, m model) (model, tea.Cmd, error) {
	if r == nil {
		return m, nil, fmt.Errorf("command registry is not initialized")
	}
	cmd, ok := r.byID[id]
	if !ok {
		return m, nil, fmt.Errorf("unknown command %q", id)
	}
	if cmd.Enabled != nil {
		enabled, reason := cmd.Enabled(m)
		if !enabled {
			if strings.TrimSpace(reason) == "" {
				reason = "command is disabled"
			}
			return m, nil, fmt.Errorf("%s", reason)
		}
	}
	if cmd.Execute == nil {
		return m, nil, fmt.Errorf("command %q has no executor", id)
	}
	return cmd.Execute(m)
}

func commandMatchScore(cmd Command, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	best := -1
	for _, field := range []string{cmd.Label, cmd.ID, cmd.Description} {
		matched, score := fuzzyMatchScore(field, query)
		if !matched {
			continue
		}
		if strings.EqualFold(field, query) {
			score += 15
		}
		if score > best {
			best = score
		}
	}
	if best < 0 && typoMatch(cmd.Label, query) {
		best = 1
	}
	if best < 0 {
		return false, 0
	}
	return true, best
}

// typoMatch accepts a query within a small edit distance of one word of
// label, so "comptue" still finds "Compute Result".
func typoMatch(label, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < 3 {
		return false
	}
	for _, word := range strings.Fields(strings.ToLower(label)) {
		limit := len(word) / 3
		if limit < 1 {
			limit = 1
		}
		if levenshtein.ComputeDistance(word, q) <= limit {
			return true
		}
	}
	return false
}

func fuzzyMatchScore(label, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	labelLower := strings.ToLower(label)
	queryLower := strings.ToLower(query)

	matchIdx := make([]int, 0, len(queryLower))
	searchFrom := 0
	for i := 0; i < len(queryLower); i++ {
		ch := queryLower[i]
		found := false
		for j := searchFrom; j < len(labelLower); j++ {
			if labelLower[j] == ch {
				matchIdx = append(matchIdx, j)
				searchFrom = j + 1
				found = true
				break
			}
		}
		if !found {
			return false, 0
		}
	}

	score := len(queryLower)
	if len(matchIdx) > 0 && matchIdx[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matchIdx); i++ {
		if matchIdx[i] == matchIdx[i-1]+1 {
			score += 3
		}
	}
	if strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(query)) {
		score += 20
	}
	return true, score
}
