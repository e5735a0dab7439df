package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/jask/jaskcalc/internal/adapter"
	"github.com/jask/jaskcalc/internal/calc"
)

// Result is the JSON body returned by every tool that touches a calculator.
type Result struct {
	CalculatorID string `json:"calculator_id"`
	adapter.Display
	Handled *int `json:"handled,omitempty"`
}

type toolDef struct {
	tool   mcp.Tool
	handle mcpserver.ToolHandlerFunc
}

func calculatorIDArg() mcp.ToolOption {
	return mcp.WithString("calculator_id", mcp.Description("Calculator id from calc.new; omit for the default calculator"))
}

func (s *Server) tools() []toolDef {
	action := func(name, desc string, a adapter.Action) toolDef {
		return toolDef{
			tool: mcp.NewTool(name, mcp.WithDescription(desc), calculatorIDArg()),
			handle: s.withCalculator(name, func(_ mcp.CallToolRequest, in *adapter.InputAdapter) error {
				in.Dispatch(a, "")
				return nil
			}),
		}
	}

	return []toolDef{
		{
			tool: mcp.NewTool("calc.new",
				mcp.WithDescription("Create a calculator and return its id"),
			),
			handle: s.handleNew,
		},
		{
			tool: mcp.NewTool("calc.press",
				mcp.WithDescription("Press keys on a calculator, e.g. \"1 2 + 3 enter\""),
				calculatorIDArg(),
				mcp.WithString("keys", mcp.Required(), mcp.Description("Space separated key names")),
			),
			handle: s.handlePress,
		},
		{
			tool: mcp.NewTool("calc.digit",
				mcp.WithDescription("Append a digit or the decimal point to the current operand"),
				calculatorIDArg(),
				mcp.WithString("digit", mcp.Required(), mcp.Description("One of 0-9 or .")),
			),
			handle: s.withCalculator("calc.digit", appendDigit),
		},
		{
			tool: mcp.NewTool("calc.operator",
				mcp.WithDescription("Choose the pending operator, computing any chained result first"),
				calculatorIDArg(),
				mcp.WithString("operator", mcp.Required(), mcp.Description("One of + - * / %")),
			),
			handle: s.withCalculator("calc.operator", chooseOperator),
		},
		action("calc.compute", "Apply the pending operator", adapter.ActionCompute),
		action("calc.clear", "Reset the calculator", adapter.ActionClear),
		action("calc.delete", "Remove the last character of the current operand", adapter.ActionDelete),
		action("calc.negate", "Flip the sign of the current operand", adapter.ActionNegate),
		action("calc.percent", "Divide the current operand by one hundred", adapter.ActionPercent),
		{
			tool: mcp.NewTool("calc.display",
				mcp.WithDescription("Read the rendered display without changing it"),
				calculatorIDArg(),
			),
			handle: s.withCalculator("calc.display", nil),
		},
		{
			tool: mcp.NewTool("calc.format",
				mcp.WithDescription("Format a number string the way the display does"),
				mcp.WithString("value", mcp.Required(), mcp.Description("Number string, e.g. 1234.50")),
			),
			handle: handleFormat,
		},
		{
			tool: mcp.NewTool("calc.close",
				mcp.WithDescription("Drop a calculator; the default calculator is reset instead"),
				calculatorIDArg(),
			),
			handle: s.handleClose,
		},
	}
}

// withCalculator resolves the calculator_id argument, runs fn under the
// calculator's lock and returns the rendered display. A nil fn only reads.
func (s *Server) withCalculator(name string, fn func(mcp.CallToolRequest, *adapter.InputAdapter) error) mcpserver.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		c, err := s.registry.get(mcp.ParseString(req, "calculator_id", ""))
		if err != nil {
			return toolError(name, err), nil
		}
		var callErr error
		display := c.do(func(in *adapter.InputAdapter) {
			if fn != nil {
				callErr = fn(req, in)
			}
		})
		if callErr != nil {
			return toolError(name, callErr), nil
		}
		return jsonResult(name, Result{CalculatorID: c.id, Display: display})
	}
}

func appendDigit(req mcp.CallToolRequest, in *adapter.InputAdapter) error {
	d := strings.TrimSpace(mcp.ParseString(req, "digit", ""))
	switch {
	case d == ".":
		in.Dispatch(adapter.ActionDecimal, "")
	case len(d) == 1 && d[0] >= '0' && d[0] <= '9':
		in.Dispatch(adapter.ActionDigit, d)
	default:
		return fmt.Errorf("digit must be 0-9 or ., got %q", d)
	}
	return nil
}

func chooseOperator(req mcp.CallToolRequest, in *adapter.InputAdapter) error {
	op, err := calc.ParseOperator(strings.TrimSpace(mcp.ParseString(req, "operator", "")))
	if err != nil {
		return err
	}
	action, ok := adapter.OperatorAction(op)
	if !ok {
		return fmt.Errorf("operator %s has no action", op)
	}
	in.Dispatch(action, "")
	return nil
}

func (s *Server) handleNew(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.registry.Create()
	if err != nil {
		return toolError("calc.new", err), nil
	}
	c, err := s.registry.get(id)
	if err != nil {
		return toolError("calc.new", err), nil
	}
	return jsonResult("calc.new", Result{CalculatorID: id, Display: c.do(nil)})
}

func (s *Server) handlePress(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys := strings.Fields(mcp.ParseString(req, "keys", ""))
	if len(keys) == 0 {
		return toolError("calc.press", fmt.Errorf("keys parameter is required")), nil
	}
	c, err := s.registry.get(mcp.ParseString(req, "calculator_id", ""))
	if err != nil {
		return toolError("calc.press", err), nil
	}
	var handled int
	display := c.do(func(in *adapter.InputAdapter) {
		handled = in.Press(keys...)
	})
	return jsonResult("calc.press", Result{CalculatorID: c.id, Display: display, Handled: &handled})
}

func (s *Server) handleClose(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(mcp.ParseString(req, "calculator_id", ""))
	if id == "" {
		id = DefaultID
	}
	if err := s.registry.Close(id); err != nil {
		return toolError("calc.close", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("closed %s", id)), nil
}

func handleFormat(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(calc.FormatForDisplay(mcp.ParseString(req, "value", ""))), nil
}

func jsonResult(name string, r Result) (*mcp.CallToolResult, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return toolError(name, fmt.Errorf("encode result: %w", err)), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

func toolError(name string, err error) *mcp.CallToolResult {
	log.Printf("%s: %v", name, err)
	return mcp.NewToolResultError(err.Error())
}
