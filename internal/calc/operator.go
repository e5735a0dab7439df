package calc

import "fmt"

// Operator is one of the binary operations the engine can hold pending.
type Operator int

const (
	OpNone Operator = iota
	Add
	Subtract
	Multiply
	Divide
	Modulo
)

// Operators lists every real operator in keypad order.
func Operators() []Operator {
	return []Operator{Add, Subtract, Multiply, Divide, Modulo}
}

// ParseOperator maps a keyboard symbol to an Operator.
func ParseOperator(symbol string) (Operator, error) {
	switch symbol {
	case "+":
		return Add, nil
	case "-":
		return Subtract, nil
	case "*":
		return Multiply, nil
	case "/":
		return Divide, nil
	case "%":
		return Modulo, nil
	}
	return OpNone, fmt.Errorf("unknown operator %q", symbol)
}

// String returns the ASCII symbol used on the keyboard.
func (o Operator) String() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Modulo:
		return "%"
	case OpNone:
		return ""
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Symbol returns the typographic symbol shown on the display.
func (o Operator) Symbol() string {
	switch o {
	case Multiply:
		return "×"
	case Divide:
		return "÷"
	case Subtract:
		return "−"
	}
	return o.String()
}

// Valid reports whether o is a real operator.
func (o Operator) Valid() bool {
	return o >= Add && o <= Modulo
}
