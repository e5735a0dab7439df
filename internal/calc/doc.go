// Package calc contains the calculator state machine and its number
// formatting.
//
// Allowed here:
// - operand accumulation, operator chaining, arithmetic, display formatting
//
// Not allowed here:
// - key handling, rendering, configuration or any other I/O
package calc
