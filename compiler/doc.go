// Package compiler lowers register-machine subprograms onto a
// two-symbol Turing machine.
//
// The tape holds a program counter of PCBits binary cells, a two-zero
// pad, and then one unary run per register. Every subprogram occupies
// a power-of-two range of program counter values and is compiled into
// a binary decision tree over the counter bits; running the machine
// alternates between dispatching on the counter and executing the
// selected operation, which ends by incrementing (or patching) the
// counter and rewinding the head.
//
// A Builder owns all mutable state for one compilation: the state
// graph, the memo cache that gives structural sharing and detects
// construction cycles, register allocation, and configuration. The
// primitive operations are register increment, decrement (which skips
// an extra counter slot when the register was nonzero), register
// initialization, Transfer, Noop, Halt, and the label/goto parts
// consumed by Makesub.
package compiler
