// Package machine drives a compilation end to end and simulates the
// result.
//
// The program counter width feeds back into the compiled size, so a
// machine is built twice: once against a generous speculative width
// to learn the true order of the boot subprogram, then again from
// scratch with exactly that width. The boot subprogram prepends one
// register initialization per allocated register ahead of the program
// body and appends a halt.
package machine
