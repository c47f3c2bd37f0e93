// Package dsl builds programs from Starlark scripts instead of the
// surface language. The predeclared builtins construct the same tree
// the parser produces, so a script and a source file with the same
// shape compile to the same machine.
//
// Numeric arguments accept an expression from lit/read/add/mul, a
// bare integer (taken as a literal), or a bare string (taken as a
// register read).
package dsl
