// Package nql implements the "not quite laconic" surface language: a
// lexer, a recursive descent parser, and the lowering of the parsed
// program onto compiler parts.
//
// The language has global register declarations, procedures
// instantiated per argument tuple, while loops, if statements,
// assignment, calls, and return. Arithmetic is over natural numbers
// ("-" clamps at zero, "/" is floor division); comparisons do not
// associate, "&&" and "||" short-circuit, and "!" binds loosest of
// all, outside "||".
package nql
