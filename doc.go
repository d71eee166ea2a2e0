// Package calc implements a small expression calculator with variables and
// plotting.
//
// Text parses into a tree of *Node: numbers, variables, and named operations
// over ordered children. The syntax is the usual infix arithmetic with a few
// conveniences. "2 x y" is a multiplication of three terms, as is
// "{2}[x](y)". "-2^2^n" is the same as "-(2^(2^n))". A name immediately
// followed by a bracket is an operation, so "sin(x)" is a call but "sin (x)"
// multiplies sin by x. "x := e" assigns e to x.
//
// An Interpreter evaluates trees. It dispatches each operation by name to one
// of three families of handlers. Control operators like block, assign, and
// quit receive their operations before the children are evaluated.
// Expression operators like toDouble and simplify receive operations with
// evaluated children and transform them. GUI operators like plot and clear
// do the same with access to a drawing surface. Operations with no handler
// are left as they are, so "f(2 + 3)" evaluates to "f(5)".
//
// Every tree is evaluated as though wrapped in simplify, which folds sums,
// differences, and products of numbers and substitutes bound variables.
// Quotients and powers are not folded; use toDouble to reduce a tree to a
// single number.
//
// A Calculator combines the parser and an interpreter with the standard
// operators.
package calc
