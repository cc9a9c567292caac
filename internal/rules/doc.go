// Package rules implements the GDScript style checks.
//
// Every check is a pure function of a parsed module and its source file. The
// checks share no mutable state, so they may run in any order and on any
// goroutine; Run concatenates their output in registry order.
//
// The checks are built on typed query records from package query:
//
//	class-name-extends        class_name must precede extends
//	declaration-order         top-level members follow the style guide order
//	unknown-order             a top-level statement that has no place in it
//	typed-function-signature  parameters and return types are annotated
//	no-print                  calls to print (or other banned functions)
package rules
