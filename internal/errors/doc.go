// Package errors provides coded, human-readable errors for the vdom tooling.
//
// Engine failures are reported through the sentinel errors of the public
// packages. This package covers the outer surfaces, configuration loading
// and the command line, where an error is read by a person: every error has
// a code (e.g. "V101") that maps to a short message and a longer detail, and
// can carry the file location it refers to plus a hint.
//
// # Usage
//
//	err := errors.New("V101").
//	    WithLocation("vdom.yaml", 4, 0).
//	    WithSuggestion("lookahead must be a non-negative integer")
//
//	fmt.Println(err.Format())
//	// ERROR V101: Invalid configuration file
//	//
//	//   vdom.yaml:4
//	//
//	//   Hint: lookahead must be a non-negative integer
package errors
