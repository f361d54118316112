// Package kpath provides kinded path parsing and navigation.
//
// Kinded paths encode both navigation and structure type in the syntax:
//   - .field - Object field access
//   - [index] - Array index
//
// Fields which are empty or contain path syntax are double quoted with Go
// string escapes.
//
// # Path Examples
//
//	"CityObjects.b1.geometry[0].boundaries[2]"
//	"CityObjects.\"NL.IMBAG.Pand.0363\".attributes"
//	"[3][0]"
//	""   // the root
package kpath
