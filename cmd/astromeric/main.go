// Package main provides the entry point for the Astromeric CLI.
//
// Astromeric is a terminal client for the Astromeric backend: astrology
// forecasts, numerology readings, and compatibility reports for saved
// birth profiles, plus a local habit tracker and journal.
//
// Usage:
//
//	astromeric forecast [profile-name...]
//	astromeric numerology <profile-name>
//	astromeric compat <profile-a> <profile-b>
//
// See --help for all available options.
package main

// main is the entry point for Astromeric.
func main() {
	Execute()
}
