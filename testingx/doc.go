// Package testingx provides testing helpers and fakes for classgen packages.
//
// # Overview
//
// testingx contains small utilities shared by package tests: a mock logger
// that records entries, assertions on core/errors codes, and file helpers for
// tests that generate into a temporary project directory.
//
// # Usage
//
//	logger := testingx.NewMockLogger(t)
//	gen := generators.NewClassGenerator(fs, generators.WithLogger(logger))
//	testingx.AssertError(t, err, errors.CodeMalformedDeclaration)
//	logger.AssertLogged("DEBUG", "parsed declarations")
package testingx
