// Package generation defines the interface between the application core
// and the external text-generation service, along with the result types
// and error taxonomy shared by its implementations. Following the
// hexagonal architecture pattern, services depend on the Generator
// interface here and never on a concrete client.
package generation
