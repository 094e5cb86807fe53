// Package server wires the HTTP router, stores, and middleware into a
// runnable API server.
package server
