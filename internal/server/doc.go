// Package server runs the diary server's transports.
//
// It starts the HTTP API and the gRPC health endpoint, waits for a stop
// signal and shuts both down gracefully.
package server
