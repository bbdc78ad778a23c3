// Package http implements the REST transport of the diary server.
//
// Route wiring, request handlers and middleware live here. Authentication,
// possession token checks, tracing, access logging, compression, security
// headers and body integrity checks run before a request reaches the
// service layer.
package http
