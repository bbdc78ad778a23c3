package server

// Server is a transport the diary server runs until it is told to stop.
type Server interface {
	// RunServer blocks until the server stops.
	RunServer()
	Shutdown()
}
