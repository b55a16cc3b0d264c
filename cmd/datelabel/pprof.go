package main

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
)

// newPprofServer returns nil when port is 0.
func newPprofServer(port int) *http.Server {
	if port <= 0 {
		return nil
	}
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: http.DefaultServeMux,
	}
}
