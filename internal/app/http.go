package app

import (
	"net/http"
)

// newHTTPClient returns a client on a private copy of the default transport.
// No client-wide timeout is set; requests end when the transport or the
// caller's context ends them.
func newHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = http.ProxyFromEnvironment
	return &http.Client{Transport: transport}
}
