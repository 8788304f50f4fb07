package httpclient

import "net/http"

// HTTPClient is the subset of *http.Client the API clients depend on.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
