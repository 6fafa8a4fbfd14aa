package engine

// Dispatcher is the surface the simulated client library consumes.
// Application code under test should depend on this interface rather
// than the concrete Engine, so a real transport can replace the mock
// outside of tests.
type Dispatcher interface {
	Request(verb, path string) (string, error)
}

var _ Dispatcher = (*Engine)(nil)

// Client is a minimal simulated client over a Dispatcher.
type Client struct {
	dispatcher Dispatcher
}

// NewClient creates a client issuing requests against d.
func NewClient(d Dispatcher) *Client {
	return &Client{dispatcher: d}
}

// Get dispatches a GET request and returns the response body.
func (c *Client) Get(path string) (string, error) {
	return c.dispatcher.Request("GET", path)
}

// Do dispatches a request with an arbitrary verb.
func (c *Client) Do(verb, path string) (string, error) {
	return c.dispatcher.Request(verb, path)
}
