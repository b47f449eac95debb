package httpx

import "net/http"

// Middleware wraps an http.Handler with cross-cutting behavior. A middleware
// either calls next (possibly with an augmented request context) or writes a
// terminal response and stops the chain.
type Middleware func(next http.Handler) http.Handler

// Chain applies middlewares to h in declaration order: the first middleware
// listed is the first to see the request. Route definitions read top-down as
// the order guards run in.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
