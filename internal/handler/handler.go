// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It reads path ids and form bodies, calls the service layer and writes the
// resulting outcome: a rendered page or a redirect. Errors are returned to
// the global error handler.
package handler
