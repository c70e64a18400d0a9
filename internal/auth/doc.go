// Package auth provides API-key middleware for the upload endpoint.
//
// Middleware(mode, header, key) wraps a handler so that requests must carry
// the expected key in the configured header. When mode is not "apikey", or
// no key is configured, the middleware is a pass-through — read endpoints
// are always open, and a bare deployment works without any setup.
package auth
