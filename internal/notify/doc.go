// Package notify delivers webhook notifications after each successful ingest.
//
// Targets come from the `server.webhooks` config section; URLs are resolved
// from the environment at delivery time so secrets stay out of the config
// file. Delivery errors are logged and never affect the ingest itself.
package notify
