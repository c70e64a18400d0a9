// Package config loads the service configuration from the `server:` section
// of config.yaml.
//
// Config fields:
//   - HTTPPort        — port the HTTP API listens on (default 3000; the PORT
//     environment variable overrides it at startup)
//   - Auth.Mode       — "apikey" to gate uploads, or "none"
//   - Auth.KeyEnv     — environment variable holding the expected API key
//   - Auth.Header     — header name the key is read from (default "x-api-key")
//   - Upload.MaxBytes — upload body size cap (default 16 MiB)
//   - Stream.Interval — WebSocket broadcast period (default 5s)
//   - Watch.Path      — optional CSV file to auto-ingest on change
//   - Webhooks        — targets notified after each successful ingest
//
// Load(path) applies defaults before unmarshalling, then validates.
package config
