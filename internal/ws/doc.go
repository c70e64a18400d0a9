// Package ws streams the current property generation to WebSocket clients.
//
// The hub broadcasts a full SnapshotResponse on a fixed interval and sends
// one immediately when a client connects, so dashboards see replaced
// datasets without polling the REST endpoints.
package ws
