// Package http implements the HTTP request handlers for the bootstrap
// service. Handlers stay thin: they parse and validate requests, delegate
// to the service layer, and translate engine failures into the shared
// error envelope.
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → BootstrapService → Engine
//
// The streaming handler upgrades to a WebSocket and forwards engine
// progress callbacks as JSON frames before sending the final result.
package http
