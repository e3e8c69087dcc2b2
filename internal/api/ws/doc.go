// Package ws streams host status snapshots over WebSocket.
//
// A client receives a snapshot on connect and another after every install
// or uninstall, so a shell never has to poll.
//
// Message Types (Client → Server):
//   - refresh: request a fresh snapshot
//   - ping: keep-alive ping
//
// Message Types (Server → Client):
//   - status: snapshot of every host, with the reason it was sent
//   - pong: reply to ping
//   - error: unknown command
//
// Example Usage:
//
//	hub := ws.NewHub(inspector, middleware.IsLocalOrigin, logger)
//	router.GET("/stream", hub.HandleConnection)
//	hub.Publish("install")
package ws
