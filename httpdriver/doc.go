// Package httpdriver exposes the planner over HTTP: POST /plan runs one
// synchronous A* planning call against a JSON source/target/heuristic
// payload, and GET /progress upgrades to a websocket that periodically
// reports the in-flight call's node-expansion count.
//
// Grounded on niceyeti-tabular/tabular/server/server.go's Server type and
// its websocket.Upgrader push-update loop — simplified to this package's
// single-shot request/response shape rather than that server's continuous
// training-state stream, and routed through github.com/gorilla/mux
// instead of bespoke http.HandleFunc wiring, since nothing else in the
// pack offers a router. Only one planning call runs at a time: handlePlan
// holds Server.mu for its duration, preserving the single-threaded
// synchronous planning model spec.md §5 requires — the websocket is an
// observer of that one call, not a second concurrent planner.
package httpdriver
