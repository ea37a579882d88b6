// Package main hosts the clipscout CLI entrypoint and command graph.
//
// Commands open the candidate store directly and drive the lifecycle
// controller, so the CLI works without a running server. `clipscout serve`
// starts the HTTP API on top of the same wiring.
package main
