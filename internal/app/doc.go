// Package app provides application initialization and lifecycle
// management for the FPA Pulse server. It wires configuration, logging,
// telemetry, the service layer and the HTTP router together at startup
// and handles graceful shutdown.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//	1. Load configuration from environment and optional YAML file
//	2. Initialize structured logging and OpenTelemetry
//	3. Create the Google Sheets and OpenAI clients
//	4. Initialize services with their dependencies
//	5. Set up HTTP handlers and the middleware chain
//	6. Configure the HTTP server
//
// # Usage
//
// The main entry point is typically:
//
//	application, err := app.NewApplication(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// Run handles SIGINT and SIGTERM so that active requests complete,
// telemetry providers flush, and the log file closes before exit.
package app
