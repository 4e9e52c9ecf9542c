// Package services implements the business logic layer of FPA Pulse.
// It provides a clean separation between HTTP handlers and the
// spreadsheet and LLM clients, ensuring that business rules are
// centralized and testable.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Interface-driven design for testability
//	2. Context propagation for cancellation and tracing
//	3. Dependency injection for loose coupling
//	4. Error handling and transformation at the boundary
//
// # Service Layer Responsibilities
//
// The service layer is responsible for:
//
//	- Business logic and validation
//	- Cross-cutting concerns (logging, metrics)
//	- Error handling and transformation
//	- External API integration (Google Sheets, OpenAI)
//
// The aggregation itself is pure and lives in internal/metrics; the
// services here fetch rows, drive the engine and record telemetry.
package services
