// Package http implements HTTP request handlers for the FPA Pulse web
// service. It provides a thin layer between HTTP transport and business
// logic, following the clean architecture principle of keeping handlers
// focused solely on HTTP concerns.
//
// # Architecture Principles
//
// Handlers in this package follow these principles:
//
//	1. Thin handlers - minimal logic, delegate to services
//	2. HTTP-only concerns - request parsing, response formatting
//	3. Error transformation - convert service errors to HTTP responses
//	4. No business logic - all logic belongs in the service layer
//
// # Request Flow
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Sheets/LLM
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// Errors surface as RFC 7807 problem documents via the shared
// ErrorHandler, so every failure carries a type URI and trace_id.
package http
