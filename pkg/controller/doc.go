// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithRecovery: Converts downstream panics into 500 responses and logs them.
//   - WithSecurityHeaders: Adds conservative browser security headers to every response.
//   - WithCORS: Adds permissive CORS headers and handles OPTIONS preflight.
//   - WithRateLimit: Enforces a per-client token bucket request budget.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//
// Provided helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers.
package controller
