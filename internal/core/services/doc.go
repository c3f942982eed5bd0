// Package services implements the application core use cases: index
// building, question answering with grounded/fallback routing, and
// session history. Services depend only on ports, never on concrete
// adapters.
package services
