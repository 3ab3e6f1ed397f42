// Package backend hosts the identity and study-plan backend service.
//
// The web front end treats this process as a hosted provider: it owns user
// accounts, credentials, durable sessions, profiles, and user-scoped study
// plans, and exposes them over a JSON HTTP API under /v1/.
package backend
