// Package services provides the business logic layer for SimpleAddress.
//
// This package contains:
//   - Owner-scoped address operations shared by the REST API and the CLI (AddressService)
//   - Registration, login sessions and password changes (AuthService)
//
// Services depend on small store interfaces so they can be tested without a
// running database; ServiceManager wires them to the MongoDB repositories.
package services
