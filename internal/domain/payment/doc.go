// Package payment contains the Payment bounded context of the checkout
// integration layer.
//
// Key concepts:
//   - Provider: port interface for external payment services (Stripe, Vipps, Klarna)
//   - Config: per-provider credential blocks; presence of all required fields
//     is the sole enablement signal
//   - Method: user-selectable checkout option derived from configuration
//   - Result: uniform outcome of every provider call
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package payment
