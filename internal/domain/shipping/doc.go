// Package shipping contains the Shipping bounded context of the checkout
// integration layer.
//
// Key concepts:
//   - Carrier: port interface for external carriers (Bring, Posten, Helthjem)
//   - Config: carrier credential blocks plus the free-shipping threshold and
//     default packaging dimensions
//   - Method: user-selectable delivery option derived from configuration;
//     store pickup is a static entry that bypasses the carrier contract
//   - Rate/Label/TrackingInfo: value objects returned by carrier calls
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package shipping
