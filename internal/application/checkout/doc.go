// Package checkout contains the application services for the storefront
// integration layer:
//
//   - Method listing: derives the selectable payment and shipping options
//     from configuration, recomputed on every call
//   - Payment orchestration: routes create/capture/cancel/status calls to
//     the configured provider adapters, with capture deduplication
//   - Shipping orchestration: rate quoting across carriers, label booking,
//     tracking, pickup points and delivery time slots
//   - Configuration validation: aggregates missing credential fields into
//     one report for the admin surface
package checkout
