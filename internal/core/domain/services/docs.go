// Package services holds domain rules that span several aggregates of the
// logistics model.
//
// The package includes:
//   - FulfillmentPolicy: placement and rebooking rules across client, product, carrier, route and order
//
// Services never touch storage. They receive aggregates already loaded (and
// locked where needed) by the application layer and mutate them in memory.
package services
