// Package customerservice contains the customers service: customer creation
// with caller-supplied or generated ids, lookups served over HTTP and gRPC,
// and CustomerCreated events for downstream subscribers.
package customerservice
