// Package orderservice contains the orders service. Creating an order
// resolves the referenced customer through the customer directory, stores a
// snapshot of the customer's name on the order and announces OrderCreated.
package orderservice
