// Package entityservice stores generic named records with free-form string
// attributes and announces each creation as EntityCreated.
package entityservice
