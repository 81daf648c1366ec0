// Package payment defines the boundary between the application core and
// the external payment processor's checkout flow.
package payment
