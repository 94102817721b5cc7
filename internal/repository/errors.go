// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios, for
// example mapping ErrMobileExists to a 409 and the not-found values
// to 404s. Lifecycle conflicts (double accept, accept after decline)
// are signalled by the model layer, not from here.
package repository

import "errors"

// ErrMobileExists is returned when inserting a user whose mobile
// number is already registered.
var ErrMobileExists = errors.New("mobile already registered")

// ErrUserNotFound indicates that a user was not located in the DB.
var ErrUserNotFound = errors.New("user not found")

// ErrBookingNotFound indicates that a booking was not located in the DB.
var ErrBookingNotFound = errors.New("booking not found")

// ErrMatchNotFound indicates that a match was not located in the DB.
var ErrMatchNotFound = errors.New("match not found")

// ErrPricingNotFound indicates that no active pricing row exists for
// a game type. This is an operator-fixable configuration problem, not
// a caller mistake.
var ErrPricingNotFound = errors.New("pricing not configured")

// ErrSubscriptionNotFound indicates that a push subscription was not
// located for the given user and endpoint.
var ErrSubscriptionNotFound = errors.New("subscription not found")
