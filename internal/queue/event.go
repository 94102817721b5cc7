// Package queue defines message payloads exchanged over the message broker.
package queue

// Audience selects who a notification event is fanned out to.
const (
	AudienceUser   = "user"
	AudienceAdmins = "admins"
)

// Event type tags carried in NotificationEvent.Type.
const (
	TypeBookingRequested = "booking_request"
	TypeBookingApproved  = "booking_approved"
	TypeBookingDeclined  = "booking_declined"
	TypeMatchCompleted   = "match_completed"
	TypeMatchAdmin       = "match_completed_admin"
)

// NotificationEvent is published whenever a booking or match changes
// state in a way clients should hear about.  Delivery is fire-and-forget
// relative to the request that produced it: the dispatcher consumes
// these events asynchronously and a failed delivery never rolls back
// the state transition that triggered it.  UserID is zero when the
// Audience is "admins".
type NotificationEvent struct {
	Type      string            `json:"type"`
	Audience  string            `json:"audience"`
	UserID    uint64            `json:"user_id,omitempty"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Tag       string            `json:"tag"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt string            `json:"created_at"`
}
