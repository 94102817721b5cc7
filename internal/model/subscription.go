package model

import "time"

// PushSubscription mirrors the 'push_subscriptions' table.  Each row is
// one browser push endpoint registered by a user; the p256dh and auth
// keys come from the client's PushManager subscription.  Delivery
// transport lives outside this service; the notification consumer only
// resolves endpoints from these rows.
type PushSubscription struct {
	ID        uint64
	UserID    uint64
	Endpoint  string
	P256dh    string
	Auth      string
	UserAgent string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
