package redisx

import "time"

const (
	// Watch channel per collection: watch:{collection}
	KeyWatchChannel = "watch:%s"

	// Cached order status: order_status:{order_id} -> {"status":"..."}
	KeyOrderStatus = "order_status:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLStatusCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
)
