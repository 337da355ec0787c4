package orders

// All order events share one topic; the envelope's event_type tells them
// apart and the partition key keeps one order's events ordered.
const TopicOrderEvents = "orders.events"

// Partition key = order_id so all events for one order stay ordered.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
