package orders

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
)

// KnownStatuses is the fixed order used by group summaries.
var KnownStatuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered}

var validNext = map[Status]map[Status]bool{
	StatusPending:    {StatusProcessing: true},
	StatusProcessing: {StatusShipped: true},
	StatusShipped:    {StatusDelivered: true},
	StatusDelivered:  {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func IsKnown(s Status) bool {
	_, ok := validNext[s]
	return ok
}
