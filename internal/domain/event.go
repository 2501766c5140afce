package domain

// EventType names the entity an event is about
type EventType string

const (
	EventBooking   EventType = "booking"
	EventPayment   EventType = "payment"
	EventSpot      EventType = "spot"
	EventCar       EventType = "car"
	EventAccessLog EventType = "access_log"
)

// EventAction names what happened to the entity
type EventAction string

const (
	ActionCreated EventAction = "created"
	ActionUpdated EventAction = "updated"
)

// Event is a domain change pushed to the notification fan-out.
// UserID, when set, routes the event to that user's channel as well.
type Event struct {
	Type   EventType   `json:"type"`
	Action EventAction `json:"action"`
	Data   interface{} `json:"data"`

	UserID *int64 `json:"-"`
}

// Name returns the dotted event name, e.g. "booking.created"
func (e Event) Name() string {
	return string(e.Type) + "." + string(e.Action)
}
