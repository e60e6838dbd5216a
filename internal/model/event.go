package model

// EventType discriminates stream events.
type EventType string

const (
	EventProgress EventType = "progress"
	EventLead     EventType = "lead"
	EventDomain   EventType = "domain"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// Event is one typed progress event emitted while a run is in flight.
// Lead arrival order reflects discovery order only; final relevance order
// is established after the terminal event.
type Event struct {
	Type EventType `json:"type"`
	// Value is a pointer so a progress of 0 still serializes.
	Value   *int   `json:"value,omitempty"`
	Lead    *Lead  `json:"lead,omitempty"`
	Domain  string `json:"domain,omitempty"`
	Message string `json:"message,omitempty"`
}

// ProgressEvent reports percentage completion in [0,100].
func ProgressEvent(pct int) Event {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return Event{Type: EventProgress, Value: &pct}
}

// LeadEvent wraps a newly discovered lead.
func LeadEvent(lead Lead) Event {
	return Event{Type: EventLead, Lead: &lead}
}

// DomainEvent reports a newly discovered organization domain.
func DomainEvent(domain string) Event {
	return Event{Type: EventDomain, Domain: domain}
}

// CompleteEvent is the terminal success event.
func CompleteEvent(message string) Event {
	return Event{Type: EventComplete, Message: message}
}

// ErrorEvent is the terminal failure event.
func ErrorEvent(message string) Event {
	return Event{Type: EventError, Message: message}
}
