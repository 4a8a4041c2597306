package change

// Subscriber receives change events for the tables it asked for.
type Subscriber interface {
	Subscribe(tables []string) (events <-chan Event, unsubscribe func())
}

// Publisher fans an event out to subscribers.
type Publisher interface {
	Publish(event Event)
}
