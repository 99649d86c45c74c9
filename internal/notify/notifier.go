package notify

// Notifier delivers one milestone notification. Implementations must be safe
// to call repeatedly; the scanner guarantees at-most-once per milestone per
// tracker via the record's notified set.
type Notifier interface {
	Notify(title, body string) error
}
