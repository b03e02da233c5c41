package entity

// MinMessageLength is the shortest body that can describe a transaction
const MinMessageLength = 10

// Message is a raw bank or wallet notification as received from the inbox
type Message struct {
	Sender     string
	Body       string
	OccurredAt int64 // Epoch millis stamped by the inbox
}
