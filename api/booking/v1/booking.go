// Package bookingv1 is the wire contract of barber.v1.BookingService.
// Messages travel with the JSON codec registered by infrastructure/grpc/codec.
package bookingv1

import "time"

type Message struct {
	MessageID  string    `json:"message_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type SendRequest struct {
	To      string `json:"to"`
	Content string `json:"content"`
}

type OpenChannelRequest struct {
	Counterparty string `json:"counterparty"`
}

// ChannelEvent is either a history message or a live one.
type ChannelEvent struct {
	Message *Message `json:"message"`
	Live    bool     `json:"live"`
}

type OpenDirectoryRequest struct{}

type DirectoryEntry struct {
	CounterpartyID string    `json:"counterparty_id"`
	DisplayName    string    `json:"display_name"`
	Resolved       bool      `json:"resolved"`
	LastMessageAt  time.Time `json:"last_message_at"`
}

type DirectoryEvent struct {
	Entry *DirectoryEntry `json:"entry"`
	Live  bool            `json:"live"`
}

type SubmitAppointmentRequest struct {
	ShopID  string `json:"shop_id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Time    string `json:"time"`
}

type Appointment struct {
	AppointmentID string    `json:"appointment_id"`
	ShopID        string    `json:"shop_id"`
	CustomerID    string    `json:"customer_id,omitempty"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Service       string    `json:"service"`
	Time          string    `json:"time"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListAppointmentsRequest struct{}

type ListAppointmentsResponse struct {
	Appointments []*Appointment `json:"appointments"`
}

type WatchAppointmentsRequest struct{}
