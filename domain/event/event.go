package event

import (
	"barber-lab/domain"
)

// Topic names a live feed subscribers can register on.
type Topic string

func ConversationTopic(key domain.ConversationKey) Topic {
	return Topic("conv:" + key.String())
}

func InboxTopic(receiver domain.Identity) Topic {
	return Topic("inbox:" + receiver)
}

func ShopTopic(shop domain.Identity) Topic {
	return Topic("shop:" + shop)
}

// DomainEvent is anything the fanout can route to subscribers.
type DomainEvent interface {
	Topics() []Topic
}

// MessageSent is published once a message has been stored.
// It reaches both the conversation feed and the receiver's inbox.
type MessageSent struct {
	Message domain.Message
}

func (m MessageSent) Topics() []Topic {
	return []Topic{
		ConversationTopic(m.Message.Key()),
		InboxTopic(m.Message.ReceiverID),
	}
}

// AppointmentSubmitted is published once an appointment request has been stored.
type AppointmentSubmitted struct {
	Appointment domain.Appointment
}

func (a AppointmentSubmitted) Topics() []Topic {
	return []Topic{ShopTopic(a.Appointment.ShopID)}
}
