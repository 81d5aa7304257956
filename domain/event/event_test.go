package event

import (
	"barber-lab/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageSent_Topics(t *testing.T) {
	evt := MessageSent{Message: domain.Message{SenderID: "customer", ReceiverID: "shop"}}
	require.Equal(t, []Topic{
		ConversationTopic(domain.NewConversationKey("shop", "customer")),
		InboxTopic("shop"),
	}, evt.Topics())
}

func TestAppointmentSubmitted_Topics(t *testing.T) {
	evt := AppointmentSubmitted{Appointment: domain.Appointment{ShopID: "shop"}}
	require.Equal(t, []Topic{"shop:shop"}, evt.Topics())
}
