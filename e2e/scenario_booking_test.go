package e2e

import (
	pb "barber-lab/api/booking/v1"
	"barber-lab/client"
	"barber-lab/domain"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BookingSuite struct {
	BaseGrpcSuite
}

func TestBookingSuite(t *testing.T) {
	suite.Run(t, new(BookingSuite))
}

// identities are fresh per run so a long lived store does not leak into assertions.
func identities() (domain.Identity, domain.Identity) {
	run := uuid.NewString()[:8]
	return domain.Identity("shop-" + run), domain.Identity("customer-" + run)
}

func (s *BookingSuite) TestCustomer_Message_Reaches_Open_Shop_Conversation() {
	shop, customer := identities()
	events := make(chan *pb.ChannelEvent, 10)

	s.As(shop, func(ctx context.Context, c *client.Client) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			_ = c.Conversation(ctx, string(customer), func(evt *pb.ChannelEvent) error {
				events <- evt
				return nil
			})
		}()
		// Let the stream subscribe before sending
		time.Sleep(200 * time.Millisecond)

		s.As(customer, func(ctx context.Context, c *client.Client) {
			_, err := c.Send(ctx, string(shop), "Hello")
			s.Require().NoError(err)
		})

		select {
		case evt := <-events:
			s.True(evt.Live)
			s.Equal("Hello", evt.Message.Content)
			s.Equal(string(customer), evt.Message.SenderID)
		case <-time.After(5 * time.Second):
			s.Fail("message never reached the shop")
		}
	})
}

func (s *BookingSuite) TestBooking_Is_Listed_For_The_Shop_Only() {
	shop, customer := identities()

	s.As(customer, func(ctx context.Context, c *client.Client) {
		_, err := c.Book(ctx, &pb.SubmitAppointmentRequest{
			ShopID: string(shop), Name: "Jo", Phone: "555-0199", Service: "Fade", Time: "Sat 10:00",
		})
		s.Require().NoError(err)

		appointments, err := c.Appointments(ctx)
		s.Require().NoError(err)
		s.Empty(appointments)
	})

	s.As(shop, func(ctx context.Context, c *client.Client) {
		appointments, err := c.Appointments(ctx)
		s.Require().NoError(err)
		s.Require().Len(appointments, 1)
		s.Equal("Fade", appointments[0].Service)
		s.Equal(string(customer), appointments[0].CustomerID)
	})
}
