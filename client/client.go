// Package client is the Go caller side of barber.v1.BookingService.
// Every call carries the bearer token of one identity.
package client

import (
	pb "barber-lab/api/booking/v1"
	"context"
	"errors"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type Client struct {
	booking pb.BookingServiceClient
	token   string
}

func New(conn grpc.ClientConnInterface, token string) *Client {
	return &Client{booking: pb.NewBookingServiceClient(conn), token: token}
}

func (c *Client) withToken(ctx context.Context) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.token)
}

func (c *Client) Send(ctx context.Context, to, content string) (*pb.Message, error) {
	return c.booking.Send(c.withToken(ctx), &pb.SendRequest{To: to, Content: content})
}

func (c *Client) Book(ctx context.Context, req *pb.SubmitAppointmentRequest) (*pb.Appointment, error) {
	return c.booking.SubmitAppointment(c.withToken(ctx), req)
}

func (c *Client) Appointments(ctx context.Context) ([]*pb.Appointment, error) {
	res, err := c.booking.ListAppointments(c.withToken(ctx), &pb.ListAppointmentsRequest{})
	if err != nil {
		return nil, err
	}
	return res.Appointments, nil
}

// Conversation calls fn for every message of the channel with counterparty
// until ctx is canceled, the server ends the stream or fn returns an error.
func (c *Client) Conversation(ctx context.Context, counterparty string, fn func(*pb.ChannelEvent) error) error {
	stream, err := c.booking.OpenChannel(c.withToken(ctx), &pb.OpenChannelRequest{Counterparty: counterparty})
	if err != nil {
		return err
	}
	return consume(stream, fn)
}

func (c *Client) Directory(ctx context.Context, fn func(*pb.DirectoryEvent) error) error {
	stream, err := c.booking.OpenDirectory(c.withToken(ctx), &pb.OpenDirectoryRequest{})
	if err != nil {
		return err
	}
	return consume(stream, fn)
}

func (c *Client) WatchAppointments(ctx context.Context, fn func(*pb.Appointment) error) error {
	stream, err := c.booking.WatchAppointments(c.withToken(ctx), &pb.WatchAppointmentsRequest{})
	if err != nil {
		return err
	}
	return consume(stream, fn)
}

func consume[T any](stream grpc.ServerStreamingClient[T], fn func(*T) error) error {
	for {
		msg, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(msg); err != nil {
			return err
		}
	}
}
