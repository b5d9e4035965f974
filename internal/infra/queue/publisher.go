package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"time"

	"dorm-services/internal/pkg/clock"
	"dorm-services/internal/pkg/errs"
	"dorm-services/internal/usecase/commands"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	publishTimeout = 3 * time.Second
	// redialBackoff keeps a dead broker from costing every request a full dial.
	redialBackoff = 5 * time.Second
)

var ErrBrokerUnavailable = errs.New("rabbitmq unavailable")

// AMQPPublisher writes reservation events to a durable queue on the default exchange.
// The connection is opened lazily and reopened after a failure. Every Publish, the
// dial included, is bounded by publishTimeout or the caller's deadline, whichever is sooner.
type AMQPPublisher struct {
	url   string
	queue string
	clock clock.Clock

	sem      chan struct{} // guards the fields below; acquired with the caller's ctx
	conn     *amqp.Connection
	ch       *amqp.Channel
	nextDial time.Time
}

func NewAMQPPublisher(url, queue string, clk clock.Clock) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: queue, clock: clk, sem: make(chan struct{}, 1)}
}

func (p *AMQPPublisher) Publish(ctx context.Context, event commands.ReservationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "marshal reservation event")
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.lock(ctx); err != nil {
		return err
	}
	defer p.unlock()

	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    p.clock.Now().UTC(),
			Type:         string(event.Type),
			Body:         body,
		},
	)
	if err != nil {
		p.reset()
		return errs.Wrap(err, "publish reservation event")
	}
	return nil
}

func (p *AMQPPublisher) lock(ctx context.Context) error {
	select {
	case p.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "wait for rabbitmq publisher")
	}
}

func (p *AMQPPublisher) unlock() {
	<-p.sem
}

// channel must be called with the lock held.
func (p *AMQPPublisher) channel(ctx context.Context) (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	if now := p.clock.Now(); now.Before(p.nextDial) {
		return nil, errs.Wrapf(ErrBrokerUnavailable, "retry after %s", p.nextDial.Sub(now).Round(time.Millisecond))
	}

	conn, ch, err := p.connect(ctx)
	if err != nil {
		p.nextDial = p.clock.Now().Add(redialBackoff)
		return nil, errs.Mark(err, ErrBrokerUnavailable)
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

// connect bounds the TCP dial and AMQP handshake by the ctx deadline. The channel
// and queue declare RPCs take no context, so the connection is closed under them
// when ctx ends first.
func (p *AMQPPublisher) connect(ctx context.Context) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.DialConfig(p.url, amqp.Config{Locale: "en_US", Dial: dialContext(ctx)})
	if err != nil {
		return nil, nil, errs.Wrap(err, "dial rabbitmq")
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })

	ch, err := conn.Channel()
	if err != nil {
		stop()
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "open rabbitmq channel")
	}
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		stop()
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "declare rabbitmq queue")
	}

	if !stop() {
		return nil, nil, errs.Wrap(ctx.Err(), "open rabbitmq channel")
	}
	return conn, ch, nil
}

// dialContext applies the ctx deadline to the socket as well, which bounds the
// handshake; amqp091 clears the deadline once the connection is open.
func dialContext(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		var d net.Dialer
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		if deadline, ok := ctx.Deadline(); ok {
			if err := conn.SetDeadline(deadline); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		return conn, nil
	}
}

func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close waits for an in-flight Publish, which is itself bounded by publishTimeout.
func (p *AMQPPublisher) Close() error {
	p.sem <- struct{}{}
	defer p.unlock()
	p.reset()
	return nil
}

// LogPublisher is used when AMQP_URL is empty; events only reach the log.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (LogPublisher) Publish(_ context.Context, event commands.ReservationEvent) error {
	slog.Debug("reservation event",
		"type", string(event.Type),
		"reservation_id", event.ReservationID.String(),
		"status", event.Status)
	return nil
}
