package broker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"activity-ledger/internal/pkg/config"
	"activity-ledger/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

var errPublisherClosed = errs.New("publisher closed")

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// session is one connection plus the channel published on. closed receives
// the reason when the broker drops either of them.
type session struct {
	ch     amqpChannel
	conn   io.Closer
	closed <-chan *amqp.Error
}

func (s *session) close() {
	_ = s.ch.Close()
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

type dialer func() (*session, error)

// Publisher sends outbox payloads to a durable topic exchange. The routing
// key is the event topic, so consumers bind on patterns like "booking.*".
// A dropped connection is redialled on the next Publish.
type Publisher struct {
	mu       sync.Mutex
	dial     dialer
	sess     *session
	exchange string
	closed   bool
}

func NewPublisher(cfg config.BrokerConfig) (*Publisher, error) {
	return newPublisher(cfg.Exchange, amqpDialer(cfg))
}

func newPublisher(exchange string, dial dialer) (*Publisher, error) {
	p := &Publisher{dial: dial, exchange: exchange}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connectLocked(); err != nil {
		return nil, err
	}
	slog.Info("rabbitmq publisher ready", "exchange", exchange)
	return p, nil
}

func amqpDialer(cfg config.BrokerConfig) dialer {
	return func() (*session, error) {
		conn, err := amqp.Dial(cfg.URL)
		if err != nil {
			return nil, errs.Wrap(err, "dial rabbitmq")
		}
		ch, err := conn.Channel()
		if err != nil {
			_ = conn.Close()
			return nil, errs.Wrap(err, "open channel")
		}
		if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, errs.Wrapf(err, "declare exchange %s", cfg.Exchange)
		}
		// Channel close also fires when the connection goes away.
		closed := ch.NotifyClose(make(chan *amqp.Error, 1))
		return &session{ch: ch, conn: conn, closed: closed}, nil
	}
}

// Publish is safe for concurrent use; amqp channels are not.
func (p *Publisher) Publish(ctx context.Context, routingKey, messageID string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errPublisherClosed
	}
	if err := p.connectLocked(); err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	err := p.sess.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
	if err != nil && (errors.Is(err, amqp.ErrClosed) || p.sess.ch.IsClosed()) {
		slog.Warn("rabbitmq channel lost, reconnecting", "topic", routingKey, "error", err.Error())
		p.dropLocked()
		if err := p.connectLocked(); err != nil {
			return err
		}
		err = p.sess.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
	}
	if err != nil {
		return errs.Wrapf(err, "publish %s", routingKey)
	}
	return nil
}

// connectLocked reuses the open session or dials a new one.
func (p *Publisher) connectLocked() error {
	if p.sess != nil && !p.sess.ch.IsClosed() {
		return nil
	}
	p.dropLocked()

	sess, err := p.dial()
	if err != nil {
		return err
	}
	p.sess = sess
	if sess.closed != nil {
		go p.watch(sess)
	}
	return nil
}

func (p *Publisher) dropLocked() {
	if p.sess != nil {
		p.sess.close()
		p.sess = nil
	}
}

// watch forgets a session the broker closed so the next Publish redials.
func (p *Publisher) watch(sess *session) {
	reason, ok := <-sess.closed
	if !ok || reason == nil {
		return
	}
	slog.Warn("rabbitmq channel closed by broker", "code", reason.Code, "reason", reason.Reason)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sess == sess {
		p.dropLocked()
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.sess == nil {
		return nil
	}
	err := p.sess.ch.Close()
	if p.sess.conn != nil {
		err = p.sess.conn.Close()
	}
	p.sess = nil
	if errors.Is(err, amqp.ErrClosed) {
		return nil
	}
	return err
}

// LogPublisher stands in when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, routingKey, messageID string, body []byte) error {
	slog.Info("outbox event", "topic", routingKey, "message_id", messageID, "bytes", len(body))
	return nil
}
