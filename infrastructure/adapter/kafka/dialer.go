package kafka

import (
	"crypto/tls"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// Config is the connection and topic setup shared by producer and consumer.
type Config struct {
	Brokers  []string
	Topic    string
	GroupID  string
	Username string
	Password string
	TLS      bool
}

func (c Config) transport() *kafka.Transport {
	t := &kafka.Transport{}
	if c.Username != "" {
		t.SASL = plain.Mechanism{Username: c.Username, Password: c.Password}
	}
	if c.TLS {
		t.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return t
}

func (c Config) dialer() *kafka.Dialer {
	d := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	if c.Username != "" {
		d.SASLMechanism = plain.Mechanism{Username: c.Username, Password: c.Password}
	}
	if c.TLS {
		d.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return d
}
