package mqtt

import (
	"context"
	"flag"
	"os"
	"sync/atomic"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/imu.go/pkg/frame"
	"github.com/robotalks/imu.go/pkg/msgs"
)

// SampleTopicSuffix is appended to the device name to form the topic.
const SampleTopicSuffix = "/sample"

// Pub publishes payloads.
type Pub interface {
	PubWith(topic string, payload []byte, qos byte, retain bool) paho.Token
}

// Publisher publishes decoded samples of one device.
// It implements stream.SampleHandler.
type Publisher struct {
	// counters first for 64-bit atomic alignment on 32-bit platforms.
	published uint64
	failed    uint64

	Pub     Pub
	Device  string
	Format  msgs.Format
	QoS     byte
	Retain  bool
	Timeout time.Duration
}

// NewPublisher creates a Publisher with protobuf payloads.
func NewPublisher(pub Pub, device string) *Publisher {
	return &Publisher{Pub: pub, Device: device, Format: msgs.FormatProto, Timeout: time.Second}
}

// Topic returns the topic samples are published to.
func (p *Publisher) Topic() string {
	return p.Device + SampleTopicSuffix
}

// HandleSample implements stream.SampleHandler.
// Publishing failures are logged and counted, they never stop the reader.
func (p *Publisher) HandleSample(ctx context.Context, s frame.Sample) error {
	payload, err := p.Format.Encode(p.Device, s)
	if err != nil {
		return err
	}
	token := p.Pub.PubWith(p.Topic(), payload, p.QoS, p.Retain)
	if p.QoS == 0 {
		atomic.AddUint64(&p.published, 1)
		return nil
	}
	if !token.WaitTimeout(p.Timeout) {
		atomic.AddUint64(&p.failed, 1)
		glog.Warningf("publish %s: timeout", p.Topic())
		return nil
	}
	if err = token.Error(); err != nil {
		atomic.AddUint64(&p.failed, 1)
		glog.Warningf("publish %s: %v", p.Topic(), err)
		return nil
	}
	atomic.AddUint64(&p.published, 1)
	return nil
}

// Counts returns the number of published and failed samples.
func (p *Publisher) Counts() (published, failed uint64) {
	return atomic.LoadUint64(&p.published), atomic.LoadUint64(&p.failed)
}

// Config provides options for MQTT publishing.
type Config struct {
	// BrokerURL e.g. mqtt://host:port/topic-prefix, empty disables MQTT.
	BrokerURL string
	Format    string
	QoS       int
	Retain    bool
}

var defaultConfig = Config{
	BrokerURL: "mqtt://localhost:1883/imu/",
	Format:    string(msgs.FormatProto),
}

func init() {
	if val, ok := os.LookupEnv("IMU_MQTT_URL"); ok {
		defaultConfig.BrokerURL = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.BrokerURL, "mqtt", defaultConfig.BrokerURL, "MQTT broker URL, empty to disable.")
	flag.StringVar(&defaultConfig.Format, "format", defaultConfig.Format, "Sample payload format: proto or json.")
	flag.IntVar(&defaultConfig.QoS, "qos", defaultConfig.QoS, "MQTT QoS for samples.")
	flag.BoolVar(&defaultConfig.Retain, "retain", defaultConfig.Retain, "Retain the last sample on the broker.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewPublisher creates the broker and a publisher for device.
// The broker still needs to be connected, e.g. by running it.
func (c *Config) NewPublisher(device string) (*Broker, *Publisher, error) {
	format, err := msgs.ParseFormat(c.Format)
	if err != nil {
		return nil, nil, err
	}
	broker, err := NewBrokerFromURL(c.BrokerURL)
	if err != nil {
		return nil, nil, err
	}
	pub := NewPublisher(broker, device)
	pub.Format, pub.QoS, pub.Retain = format, byte(c.QoS), c.Retain
	return broker, pub, nil
}
