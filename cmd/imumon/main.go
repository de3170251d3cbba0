package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/robotalks/imu.go/pkg/framework"
	"github.com/robotalks/imu.go/pkg/mqtt"
	"github.com/robotalks/imu.go/pkg/msgs"
)

var pattern = "+" + mqtt.SampleTopicSuffix

func init() {
	mqtt.SetupFlags()
	flag.StringVar(&pattern, "topic", pattern, "Topic pattern to monitor, relative to the broker URL prefix.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	conf := mqtt.Default()
	format, err := msgs.ParseFormat(conf.Format)
	if err != nil {
		log.Fatalln(err)
	}
	broker, err := mqtt.NewBrokerFromURL(conf.BrokerURL)
	if err != nil {
		log.Fatalln(err)
	}

	broker.Sub(pattern, mqtt.Handler(func(topic string, payload []byte) {
		msg, err := format.Decode(payload)
		if err != nil {
			log.Printf("%s: bad sample: %v", topic, err)
			return
		}
		log.Printf("%s: %s", topic, msg.Frame())
	}))

	runner := framework.NewRunner().HandleSignals().Go(broker)
	if err := runner.Wait(); err != nil {
		log.Fatalln(err)
	}
}
