package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/imu.go/pkg/env"
	"github.com/robotalks/imu.go/pkg/frame"
	"github.com/robotalks/imu.go/pkg/framework"
	"github.com/robotalks/imu.go/pkg/mqtt"
	"github.com/robotalks/imu.go/pkg/serialport"
	"github.com/robotalks/imu.go/pkg/stream"
	"github.com/robotalks/imu.go/pkg/websocket"
)

var name string

func init() {
	flag.StringVar(&name, "name", name, "Device name used in topics and samples, defaults to a machine ID based name.")
	serialport.SetupFlags()
	stream.SetupFlags()
	mqtt.SetupFlags()
	websocket.SetupFlags()
}

func main() {
	flag.Parse()

	opts := serialport.Default()
	if _, err := opts.Normalize(); err != nil {
		log.Fatalln(err)
	}
	device := env.DeviceName(name)
	reader := stream.Default().NewReader(device, func() (frame.Source, error) {
		return opts.Open()
	})

	runner := framework.NewRunner().HandleSignals()
	if conf := mqtt.Default(); conf.BrokerURL != "" {
		broker, pub, err := conf.NewPublisher(device)
		if err != nil {
			log.Fatalln(err)
		}
		reader.AddHandlers(pub)
		runner.Go(broker)
		glog.Infof("publishing samples to %s%s", conf.BrokerURL, pub.Topic())
	}
	if conf := websocket.Default(); conf.Addr != "" {
		hub := websocket.NewHub(device)
		reader.AddHandlers(hub)
		runner.Go(conf.NewServer(hub))
	}

	runner.Go(reader)
	if err := runner.Wait(); err != nil {
		glog.Errorf("imud: %v", err)
		glog.Flush()
		log.Fatalln(err)
	}
	glog.Flush()
}
