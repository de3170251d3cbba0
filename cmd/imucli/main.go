package main

import (
	"github.com/robotalks/imu.go/pkg/cli/sh"
)

//go-build: CGO_ENABLED=0

func main() {
	sh.Main()
}
