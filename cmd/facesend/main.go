// facesend writes fake vision sensor frames to a serial port so the robot or the bench can be
// exercised without a camera
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calvinmclean/chocorobo/control"
	"github.com/calvinmclean/chocorobo/controller"
)

func main() {
	cfg, err := controller.NewConfigFromEnv()
	if err != nil {
		panic(err)
	}

	var interval time.Duration
	var faceWidth, step int
	flag.StringVar(&cfg.SerialPort, "port", cfg.SerialPort, "Serial port to write frames to. Defaults to the first USB serial port")
	flag.IntVar(&cfg.BaudRate, "baud", cfg.BaudRate, "Serial baud rate")
	flag.DurationVar(&interval, "interval", 100*time.Millisecond, "Time between frames")
	flag.IntVar(&faceWidth, "face-width", 240, "Width of the fake face")
	flag.IntVar(&step, "step", 20, "How far the face moves between frames")
	flag.Parse()

	if interval <= 0 {
		panic(fmt.Errorf("%w: got %v", controller.ErrInvalidInterval, interval))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	port, err := controller.OpenPort(cfg)
	if err != nil {
		panic(err)
	}
	defer port.Close()

	log.Printf("sending a face sweep every %v", interval)

	sweep := controller.NewSweep(control.DefaultConfig().SensorWidth, faceWidth, step)
	err = controller.NewSender(port, sweep, interval).Run(ctx)
	if err != nil {
		panic(err)
	}
}
