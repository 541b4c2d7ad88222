package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fyne.io/fyne/v2/app"

	"github.com/calvinmclean/chocorobo/control"
	"github.com/calvinmclean/chocorobo/controller"
	"github.com/calvinmclean/chocorobo/ui"
)

func main() {
	cfg, err := controller.NewConfigFromEnv()
	if err != nil {
		panic(err)
	}

	var replayPath string
	var tick time.Duration
	var list bool
	flag.StringVar(&cfg.SerialPort, "port", cfg.SerialPort, "Serial port the vision sensor is attached to. Defaults to the first USB serial port")
	flag.IntVar(&cfg.BaudRate, "baud", cfg.BaudRate, "Serial baud rate")
	flag.DurationVar(&cfg.ReadTimeout, "timeout", cfg.ReadTimeout, "Frame read timeout")
	flag.StringVar(&cfg.RecordPath, "record", cfg.RecordPath, "Write received frames to this file")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Print every decoded frame and state change")
	flag.StringVar(&replayPath, "replay", "", "Replay a recorded capture instead of reading the serial port")
	flag.DurationVar(&tick, "tick", controller.DefaultReadTimeout, "Read timeout to simulate when replaying")
	flag.BoolVar(&list, "list", false, "List USB serial ports and exit")
	flag.Parse()

	switch {
	case list:
		runList()
	case replayPath != "":
		runReplay(replayPath, tick)
	case os.Getenv("ENABLE_UI") == "true":
		runUI(cfg)
	default:
		runCLI(cfg)
	}
}

func runList() {
	ports, err := controller.GetSerialPorts()
	if err != nil {
		panic(err)
	}
	for _, p := range ports {
		fmt.Println(controller.PortString(p))
	}
}

func runReplay(path string, tick time.Duration) {
	f, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	frames, err := controller.ParseCapture(f)
	if err != nil {
		panic(err)
	}

	summary, err := controller.Replay(control.DefaultConfig(), frames, tick)
	if err != nil {
		panic(err)
	}

	err = summary.Write(os.Stdout)
	if err != nil {
		panic(err)
	}
}

func runUI(cfg controller.Config) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c, err := controller.NewFromConfig(cfg, control.DefaultConfig())
	if err != nil {
		panic(err)
	}
	defer c.Close()

	robotUI := ui.NewRobotUI(app.New())
	c.AddView(robotUI)

	go func() {
		err := c.Run(ctx, os.Stdout)
		if err != nil {
			panic(err)
		}
	}()

	robotUI.Run(ctx)
	cancel()
}

func runCLI(cfg controller.Config) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c, err := controller.NewFromConfig(cfg, control.DefaultConfig())
	if err != nil {
		panic(err)
	}
	defer c.Close()

	err = c.Run(ctx, os.Stdout)
	if err != nil {
		panic(err)
	}
}
