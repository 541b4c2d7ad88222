package commands

import (
	"errors"
	"time"
)

// inputTimeout bounds how long Poll waits for a command's arguments so a half-typed command
// cannot stall the control loop
const inputTimeout = time.Second

type Command struct {
	Flag        byte
	InputSize   uint
	Run         func(Controller, []byte) error
	Description string
}

// Controller is used to debug a running robot
type Controller interface {
	Debug()
	Verbose()
	Pause()
	Resume()
	TestIndicator()
	TestMotors()

	// I/O
	Buffered() int
	ReadByte() (byte, error)
}

var (
	DebugCommand = &Command{
		Flag:      'D',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Debug()
			return nil
		},
		Description: "Print the last loop iteration.",
	}
	VerboseCommand = &Command{
		Flag:      'V',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Verbose()
			return nil
		},
		Description: "Toggle verbose output.",
	}
	PauseCommand = &Command{
		Flag:      'P',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Pause()
			return nil
		},
		Description: "Stop the motors. The loop keeps tracking and the indicator keeps updating.",
	}
	ResumeCommand = &Command{
		Flag:      'R',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Resume()
			return nil
		},
		Description: "Let the loop drive the motors again.",
	}
	TestCommand = &Command{
		Flag:      'Z',
		InputSize: 1,
		Run: func(c Controller, b []byte) error {
			test := byte('1')
			if len(b) > 0 {
				test = b[0]
			}

			switch test {
			case '1':
				c.TestIndicator()
			case '2':
				c.TestMotors()
			default:
				return errors.New("invalid input: " + string(b))
			}

			return nil
		},
		Description: "Run test routines. Input: '1' (indicator sweep), '2' (motor wiggle).",
	}
	HelpCommand = &Command{
		Flag:        'H',
		InputSize:   0,
		Description: "Show all available commands and their descriptions.",
		Run: func(c Controller, b []byte) error {
			println("Available Commands:")
			for _, cmd := range commands {
				println(flagString(cmd.Flag) + ": " + cmd.Description)
			}
			return nil
		},
	}
)

func flagString(flag byte) string {
	if flag >= 32 && flag <= 126 {
		return string(flag)
	}
	return "0x" + string("0123456789ABCDEF"[(flag>>4)&0xF]) + string("0123456789ABCDEF"[flag&0xF])
}

var commands = []*Command{
	DebugCommand,
	VerboseCommand,
	PauseCommand,
	ResumeCommand,
	TestCommand,
}

var cmdMap = func() map[byte]*Command {
	m := map[byte]*Command{
		HelpCommand.Flag: HelpCommand,
	}
	for _, cmd := range commands {
		m[cmd.Flag] = cmd
	}
	return m
}()

// Poll runs at most one command if one is waiting on the console. It returns right away when
// nothing is buffered, so it can be called after every loop iteration
func Poll(c Controller) {
	if c.Buffered() == 0 {
		return
	}

	cmdIn, err := c.ReadByte()
	if err != nil {
		return
	}

	cmd, ok := cmdMap[cmdIn]
	if !ok {
		return
	}

	in, err := readInput(c, cmd.InputSize)
	if err != nil {
		println("error:", err.Error())
		return
	}

	err = cmd.Run(c, in)
	if err != nil {
		println("error:", err.Error())
	}
}

func readInput(c Controller, size uint) ([]byte, error) {
	in := make([]byte, size)
	deadline := time.Now().Add(inputTimeout)
	for i := 0; i < int(size); {
		if time.Now().After(deadline) {
			return nil, errors.New("timed out waiting for input")
		}
		if c.Buffered() == 0 {
			time.Sleep(time.Millisecond)
			continue
		}

		b, err := c.ReadByte()
		if err != nil {
			continue
		}

		in[i] = b
		i++
	}
	return in, nil
}
