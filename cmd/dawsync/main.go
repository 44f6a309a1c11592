// Command dawsync receives MIDI clock, transport, Song Position and MTC
// from a DAW and shows the live sync state.
//
// Usage:
//
//	dawsync            -- opens input[0] (or the first auto-connect input)
//	dawsync 2          -- opens input[2]
//	dawsync -debug 2   -- also writes a debug log under ~/.config/midisync
//
// Enable MIDI clock output in the DAW and route it at this client.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"midisync/config"
	"midisync/debug"
	"midisync/stream"
	"midisync/theme"
	"midisync/transport"
	"midisync/tui"
)

func main() {
	debugFlag := flag.Bool("debug", false, "write a debug log")
	flag.Parse()

	if *debugFlag {
		debug.Enable()
		defer debug.Disable()
	}
	defer gomidi.CloseDriver()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	ins := gomidi.GetInPorts()
	if len(ins) == 0 {
		fmt.Println("No MIDI input devices found.")
		return
	}

	port, err := pickInput(ins, cfg, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("MIDI Inputs:")
	for i, p := range ins {
		marker := ""
		if p == port {
			marker = "  <-- will open"
		}
		fmt.Printf("  [%d] %s%s\n", i, p.String(), marker)
	}
	fmt.Println()

	errs := make(chan error, 8)
	in, err := stream.OpenInput(port, cfg.SysExBufferSize, func(err error) {
		select {
		case errs <- err:
		default:
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	tr := transport.New()
	go func() {
		for msg := range in.Messages() {
			tr.Handle(msg)
		}
	}()

	m := tui.NewModel(tr, theme.Load(), port.String(), errs)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// pickInput resolves the port to open: an explicit index argument wins,
// then the first configured auto-connect port that is present, then
// input 0.
func pickInput(ins []drivers.In, cfg *config.Config, args []string) (drivers.In, error) {
	if len(args) > 0 {
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("bad port index %q", args[0])
		}
		if idx < 0 || idx >= len(ins) {
			return nil, fmt.Errorf("port index %d out of range (0..%d)", idx, len(ins)-1)
		}
		return ins[idx], nil
	}

	for _, pc := range cfg.AutoConnectInputs() {
		for _, p := range ins {
			if p.String() == pc.PortName {
				return p, nil
			}
		}
	}
	return ins[0], nil
}
