package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"midisync/config"
	"midisync/debug"
	"midisync/stream"
	"midisync/wire"
)

func main() {
	defer gomidi.CloseDriver()

	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "monitor":
		monitor(os.Args[2:])
	case "send":
		sendNote(os.Args[2:])
	case "sysex":
		identityRequest(os.Args[2:])
	case "spp":
		sendSongPosition(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list              - List all MIDI ports")
	fmt.Println("  monitor [in]      - Print decoded messages from input port")
	fmt.Println("  send [out] [note] - Send a note on/off pair")
	fmt.Println("  sysex [out] [in]  - Send an identity request, print the reply")
	fmt.Println("  spp [out] [beats] - Send a Song Position Pointer")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! The MIDI backend is hung.")
	}
}

func monitor(args []string) {
	in := inPort(args, 0)
	if in == nil {
		return
	}

	cfg, _ := config.Load()
	s, err := stream.OpenInput(in, cfg.SysExBufferSize, func(err error) {
		fmt.Printf("  !! %v\n", err)
	})
	if err != nil {
		fmt.Printf("Error opening input: %v\n", err)
		return
	}
	defer s.Close()

	fmt.Printf("Monitoring %q, Ctrl+C to exit...\n\n", in.String())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case msg := <-s.Messages():
			printMessage(msg)
		case <-sig:
			fmt.Println("\nStopping...")
			return
		}
	}
}

func printMessage(msg wire.Message) {
	switch {
	case msg.Kind == wire.SysEx:
		fmt.Printf("[%10.3f] SysEx %d bytes: %s\n",
			msg.Timestamp, len(msg.SysEx), debug.Hex(msg.SysEx))
	case msg.Kind == wire.SongPosition:
		fmt.Printf("[%10.3f] SongPosition beat %d (QN %.2f)\n",
			msg.Timestamp, msg.Beats, wire.QuarterNotes(msg.Beats))
	case msg.Kind.IsChannel():
		fmt.Printf("[%10.3f] %-15s ch %-2d data %d %d\n",
			msg.Timestamp, msg.Kind, msg.Channel, msg.Data[0], msg.Data[1])
	default:
		fmt.Printf("[%10.3f] %s\n", msg.Timestamp, msg.Kind)
	}
}

func sendNote(args []string) {
	out := outPort(args, 0)
	if out == nil {
		return
	}

	note := uint8(60)
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			note = uint8(n)
		}
	}

	o, err := stream.OpenOutput(out, 0)
	if err != nil {
		fmt.Printf("Error opening output: %v\n", err)
		return
	}

	fmt.Printf("Sending note %d to %q\n", note, out.String())
	if err := o.Send(wire.Message{Kind: wire.NoteOn, Data: [2]uint8{note, 100}}); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	time.Sleep(200 * time.Millisecond)
	if err := o.Send(wire.Message{Kind: wire.NoteOff, Data: [2]uint8{note, 0}}); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Done!")
}

// identityRequest sends the universal identity request and prints
// whatever SysEx comes back within two seconds.
func identityRequest(args []string) {
	out := outPort(args, 0)
	if out == nil {
		return
	}
	in := inPort(args, 1)
	if in == nil {
		return
	}

	cfg, _ := config.Load()
	s, err := stream.OpenInput(in, cfg.SysExBufferSize, nil)
	if err != nil {
		fmt.Printf("Error opening input: %v\n", err)
		return
	}
	defer s.Close()

	o, err := stream.OpenOutput(out, cfg.SysExChunkSize)
	if err != nil {
		fmt.Printf("Error opening output: %v\n", err)
		return
	}

	fmt.Printf("Sending identity request to %q...\n", out.String())
	if err := o.SendSysEx([]byte{0x7E, 0x7F, 0x06, 0x01}); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-s.Messages():
			if msg.Kind != wire.SysEx {
				continue
			}
			fmt.Printf("Reply: %s\n", debug.Hex(msg.SysEx))
			return
		case <-deadline:
			fmt.Println("No reply within 2 seconds")
			return
		}
	}
}

func sendSongPosition(args []string) {
	out := outPort(args, 0)
	if out == nil {
		return
	}

	beats := uint16(0)
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			beats = uint16(n)
		}
	}

	o, err := stream.OpenOutput(out, 0)
	if err != nil {
		fmt.Printf("Error opening output: %v\n", err)
		return
	}

	fmt.Printf("Sending SPP beat %d (QN %.2f) to %q\n",
		beats, wire.QuarterNotes(beats), out.String())
	if err := o.Send(wire.Message{Kind: wire.SongPosition, Beats: beats}); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Done!")
}

func inPort(args []string, pos int) drivers.In {
	ins := gomidi.GetInPorts()
	if len(ins) == 0 {
		fmt.Println("No MIDI input devices found.")
		return nil
	}
	idx := 0
	if len(args) > pos {
		if n, err := strconv.Atoi(args[pos]); err == nil {
			idx = n
		}
	}
	if idx < 0 || idx >= len(ins) {
		fmt.Printf("Input index %d out of range (0..%d)\n", idx, len(ins)-1)
		return nil
	}
	return ins[idx]
}

func outPort(args []string, pos int) drivers.Out {
	outs := gomidi.GetOutPorts()
	if len(outs) == 0 {
		fmt.Println("No MIDI output devices found.")
		return nil
	}
	idx := 0
	if len(args) > pos {
		if n, err := strconv.Atoi(args[pos]); err == nil {
			idx = n
		}
	}
	if idx < 0 || idx >= len(outs) {
		fmt.Printf("Output index %d out of range (0..%d)\n", idx, len(outs)-1)
		return nil
	}
	return outs[idx]
}
