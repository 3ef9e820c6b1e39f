package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dougsko/lumenshow/pkg/client"
)

var (
	socketPath = flag.String("socket", "/tmp/lumenshow.sock", "Unix socket path")
	command    = flag.String("cmd", "", "Command to send (e.g., 'STATUS', 'SEEK:12.5')")
)

func main() {
	flag.Parse()

	if *socketPath == "" {
		fmt.Fprintf(os.Stderr, "Socket path is required\n")
		os.Exit(1)
	}

	if *command == "" {
		if len(flag.Args()) > 0 {
			*command = strings.Join(flag.Args(), " ")
		} else {
			showHelp()
			return
		}
	}

	c := client.NewSocketClient(*socketPath)

	response, err := c.SendCommand(*command)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", response.String())
}

func showHelp() {
	fmt.Println("lumenctl - lumenshow daemon control tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s [options] <command>\n", os.Args[0])
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -socket <path>    Unix socket path (default: /tmp/lumenshow.sock)")
	fmt.Println("  -cmd <command>    Command to send")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  STATUS                       Get clock and primary-sequence status")
	fmt.Println("  PLAY                         Resume playback")
	fmt.Println("  PAUSE                        Halt playback")
	fmt.Println("  SEEK:<seconds>                Jump to a time in seconds")
	fmt.Println("  SET_BPM:<bpm>                 Set the clock tempo")
	fmt.Println("  SET_BEATS_PER_BAR:<beats>     Set the time signature")
	fmt.Println("  SET_PRIMARY:<handle>          Set the primary sequence")
	fmt.Println("  ADD_EFFECT:<json>             Author a new effect")
	fmt.Println("  REMOVE:<handle>               Delete a sequence or effect")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s STATUS\n", os.Args[0])
	fmt.Printf("  %s SEEK:30\n", os.Args[0])
	fmt.Printf("  echo 'STATUS' | nc -U /tmp/lumenshow.sock\n")
}
