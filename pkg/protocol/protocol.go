// Package protocol implements the line protocol spoken over the daemon's
// control-plane Unix socket (SPEC_FULL.md §4.13): playback and authoring
// commands, parsed from a single line of text, and a JSON response.
package protocol

import (
	"encoding/json"
	"strings"
)

// Command is a single parsed line of the control protocol.
type Command struct {
	Type string            `json:"type"`
	Args map[string]string `json:"args,omitempty"`
}

// Response is what the daemon sends back for a Command.
type Response struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// Status is the daemon's current transport/show snapshot (spec.md §6).
type Status struct {
	CurrentTime     float64 `json:"current_time"`
	IsPlaying       bool    `json:"is_playing"`
	Bpm             float64 `json:"bpm"`
	BeatsPerBar     uint32  `json:"beats_per_bar"`
	PrimarySequence string  `json:"primary_sequence"`
	Version         string  `json:"version"`
}

// Protocol commands (spec.md §6's playback and authoring commands).
const (
	CmdStatus         = "STATUS"
	CmdPlay           = "PLAY"
	CmdPause          = "PAUSE"
	CmdSeek           = "SEEK"
	CmdSetBpm         = "SET_BPM"
	CmdSetBeatsPerBar = "SET_BEATS_PER_BAR"
	CmdSetPrimary     = "SET_PRIMARY"
	CmdAddEffect      = "ADD_EFFECT"
	CmdRemove         = "REMOVE"
)

// ParseCommand parses one line of text into a Command. Commands taking a
// single positional argument (SEEK, SET_BPM, SET_BEATS_PER_BAR,
// SET_PRIMARY, ADD_EFFECT, REMOVE) carry it under Args["value"].
func ParseCommand(text string) (*Command, error) {
	text = strings.TrimSpace(text)
	parts := strings.SplitN(text, ":", 2)

	cmd := &Command{
		Type: strings.ToUpper(parts[0]),
		Args: make(map[string]string),
	}

	if len(parts) > 1 {
		cmd.Args["value"] = parts[1]
	}

	return cmd, nil
}

// String converts a Response to its JSON wire form.
func (r *Response) String() string {
	data, _ := json.Marshal(r)
	return string(data)
}

// NewSuccessResponse creates a successful response.
func NewSuccessResponse(data map[string]interface{}) *Response {
	return &Response{Success: true, Data: data}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(err string) *Response {
	return &Response{Success: false, Error: err}
}
