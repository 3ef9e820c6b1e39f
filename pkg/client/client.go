// Package client implements a thin Unix-socket client for the control
// protocol (SPEC_FULL.md §4.13), used by cmd/lumenctl and by cmd/lumenshow
// for one-off queries against a running daemon.
package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/dougsko/lumenshow/pkg/protocol"
)

// SocketClient represents a client connection to the daemon's control socket.
type SocketClient struct {
	socketPath string
	timeout    time.Duration
}

// NewSocketClient creates a new socket client
func NewSocketClient(socketPath string) *SocketClient {
	return &SocketClient{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// SendCommand sends a command and returns the response
func (c *SocketClient) SendCommand(cmd string) (*protocol.Response, error) {
	// Connect to Unix socket
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	// Set read/write timeout
	conn.SetDeadline(time.Now().Add(c.timeout))

	// Send command
	_, err = conn.Write([]byte(cmd + "\n"))
	if err != nil {
		return nil, fmt.Errorf("send error: %w", err)
	}

	// Read response
	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		return nil, fmt.Errorf("no response received")
	}

	responseText := scanner.Text()
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	// Parse JSON response
	var response protocol.Response
	if err := json.Unmarshal([]byte(responseText), &response); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return &response, nil
}

// GetStatus gets the current daemon status
func (c *SocketClient) GetStatus() (*protocol.Status, error) {
	resp, err := c.SendCommand(protocol.CmdStatus)
	if err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, fmt.Errorf("status error: %s", resp.Error)
	}

	// Extract status from response
	statusData, ok := resp.Data["status"]
	if !ok {
		return nil, fmt.Errorf("status not found in response")
	}

	// Convert to JSON and back to parse properly
	statusJSON, _ := json.Marshal(statusData)
	var status protocol.Status
	if err := json.Unmarshal(statusJSON, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status: %w", err)
	}

	return &status, nil
}

// Play starts or resumes playback of the primary sequence.
func (c *SocketClient) Play() error {
	return c.simpleCommand(protocol.CmdPlay)
}

// Pause stops playback at the current position.
func (c *SocketClient) Pause() error {
	return c.simpleCommand(protocol.CmdPause)
}

// Seek jumps playback to the given time in seconds.
func (c *SocketClient) Seek(seconds float64) error {
	return c.simpleCommand(fmt.Sprintf("%s:%g", protocol.CmdSeek, seconds))
}

// SetBpm sets the tempo of the playback clock.
func (c *SocketClient) SetBpm(bpm float64) error {
	return c.simpleCommand(fmt.Sprintf("%s:%g", protocol.CmdSetBpm, bpm))
}

// SetBeatsPerBar sets the time signature's beat count.
func (c *SocketClient) SetBeatsPerBar(beats uint32) error {
	return c.simpleCommand(fmt.Sprintf("%s:%d", protocol.CmdSetBeatsPerBar, beats))
}

// SetPrimary sets the sequence driving the playback clock, by handle string.
func (c *SocketClient) SetPrimary(handle string) error {
	return c.simpleCommand(fmt.Sprintf("%s:%s", protocol.CmdSetPrimary, handle))
}

// AddEffect submits a raw JSON-encoded effect authoring request.
func (c *SocketClient) AddEffect(effectJSON string) (*protocol.Response, error) {
	resp, err := c.SendCommand(fmt.Sprintf("%s:%s", protocol.CmdAddEffect, effectJSON))
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("add effect error: %s", resp.Error)
	}
	return resp, nil
}

// Remove deletes a handle-addressed sequence or effect.
func (c *SocketClient) Remove(handle string) error {
	return c.simpleCommand(fmt.Sprintf("%s:%s", protocol.CmdRemove, handle))
}

// IsConnected tests if the daemon is reachable.
func (c *SocketClient) IsConnected() bool {
	_, err := c.SendCommand(protocol.CmdStatus)
	return err == nil
}

func (c *SocketClient) simpleCommand(cmd string) error {
	resp, err := c.SendCommand(cmd)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("command error: %s", resp.Error)
	}
	return nil
}
