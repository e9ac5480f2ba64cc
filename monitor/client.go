// This file is part of Gopher6502.
//
// Gopher6502 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher6502 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher6502.  If not, see <https://www.gnu.org/licenses/>.
package monitor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/jetsetilly/gopher6502/curated"
)

// Client error patterns.
const (
	ClientError    = "monitor: %v"
	UnknownCommand = "monitor: unknown command (%s)"
	BadArgument    = "monitor: %s: bad argument (%s)"
)

// Client connects to a monitor service.
type Client struct {
	conn *grpc.ClientConn
}

// NewClient connects to the monitor service at target. Additional dial
// options can be given.
func NewClient(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, curated.Errorf(ClientError, err)
	}
	return &Client{conn: conn}, nil
}

// Close the connection.
func (cl *Client) Close() error {
	return cl.conn.Close()
}

func (cl *Client) invoke(ctx context.Context, method string, in any, out any) error {
	if err := cl.conn.Invoke(ctx, "/"+ServiceName+"/"+method, in, out); err != nil {
		return curated.Errorf(ClientError, err)
	}
	return nil
}

// Status returns the status of the CPU and the harness.
func (cl *Client) Status(ctx context.Context) (*structpb.Struct, error) {
	out := &structpb.Struct{}
	if err := cl.invoke(ctx, "Status", &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Peek returns length bytes of memory starting at address.
func (cl *Client) Peek(ctx context.Context, address uint16, length int) ([]uint8, error) {
	in, err := structpb.NewStruct(map[string]any{
		"address": float64(address),
		"length":  float64(length),
	})
	if err != nil {
		return nil, curated.Errorf(ClientError, err)
	}
	out := &wrapperspb.BytesValue{}
	if err := cl.invoke(ctx, "Peek", in, out); err != nil {
		return nil, err
	}
	return out.GetValue(), nil
}

// SetLine changes one of the CPU's input lines. The line is named as it is
// in the signals package.
func (cl *Client) SetLine(ctx context.Context, line string, state bool) error {
	in, err := structpb.NewStruct(map[string]any{
		"line":  line,
		"state": state,
	})
	if err != nil {
		return curated.Errorf(ClientError, err)
	}
	return cl.invoke(ctx, "SetLine", in, &emptypb.Empty{})
}

// Pause the CPU.
func (cl *Client) Pause(ctx context.Context) error {
	return cl.invoke(ctx, "Pause", &emptypb.Empty{}, &emptypb.Empty{})
}

// Resume the CPU.
func (cl *Client) Resume(ctx context.Context) error {
	return cl.invoke(ctx, "Resume", &emptypb.Empty{}, &emptypb.Empty{})
}

// Step the CPU. The CPU is paused afterwards.
func (cl *Client) Step(ctx context.Context) (*structpb.Struct, error) {
	out := &structpb.Struct{}
	if err := cl.invoke(ctx, "Step", &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// FormatStatus writes the fields of a status Struct, one to a line, in
// alphabetical order.
func FormatStatus(out io.Writer, s *structpb.Struct) {
	m := s.AsMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			switch k {
			case "pc":
				fmt.Fprintf(out, "%-12s %#04x\n", k, uint16(v))
			case "a", "x", "y", "sp", "status":
				fmt.Fprintf(out, "%-12s %#02x\n", k, uint8(v))
			default:
				fmt.Fprintf(out, "%-12s %d\n", k, int64(v))
			}
		default:
			fmt.Fprintf(out, "%-12s %v\n", k, v)
		}
	}
}

// the commands understood by the command line interface
const help = `status             show the CPU and harness status
peek ADDR [LEN]    show memory (hexadecimal address)
set LINE on|off    change an input line
pulse LINE         raise and lower an input line
pause              pause the CPU
resume             resume the CPU
step [N]           step the CPU N times
help               show this help
quit               close the monitor
`

// REPL reads commands from the input and writes the results to the output.
// It returns when the input is exhausted or the quit command is given.
// Errors from individual commands are written to the output and do not stop
// the REPL.
func (cl *Client) REPL(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		if tokens[0] == "quit" {
			return nil
		}

		if err := cl.command(ctx, out, tokens); err != nil {
			fmt.Fprintf(out, "%v\n", err)
		}
	}
}

func parseState(cmd string, s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "high", "1", "true":
		return true, nil
	case "off", "low", "0", "false":
		return false, nil
	}
	return false, curated.Errorf(BadArgument, cmd, s)
}

func (cl *Client) command(ctx context.Context, out io.Writer, tokens []string) error {
	cmd := tokens[0]
	args := tokens[1:]

	switch cmd {
	case "help":
		fmt.Fprint(out, help)

	case "status":
		s, err := cl.Status(ctx)
		if err != nil {
			return err
		}
		FormatStatus(out, s)

	case "peek":
		if len(args) == 0 {
			return curated.Errorf(BadArgument, cmd, "missing address")
		}
		address, err := strconv.ParseUint(strings.TrimPrefix(args[0], "$"), 16, 16)
		if err != nil {
			return curated.Errorf(BadArgument, cmd, args[0])
		}
		length := 1
		if len(args) > 1 {
			length, err = strconv.Atoi(args[1])
			if err != nil {
				return curated.Errorf(BadArgument, cmd, args[1])
			}
		}
		d, err := cl.Peek(ctx, uint16(address), length)
		if err != nil {
			return err
		}
		for i := 0; i < len(d); i += 16 {
			fmt.Fprintf(out, "%04x:", int(address)+i)
			for _, v := range d[i:min(i+16, len(d))] {
				fmt.Fprintf(out, " %02x", v)
			}
			fmt.Fprintln(out)
		}

	case "set":
		if len(args) != 2 {
			return curated.Errorf(BadArgument, cmd, strings.Join(args, " "))
		}
		state, err := parseState(cmd, args[1])
		if err != nil {
			return err
		}
		return cl.SetLine(ctx, args[0], state)

	case "pulse":
		if len(args) != 1 {
			return curated.Errorf(BadArgument, cmd, strings.Join(args, " "))
		}
		if err := cl.SetLine(ctx, args[0], true); err != nil {
			return err
		}
		return cl.SetLine(ctx, args[0], false)

	case "pause":
		return cl.Pause(ctx)

	case "resume":
		return cl.Resume(ctx)

	case "step":
		n := 1
		if len(args) > 0 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return curated.Errorf(BadArgument, cmd, args[0])
			}
		}
		var s *structpb.Struct
		for range n {
			var err error
			s, err = cl.Step(ctx)
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "%s\n", s.GetFields()["last_result"].GetStringValue())

	default:
		return curated.Errorf(UnknownCommand, cmd)
	}

	return nil
}
