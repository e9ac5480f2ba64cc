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
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/jetsetilly/gopher6502/hardware/cpu/signals"
	"github.com/jetsetilly/gopher6502/harness"
	"github.com/jetsetilly/gopher6502/logger"
)

// ServiceName is the full name of the gRPC service.
const ServiceName = "gopher6502.Monitor"

// the largest block of memory that can be requested with Peek
const maxPeek = 0x1000

// MonitorServer is the interface of the gRPC service.
type MonitorServer interface {
	Status(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Peek(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error)
	SetLine(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Pause(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Resume(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Step(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// unary builds the method description for a unary method of the service.
func unary[Req proto.Message, Resp proto.Message](name string, newReq func() Req,
	call func(MonitorServer, context.Context, Req) (Resp, error)) grpc.MethodDesc {

	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(MonitorServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(MonitorServer), ctx, req.(Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func newEmpty() *emptypb.Empty {
	return &emptypb.Empty{}
}

func newStruct() *structpb.Struct {
	return &structpb.Struct{}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MonitorServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Status", newEmpty, MonitorServer.Status),
		unary("Peek", newStruct, MonitorServer.Peek),
		unary("SetLine", newStruct, MonitorServer.SetLine),
		unary("Pause", newEmpty, MonitorServer.Pause),
		unary("Resume", newEmpty, MonitorServer.Resume),
		unary("Step", newEmpty, MonitorServer.Step),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "monitor",
}

// Bus is the part of the harness the monitor can look at.
type Bus interface {
	Peek(address uint16, length int) []uint8
	Progress() harness.Progress
}

// Lines is the part of the CPU the monitor can change.
type Lines interface {
	SetLine(line signals.Line, state bool)
}

// Server implements the MonitorServer interface.
type Server struct {
	ctl   *Controller
	bus   Bus
	lines Lines

	server *grpc.Server
}

// NewServer is the preferred method of initialisation for the Server type.
func NewServer(ctl *Controller, bus Bus, lines Lines) *Server {
	srv := &Server{
		ctl:    ctl,
		bus:    bus,
		lines:  lines,
		server: grpc.NewServer(),
	}
	srv.server.RegisterService(&serviceDesc, srv)
	return srv
}

// Serve accepts connections on the listener. It returns when Stop() is
// called or the listener fails.
func (srv *Server) Serve(lis net.Listener) error {
	logger.Logf(logger.Allow, "monitor", "listening on %s", lis.Addr())
	return srv.server.Serve(lis)
}

// Stop closes all connections and stops the server.
func (srv *Server) Stop() {
	srv.server.Stop()
}

func (srv *Server) report() (*structpb.Struct, error) {
	rep := srv.ctl.Report()
	prog := srv.bus.Progress()

	result := ""
	if rep.Result != nil {
		result = rep.Result.Error()
	}

	s, err := structpb.NewStruct(map[string]any{
		"pc":           float64(rep.State.PC),
		"a":            float64(rep.State.A),
		"x":            float64(rep.State.X),
		"y":            float64(rep.State.Y),
		"sp":           float64(rep.State.SP),
		"status":       float64(rep.State.Status),
		"reset_state":  rep.State.ResetState.String(),
		"total_cycles": float64(rep.State.TotalCycles),
		"last_result":  rep.State.LastResult,
		"steps":        float64(rep.Steps),
		"paused":       rep.Paused,
		"finished":     rep.Finished,
		"result":       result,
		"started":      prog.Started,
		"cycle":        float64(prog.Cycle),
		"plan_line":    float64(prog.PlanLine),
		"plan_total":   float64(prog.PlanTotal),
		"tolerated":    float64(prog.Tolerated),
		"pending":      float64(prog.Pending),
		"last_access":  prog.Last.String(),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "%v", err)
	}
	return s, nil
}

// Status implements the MonitorServer interface.
func (srv *Server) Status(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return srv.report()
}

// Peek implements the MonitorServer interface.
func (srv *Server) Peek(_ context.Context, in *structpb.Struct) (*wrapperspb.BytesValue, error) {
	f := in.GetFields()

	address := f["address"].GetNumberValue()
	if address < 0 || address > 0xffff {
		return nil, status.Errorf(codes.InvalidArgument, "address out of range (%v)", address)
	}

	length := 1.0
	if v, ok := f["length"]; ok {
		length = v.GetNumberValue()
	}
	if length < 0 || length > maxPeek {
		return nil, status.Errorf(codes.InvalidArgument, "length out of range (%v)", length)
	}

	return wrapperspb.Bytes(srv.bus.Peek(uint16(address), int(length))), nil
}

// SetLine implements the MonitorServer interface.
func (srv *Server) SetLine(_ context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	f := in.GetFields()

	line, err := signals.ParseLine(f["line"].GetStringValue())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	state := f["state"].GetBoolValue()
	logger.Logf(logger.Allow, "monitor", "%s set to %v", line, state)
	srv.lines.SetLine(line, state)

	return &emptypb.Empty{}, nil
}

// Pause implements the MonitorServer interface.
func (srv *Server) Pause(_ context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	srv.ctl.Pause()
	return &emptypb.Empty{}, nil
}

// Resume implements the MonitorServer interface.
func (srv *Server) Resume(_ context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	srv.ctl.Resume()
	return &emptypb.Empty{}, nil
}

// Step implements the MonitorServer interface.
func (srv *Server) Step(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if _, err := srv.ctl.Step(); err != nil {
		return nil, status.Errorf(codes.FailedPrecondition, "%v", err)
	}
	return srv.report()
}
