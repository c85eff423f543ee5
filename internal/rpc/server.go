package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/engine"
	"github.com/moeezahmadkhan/sumero-health-archive/internal/intake"
	"github.com/moeezahmadkhan/sumero-health-archive/internal/journal"
)

// Recorder journals decisions. *journal.Journal satisfies it.
type Recorder interface {
	Record(subject string, in engine.BiometricInput, d engine.Decision) (journal.Entry, error)
}

// #region server
// Server implements DecisionServiceServer. A nil recorder disables
// journaling.
type Server struct {
	recorder Recorder
}

// NewServer creates a Server.
func NewServer(recorder Recorder) *Server {
	return &Server{recorder: recorder}
}

// Decide validates the request struct, runs the engine and returns the
// decision as a struct.
func (s *Server) Decide(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := intake.Parse(req.AsMap())
	if err != nil {
		return nil, toStatus(err)
	}
	d, err := engine.Decide(in)
	if err != nil {
		return nil, toStatus(err)
	}

	if s.recorder != nil {
		e, err := s.recorder.Record(subjectFrom(ctx), in, d)
		if err != nil {
			log.Printf("[RPC] journal record failed: %v", err)
		} else if err := grpc.SetHeader(ctx, metadata.Pairs(decisionIDKey, e.DecisionID)); err != nil {
			log.Printf("[RPC] set header: %v", err)
		}
	}

	out, err := decisionToStruct(d)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode decision: %v", err)
	}
	return out, nil
}

// #endregion server

// #region helpers
func toStatus(err error) error {
	var invalid *engine.InvalidInputError
	if errors.As(err, &invalid) {
		return status.Error(codes.InvalidArgument, invalid.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

func subjectFrom(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if v := md.Get(subjectKey); len(v) > 0 {
		return v[0]
	}
	return ""
}

func decisionToStruct(d engine.Decision) (*structpb.Struct, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

func structToDecision(s *structpb.Struct) (engine.Decision, error) {
	var d engine.Decision
	data, err := json.Marshal(s.AsMap())
	if err != nil {
		return d, err
	}
	err = json.Unmarshal(data, &d)
	return d, err
}

// #endregion helpers
