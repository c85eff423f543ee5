package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/engine"
)

// #region client-struct
// Client wraps a gRPC connection to a DecisionService.
type Client struct {
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
}

// #endregion client-struct

// #region constructor
// NewClient connects to a DecisionService at addr.
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn, cc: conn}, nil
}

// NewClientWithConn creates a Client over an existing connection. The
// caller keeps ownership of cc.
func NewClientWithConn(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion close

// #region decide
// Decide sends a raw request and decodes the decision. Invalid input comes
// back as a status error with codes.InvalidArgument.
func (c *Client) Decide(ctx context.Context, raw map[string]any) (engine.Decision, error) {
	d, _, err := c.DecideAs(ctx, "", raw)
	return d, err
}

// DecideAs is Decide with a subject label for the journal. The returned ID
// is empty when the server did not journal the decision.
func (c *Client) DecideAs(ctx context.Context, subject string, raw map[string]any) (engine.Decision, string, error) {
	req, err := structpb.NewStruct(raw)
	if err != nil {
		return engine.Decision{}, "", fmt.Errorf("encode request: %w", err)
	}
	if subject != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, subjectKey, subject)
	}

	var header metadata.MD
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, decideMethod, req, resp, grpc.Header(&header)); err != nil {
		return engine.Decision{}, "", fmt.Errorf("grpc Decide: %w", err)
	}

	d, err := structToDecision(resp)
	if err != nil {
		return engine.Decision{}, "", fmt.Errorf("decode decision: %w", err)
	}
	var id string
	if v := header.Get(decisionIDKey); len(v) > 0 {
		id = v[0]
	}
	return d, id, nil
}

// #endregion decide
