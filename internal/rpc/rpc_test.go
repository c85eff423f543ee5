package rpc

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/engine"
	"github.com/moeezahmadkhan/sumero-health-archive/internal/journal"
)

// #region harness
// startServer serves s over an in-memory listener and returns a client.
func startServer(t *testing.T, s *Server) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	gs := grpc.NewServer()
	Register(gs, s)
	go gs.Serve(lis)
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewClientWithConn(conn)
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

type failingRecorder struct{}

func (failingRecorder) Record(string, engine.BiometricInput, engine.Decision) (journal.Entry, error) {
	return journal.Entry{}, errors.New("disk full")
}

// #endregion harness

// #region decide-tests
func TestDecideOverGRPC(t *testing.T) {
	c := startServer(t, NewServer(nil))

	d, err := c.Decide(testContext(t), map[string]any{
		"sleep_hours":    8.0,
		"stress_level":   3,
		"resting_hr":     85,
		"blood_pressure": "140/90",
	})
	require.NoError(t, err)

	want, err := engine.Decide(engine.BiometricInput{SleepHours: 8, StressLevel: 3, RestingHR: 85, BloodPressure: "140/90"})
	require.NoError(t, err)
	assert.Equal(t, want, d)
	assert.Equal(t, []engine.ReasonCode{engine.ReasonHighHR, engine.ReasonHighBP}, d.ReasonCodes)
}

func TestDecideInvalidArgument(t *testing.T) {
	c := startServer(t, NewServer(nil))

	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"missing sleep", map[string]any{"stress_level": 3, "resting_hr": 50}},
		{"string stress", map[string]any{"sleep_hours": 8.0, "stress_level": "high", "resting_hr": 50}},
		{"fractional hr", map[string]any{"sleep_hours": 8.0, "stress_level": 3, "resting_hr": 62.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decide(testContext(t), tt.raw)
			require.Error(t, err)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestDecideJournals(t *testing.T) {
	j, err := journal.Open(filepath.Join(t.TempDir(), "rpc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })

	c := startServer(t, NewServer(j))
	d, id, err := c.DecideAs(testContext(t), "user-265", map[string]any{
		"sleep_hours": 5.5, "stress_level": 4, "resting_hr": 60,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	e, err := j.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "user-265", e.Subject)
	assert.Equal(t, d, e.Decision)
	assert.Equal(t, engine.DefaultBloodPressure, e.Input.BloodPressure)
}

func TestDecideWithoutJournalHasNoID(t *testing.T) {
	c := startServer(t, NewServer(nil))
	_, id, err := c.DecideAs(testContext(t), "anyone", map[string]any{
		"sleep_hours": 8.0, "stress_level": 3, "resting_hr": 50,
	})
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestDecideRecorderFailureStillServes(t *testing.T) {
	c := startServer(t, NewServer(failingRecorder{}))
	d, id, err := c.DecideAs(testContext(t), "", map[string]any{
		"sleep_hours": 8.0, "stress_level": 3, "resting_hr": 50,
	})
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Equal(t, engine.StateWellRecovered, d.HealthState)
}

// #endregion decide-tests

// #region client-tests
func TestNewClientLazyDial(t *testing.T) {
	c, err := NewClient("localhost:0")
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}

func TestClientRejectsUnencodableRequest(t *testing.T) {
	c := NewClientWithConn(nil)
	_, err := c.Decide(context.Background(), map[string]any{"sleep_hours": make(chan int)})
	assert.ErrorContains(t, err, "encode request")
}

func TestCloseWithoutOwnedConn(t *testing.T) {
	assert.NoError(t, NewClientWithConn(nil).Close())
}

// #endregion client-tests

// #region conversion-tests
func TestDecisionStructRoundTrip(t *testing.T) {
	d, err := engine.Decide(engine.BiometricInput{SleepHours: 7.5, StressLevel: 8, RestingHR: 65})
	require.NoError(t, err)

	s, err := decisionToStruct(d)
	require.NoError(t, err)
	assert.Len(t, s.GetFields(), 9)
	assert.Equal(t, "Under_Recovered", s.GetFields()["health_state"].GetStringValue())

	back, err := structToDecision(s)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestServerDecideDirect(t *testing.T) {
	req, err := structpb.NewStruct(map[string]any{"sleep_hours": 6.5, "stress_level": 2, "resting_hr": 70})
	require.NoError(t, err)

	out, err := NewServer(nil).Decide(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "recovery", out.GetFields()["priority_focus"].GetStringValue())
}

// #endregion conversion-tests
