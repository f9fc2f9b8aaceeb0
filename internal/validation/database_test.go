package validation

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esstools/essready/internal/discovery"
)

func TestServerAddress(t *testing.T) {
	tests := []struct {
		server string
		want   string
	}{
		{"SQLPROD01", "SQLPROD01:1433"},
		{`SQLPROD01\ESS`, "SQLPROD01:1433"},
		{".", "localhost:1433"},
		{`.\SQLEXPRESS`, "localhost:1433"},
		{"(local)", "localhost:1433"},
		{"(LOCAL)", "localhost:1433"},
	}
	for _, tt := range tests {
		if got := serverAddress(tt.server); got != tt.want {
			t.Errorf("serverAddress(%q) = %q, want %q", tt.server, got, tt.want)
		}
	}
}

// fakeConn satisfies just enough of net.Conn for the routine, which only
// closes the connection after a successful dial.
type fakeConn struct {
	net.Conn
}

func (fakeConn) Close() error { return nil }

func TestDatabaseRoutineDeduplicatesServers(t *testing.T) {
	var dialed []string
	dial := func(ctx context.Context, network, address string) (net.Conn, error) {
		dialed = append(dialed, address)
		return fakeConn{}, nil
	}

	instances := []discovery.Instance{
		{DatabaseServer: "SQLPROD01", DatabaseName: "ESS"},
		{DatabaseServer: `SQLPROD01\ESS`, DatabaseName: "WFE"},
		{DatabaseServer: "SQLPROD02", DatabaseName: "ESS2"},
	}

	res := NewLog()
	require.NoError(t, NewDatabaseRoutine(dial).Run(context.Background(), instances, res))

	// The named instance resolves to the same host:port, so only two dials.
	assert.Equal(t, []string{"SQLPROD01:1433", "SQLPROD02:1433"}, dialed)

	records := res.Records()
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, StatusPass, rec.Status)
	}
}

func TestDatabaseRoutineUnreachableServer(t *testing.T) {
	dial := func(ctx context.Context, network, address string) (net.Conn, error) {
		if address == "SQLPROD02:1433" {
			return nil, errors.New("connection refused")
		}
		return fakeConn{}, nil
	}

	instances := []discovery.Instance{
		{DatabaseServer: "SQLPROD01"},
		{DatabaseServer: "SQLPROD02"},
	}

	res := NewLog()
	require.NoError(t, NewDatabaseRoutine(dial).Run(context.Background(), instances, res))

	records := res.Records()
	require.Len(t, records, 2)
	assert.Equal(t, StatusPass, records[0].Status)
	assert.Equal(t, StatusFail, records[1].Status)
	assert.Equal(t, "SQLPROD02", records[1].Check)
	assert.Contains(t, records[1].Message, "connection refused")
}

func TestDatabaseRoutineNoServers(t *testing.T) {
	dial := func(ctx context.Context, network, address string) (net.Conn, error) {
		t.Fatal("dial should not be called")
		return nil, nil
	}

	res := NewLog()
	require.NoError(t, NewDatabaseRoutine(dial).Run(context.Background(),
		[]discovery.Instance{{SiteName: "S", ApplicationPath: "/ESS"}}, res))

	records := res.Records()
	require.Len(t, records, 1)
	assert.Equal(t, StatusWarning, records[0].Status)
}
