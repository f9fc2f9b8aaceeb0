package validation

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/esstools/essready/internal/discovery"
)

const sqlServerPort = 1433

// Dialer opens a TCP connection; the default uses net.Dialer. Tests and
// hosts with SQL connectivity tooling plug in here.
type Dialer func(ctx context.Context, network, address string) (net.Conn, error)

// DatabaseRoutine verifies each instance's database server answers on the
// SQL Server port. Connectivity only; credential and schema checks belong
// to the database collaborator.
type DatabaseRoutine struct {
	dial    Dialer
	timeout time.Duration
}

// NewDatabaseRoutine creates the database connectivity routine. A nil dialer
// falls back to a plain TCP dial.
func NewDatabaseRoutine(dial Dialer) *DatabaseRoutine {
	if dial == nil {
		d := &net.Dialer{}
		dial = d.DialContext
	}
	return &DatabaseRoutine{dial: dial, timeout: 5 * time.Second}
}

// Name identifies the routine.
func (r *DatabaseRoutine) Name() string { return "database-connectivity" }

// Category is the record category.
func (r *DatabaseRoutine) Category() string { return "Database Connectivity" }

// Run probes each distinct database server once.
func (r *DatabaseRoutine) Run(ctx context.Context, instances []discovery.Instance, res *Log) error {
	checked := map[string]bool{}
	for _, inst := range instances {
		server := inst.DatabaseServer
		if server == "" {
			continue
		}
		addr := serverAddress(server)
		if checked[addr] {
			continue
		}
		checked[addr] = true

		dialCtx, cancel := context.WithTimeout(ctx, r.timeout)
		conn, err := r.dial(dialCtx, "tcp", addr)
		cancel()

		if err != nil {
			res.Fail(r.Category(), server,
				fmt.Sprintf("cannot reach %s: %v", addr, err))
			continue
		}
		conn.Close()
		res.Pass(r.Category(), server, fmt.Sprintf("reachable at %s", addr))
	}

	if len(checked) == 0 {
		res.Warn(r.Category(), "Database Servers", "no database servers recorded for any instance")
	}
	return nil
}

// serverAddress converts a SQL Server name into a dialable host:port.
// Local aliases map to localhost and a named-instance suffix is dropped
// (named instances negotiate their port through the browser service, which
// is out of reach for a plain TCP probe).
func serverAddress(server string) string {
	host := server
	if idx := strings.Index(host, `\`); idx >= 0 {
		host = host[:idx]
	}
	switch host {
	case "", ".", "(local)", "(LOCAL)":
		host = "localhost"
	}
	return fmt.Sprintf("%s:%d", host, sqlServerPort)
}
