package retry

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

var _ dlmeta.ErrorClassifier = (*ConnectClassifier)(nil)

// ConnectClassifier treats errors seen while opening a PostgreSQL connection
// as transient when the server may simply not be ready yet.
// Authentication and configuration failures are fatal.
type ConnectClassifier struct{}

// NewConnectClassifier creates a ConnectClassifier.
func NewConnectClassifier() *ConnectClassifier {
	return &ConnectClassifier{}
}

// IsTransient implements dlmeta.ErrorClassifier.
func (c *ConnectClassifier) IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return transientCode(pgErr.Code)
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientMessages {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// transientCode reports whether a SQLSTATE marks a condition worth retrying.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
func transientCode(code string) bool {
	switch {
	case strings.HasPrefix(code, "08"): // connection exception
		return true
	case code == "53300": // too_many_connections
		return true
	case code == "57P01", code == "57P03": // admin_shutdown, cannot_connect_now
		return true
	}
	return false
}

var transientMessages = []string{
	"connection refused",
	"connection reset",
	"server closed the connection",
	"the database system is starting up",
	"unexpected eof",
	"i/o timeout",
}
