package engine

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a sync failure.
type ErrorKind string

const (
	// KindConnection: source or destination unreachable at run start. Fatal.
	KindConnection ErrorKind = "CONNECTION_FAILURE"
	// KindSourceMissing: the source table does not exist. The job is skipped.
	KindSourceMissing ErrorKind = "SOURCE_OBJECT_MISSING"
	// KindCatalog: the source catalog query failed.
	KindCatalog ErrorKind = "CATALOG_FAILURE"
	// KindProvisioning: destination DDL failed.
	KindProvisioning ErrorKind = "PROVISIONING_FAILURE"
	// KindSourceRead: the full-table read failed.
	KindSourceRead ErrorKind = "SOURCE_READ_FAILURE"
	// KindInsertion: the bulk insert was rejected.
	KindInsertion ErrorKind = "INSERTION_FAILURE"
)

// SyncError is a classified failure, optionally tied to one table.
type SyncError struct {
	Kind  ErrorKind
	Table string
	Err   error
}

func (e *SyncError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Kind, e.Table, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, table string, err error) *SyncError {
	return &SyncError{Kind: kind, Table: table, Err: err}
}

// KindOf returns the kind of the first SyncError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// IsConnectionFailure reports whether err aborted a run before any job started.
func IsConnectionFailure(err error) bool {
	return KindOf(err) == KindConnection
}
