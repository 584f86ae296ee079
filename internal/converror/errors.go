// Package converror defines the failure kinds a statement conversion can end in.
// Every error carries the statement file it concerns and wraps its cause so
// callers can use errors.As / errors.Is.
package converror

import (
	"errors"
	"fmt"
)

// Kind names, as reported in logs and by Kind.
const (
	KindDiscovery = "discovery"
	KindParse     = "parse"
	KindBackup    = "backup"
	KindWrite     = "write"
	KindCleanup   = "cleanup"
	KindRowShape  = "row_shape"
	KindAmount    = "amount"
)

// DiscoveryError means the input directory could not be listed.
type DiscoveryError struct {
	Dir string
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery failed for directory '%s': %v", e.Dir, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// ParseError means a statement file could not be decoded as delimited text.
type ParseError struct {
	FilePath string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse failed for '%s': %v", e.FilePath, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// BackupError means the statement file could not be renamed to its backup.
type BackupError struct {
	FilePath   string
	BackupPath string
	Err        error
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("backup of '%s' to '%s' failed: %v", e.FilePath, e.BackupPath, e.Err)
}

func (e *BackupError) Unwrap() error {
	return e.Err
}

// WriteError means the converted file could not be written into place.
// The backup is left on disk when this happens.
type WriteError struct {
	FilePath   string
	BackupPath string
	Err        error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write of '%s' failed (original kept at '%s'): %v", e.FilePath, e.BackupPath, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// CleanupError means the converted file is in place but its backup could not be removed.
type CleanupError struct {
	FilePath   string
	BackupPath string
	Err        error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup of backup '%s' for '%s' failed: %v", e.BackupPath, e.FilePath, e.Err)
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}

// RowShapeError means a record does not have the fields the input layout requires.
// Row is 1-based and counts the discarded title row.
type RowShapeError struct {
	FilePath string
	Row      int
	Got      int
	Want     int
	Reason   string
}

func (e *RowShapeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("row %d of '%s' rejected: %s", e.Row, e.FilePath, e.Reason)
	}
	return fmt.Sprintf("row %d of '%s' has %d fields, expected %d", e.Row, e.FilePath, e.Got, e.Want)
}

// AmountError means a Debit or Credit field is not a base-10 decimal number.
type AmountError struct {
	FilePath string
	Row      int
	Column   string
	Value    string
	Err      error
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("row %d of '%s': failed to parse %s='%s': %v", e.Row, e.FilePath, e.Column, e.Value, e.Err)
}

func (e *AmountError) Unwrap() error {
	return e.Err
}

// Kind returns the failure kind of the first conversion error found in err's
// chain, or "" when err is not one of ours.
func Kind(err error) string {
	var (
		discovery *DiscoveryError
		parse     *ParseError
		backup    *BackupError
		write     *WriteError
		cleanup   *CleanupError
		shape     *RowShapeError
		amount    *AmountError
	)
	switch {
	case errors.As(err, &discovery):
		return KindDiscovery
	case errors.As(err, &parse):
		return KindParse
	case errors.As(err, &backup):
		return KindBackup
	case errors.As(err, &write):
		return KindWrite
	case errors.As(err, &cleanup):
		return KindCleanup
	case errors.As(err, &shape):
		return KindRowShape
	case errors.As(err, &amount):
		return KindAmount
	default:
		return ""
	}
}
