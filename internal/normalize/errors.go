package normalize

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord marks a raw record missing a required field.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrAmbiguousTeamMatch marks a record where the matcher picks both sides or neither.
	ErrAmbiguousTeamMatch = errors.New("ambiguous team match")
)

// MalformedRecordError describes which record and field failed validation.
type MalformedRecordError struct {
	Index  int
	GamePK int64
	Field  string
	Value  string
}

func (e *MalformedRecordError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("record %d (gamePk=%d): invalid %s %q", e.Index, e.GamePK, e.Field, e.Value)
	}
	return fmt.Sprintf("record %d (gamePk=%d): missing %s", e.Index, e.GamePK, e.Field)
}

func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }

// AmbiguousTeamMatchError reports the team names the matcher was checked against.
type AmbiguousTeamMatchError struct {
	Index   int
	GamePK  int64
	Matcher string
	Home    string
	Away    string
	Both    bool
}

func (e *AmbiguousTeamMatchError) Error() string {
	where := "neither"
	if e.Both {
		where = "both"
	}
	return fmt.Sprintf("record %d (gamePk=%d): matcher %q found in %s of home=%q away=%q",
		e.Index, e.GamePK, e.Matcher, where, e.Home, e.Away)
}

func (e *AmbiguousTeamMatchError) Unwrap() error { return ErrAmbiguousTeamMatch }

// AsMalformedRecord attempts to unwrap an error into a MalformedRecordError.
func AsMalformedRecord(err error) (*MalformedRecordError, bool) {
	var target *MalformedRecordError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsAmbiguousTeamMatch attempts to unwrap an error into an AmbiguousTeamMatchError.
func AsAmbiguousTeamMatch(err error) (*AmbiguousTeamMatchError, bool) {
	var target *AmbiguousTeamMatchError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
