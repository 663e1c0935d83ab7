package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RawEvent is one undecoded audit record as produced by a source.
// It is never mutated once loaded.
type RawEvent = json.RawMessage

// Record is the typed view of a RawEvent. Every field is optional; absence
// at any level decodes to a nil pointer or an empty string.
type Record struct {
	UserIdentity    *UserIdentity
	EventTime       string
	EventName       string
	EventSource     string
	SourceIPAddress string
	UserAgent       string
	AWSRegion       string
}

// UserIdentity describes the principal that issued a request.
type UserIdentity struct {
	Type           string
	PrincipalID    string
	ARN            string
	AccountID      string
	UserName       string
	SessionContext *SessionContext
}

// SessionContext is present on temporary-credential identities.
type SessionContext struct {
	SessionIssuer *SessionIssuer
}

// SessionIssuer is the role or user that issued the session credentials.
type SessionIssuer struct {
	Type     string
	ARN      string
	UserName string
}

// DecodeRecord decodes a raw event into its typed view. Only a record that
// is not a JSON object is an error. A nested level of the wrong shape is
// treated as absent, and non-string scalars keep their JSON text.
func DecodeRecord(raw RawEvent) (Record, error) {
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	if o == nil {
		return Record{}, fmt.Errorf("decode record: null record")
	}

	rec := Record{
		EventTime:       o.str("eventTime"),
		EventName:       o.str("eventName"),
		EventSource:     o.str("eventSource"),
		SourceIPAddress: o.str("sourceIPAddress"),
		UserAgent:       o.str("userAgent"),
		AWSRegion:       o.str("awsRegion"),
	}
	if ui := o.obj("userIdentity"); ui != nil {
		rec.UserIdentity = &UserIdentity{
			Type:        ui.str("type"),
			PrincipalID: ui.str("principalId"),
			ARN:         ui.str("arn"),
			AccountID:   ui.str("accountId"),
			UserName:    ui.str("userName"),
		}
		if sc := ui.obj("sessionContext"); sc != nil {
			rec.UserIdentity.SessionContext = &SessionContext{}
			if si := sc.obj("sessionIssuer"); si != nil {
				rec.UserIdentity.SessionContext.SessionIssuer = &SessionIssuer{
					Type:     si.str("type"),
					ARN:      si.str("arn"),
					UserName: si.str("userName"),
				}
			}
		}
	}
	return rec, nil
}

// object is one level of a record, decoded on demand.
type object map[string]json.RawMessage

// obj returns the nested object at key, or nil when it is missing or not an
// object.
func (o object) obj(key string) object {
	var nested object
	if err := json.Unmarshal(o[key], &nested); err != nil {
		return nil
	}
	return nested
}

// str returns the string at key. Missing and null values are empty; any
// other non-string value is returned as its JSON text.
func (o object) str(key string) string {
	v := bytes.TrimSpace(o[key])
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

// eventTimeLayouts are tried in order. Zone-less layouts are read as UTC, and
// a bare date is midnight UTC.
var eventTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseEventTime parses an ISO-8601 event timestamp and normalises it to UTC.
// A trailing "Z" is equivalent to an explicit +00:00 offset.
func ParseEventTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty event time")
	}
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised event time %q", s)
}
