package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventTime(t *testing.T) {
	want := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"zulu", "2024-01-01T09:00:00Z", want},
		{"explicit utc offset", "2024-01-01T09:00:00+00:00", want},
		{"positive offset", "2024-01-01T11:00:00+02:00", want},
		{"negative offset", "2024-01-01T04:00:00-05:00", want},
		{"no zone", "2024-01-01T09:00:00", want},
		{"space separated", "2024-01-01 09:00:00", want},
		{"fraction", "2024-01-01T09:00:00.250Z", want.Add(250 * time.Millisecond)},
		{"padded", "  2024-01-01T09:00:00Z ", want},
		{"minutes only", "2024-01-01T09:00", want},
		{"minutes with zone", "2024-01-01T10:00+01:00", want},
		{"date only", "2024-01-01", want.Add(-9 * time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEventTime(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseEventTimeOffsetCrossesMidnight(t *testing.T) {
	got, err := ParseEventTime("2024-01-01T23:30:00-02:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", got.Format("2006-01-02"))
}

func TestParseEventTimeErrors(t *testing.T) {
	for _, in := range []string{"", "   ", "yesterday", "2024-13-01T00:00:00Z", "1704099600"} {
		_, err := ParseEventTime(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestDecodeRecord(t *testing.T) {
	raw := RawEvent(`{
		"userIdentity": {
			"type": "AssumedRole",
			"arn": "arn:aws:sts::123456789012:assumed-role/Deployer/bob",
			"sessionContext": {"sessionIssuer": {"type": "Role", "userName": "Deployer"}}
		},
		"eventTime": "2024-01-01T09:00:00Z",
		"eventName": "PutObject",
		"eventSource": "s3.amazonaws.com",
		"awsRegion": "eu-west-1",
		"extra": {"ignored": true}
	}`)

	rec, err := DecodeRecord(raw)
	require.NoError(t, err)
	require.NotNil(t, rec.UserIdentity)
	assert.Equal(t, "AssumedRole", rec.UserIdentity.Type)
	require.NotNil(t, rec.UserIdentity.SessionContext)
	require.NotNil(t, rec.UserIdentity.SessionContext.SessionIssuer)
	assert.Equal(t, "Deployer", rec.UserIdentity.SessionContext.SessionIssuer.UserName)
	assert.Equal(t, "PutObject", rec.EventName)
	assert.Equal(t, "eu-west-1", rec.AWSRegion)
}

func TestDecodeRecordMissingFields(t *testing.T) {
	rec, err := DecodeRecord(RawEvent(`{}`))
	require.NoError(t, err)
	assert.Nil(t, rec.UserIdentity)
	assert.Empty(t, rec.EventTime)
}

func TestDecodeRecordMalformed(t *testing.T) {
	for _, raw := range []string{`"text"`, `42`, `[{"eventName": "A"}]`, `null`, `{"eventName":`} {
		_, err := DecodeRecord(RawEvent(raw))
		assert.Error(t, err, "input %s", raw)
	}
}

func TestDecodeRecordWrongShapeIsAbsent(t *testing.T) {
	rec, err := DecodeRecord(RawEvent(`{
		"userIdentity": {
			"type": "AssumedRole",
			"arn": "arn:aws:sts::123456789012:assumed-role/R/bob",
			"sessionContext": "weird"
		},
		"eventTime": "2024-01-01T09:00:00Z",
		"eventName": 42,
		"userAgent": {"name": "cli"},
		"awsRegion": null
	}`))
	require.NoError(t, err)
	require.NotNil(t, rec.UserIdentity)
	assert.Equal(t, "arn:aws:sts::123456789012:assumed-role/R/bob", rec.UserIdentity.ARN)
	assert.Nil(t, rec.UserIdentity.SessionContext)
	assert.Equal(t, "42", rec.EventName)
	assert.Equal(t, `{"name": "cli"}`, rec.UserAgent)
	assert.Empty(t, rec.AWSRegion)

	rec, err = DecodeRecord(RawEvent(`{"userIdentity": "IAMUser", "eventTime": "2024-01-01T09:00:00Z"}`))
	require.NoError(t, err)
	assert.Nil(t, rec.UserIdentity)
	assert.Equal(t, "2024-01-01T09:00:00Z", rec.EventTime)

	rec, err = DecodeRecord(RawEvent(`{"userIdentity": {"type": "AssumedRole", "sessionContext": {"sessionIssuer": [1]}}}`))
	require.NoError(t, err)
	require.NotNil(t, rec.UserIdentity.SessionContext)
	assert.Nil(t, rec.UserIdentity.SessionContext.SessionIssuer)
}

func TestLedger(t *testing.T) {
	l := Ledger{
		"bob":   {{EventName: "a"}},
		"alice": {{EventName: "b"}, {EventName: "c"}},
	}
	assert.Equal(t, []string{"alice", "bob"}, l.Actors())
	assert.Equal(t, 3, l.Len())

	assert.Empty(t, Ledger{}.Actors())
	assert.Zero(t, Ledger{}.Len())
}

func TestIdentityKindInScope(t *testing.T) {
	assert.True(t, KindIAMUser.InScope())
	assert.True(t, KindAssumedRole.InScope())
	for _, k := range []IdentityKind{KindRoot, KindFederatedUser, KindAWSAccount, KindAWSService, KindIdentityCenter, KindUnknown} {
		assert.False(t, k.InScope(), string(k))
	}
}
