package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/trailshift/internal/model"
)

func act(at, name, ip string) model.Activity {
	ts, err := time.Parse(time.RFC3339, at)
	if err != nil {
		panic(err)
	}
	return model.Activity{Timestamp: ts.UTC(), EventName: name, SourceIPAddress: ip, IdentityType: model.KindIAMUser}
}

func TestAggregateSingleDay(t *testing.T) {
	got := Aggregate(model.Ledger{
		"alice": {
			act("2024-01-01T09:00:00Z", "ConsoleLogin", "198.51.100.1"),
			act("2024-01-01T17:30:00Z", "GetObject", "198.51.100.2"),
		},
	})

	require.Len(t, got, 1)
	s := got[0]
	assert.Equal(t, "alice", s.Actor)
	assert.Equal(t, "2024-01-01", s.Date)
	assert.Equal(t, "09:00:00", s.StartTime.Format("15:04:05"))
	assert.Equal(t, "17:30:00", s.EndTime.Format("15:04:05"))
	assert.Equal(t, 8*time.Hour+30*time.Minute, s.Duration)
	assert.Equal(t, 2, s.ActivityCount)
	assert.Equal(t, "ConsoleLogin", s.FirstAction)
	assert.Equal(t, "GetObject", s.LastAction)
	assert.Equal(t, "198.51.100.1", s.SourceIPAddress)
}

func TestAggregateSplitsDays(t *testing.T) {
	got := Aggregate(model.Ledger{
		"alice": {
			act("2024-01-01T09:00:00Z", "ConsoleLogin", "198.51.100.1"),
			act("2024-01-01T17:30:00Z", "GetObject", "198.51.100.1"),
			act("2024-01-02T08:15:00Z", "ListBuckets", "198.51.100.9"),
		},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "2024-01-01", got[0].Date)
	assert.Equal(t, 2, got[0].ActivityCount)
	assert.Equal(t, "2024-01-02", got[1].Date)
	assert.Equal(t, 1, got[1].ActivityCount)
	assert.Equal(t, time.Duration(0), got[1].Duration)
	assert.Equal(t, "ListBuckets", got[1].FirstAction)
	assert.Equal(t, "ListBuckets", got[1].LastAction)
	assert.Equal(t, "198.51.100.9", got[1].SourceIPAddress)
}

func TestAggregateMidnightSessionIsTwoRows(t *testing.T) {
	got := Aggregate(model.Ledger{
		"ops": {
			act("2024-05-31T23:00:00Z", "A", ""),
			act("2024-05-31T23:59:59Z", "B", ""),
			act("2024-06-01T00:00:00Z", "C", ""),
			act("2024-06-01T00:45:00Z", "D", ""),
		},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "2024-05-31", got[0].Date)
	assert.Equal(t, 59*time.Minute+59*time.Second, got[0].Duration)
	assert.Equal(t, "2024-06-01", got[1].Date)
	assert.Equal(t, 45*time.Minute, got[1].Duration)
}

func TestAggregateOrdersByActorThenDate(t *testing.T) {
	got := Aggregate(model.Ledger{
		"zed": {act("2024-01-01T10:00:00Z", "X", "")},
		"amy": {
			act("2024-01-01T10:00:00Z", "X", ""),
			act("2024-01-03T10:00:00Z", "Y", ""),
		},
		"Bob": {act("2024-01-02T10:00:00Z", "X", "")},
	})

	var keys []string
	for _, s := range got {
		keys = append(keys, s.Actor+"/"+s.Date)
	}
	assert.Equal(t, []string{"Bob/2024-01-02", "amy/2024-01-01", "amy/2024-01-03", "zed/2024-01-01"}, keys)
}

func TestAggregateCountsAddUp(t *testing.T) {
	ledger := model.Ledger{
		"alice": {
			act("2024-01-01T01:00:00Z", "a", ""),
			act("2024-01-01T02:00:00Z", "b", ""),
			act("2024-01-02T03:00:00Z", "c", ""),
			act("2024-01-04T04:00:00Z", "d", ""),
			act("2024-01-04T05:00:00Z", "e", ""),
		},
	}
	total := 0
	for _, s := range Aggregate(ledger) {
		assert.GreaterOrEqual(t, s.ActivityCount, 1)
		assert.False(t, s.EndTime.Before(s.StartTime))
		total += s.ActivityCount
	}
	assert.Equal(t, len(ledger["alice"]), total)
}

func TestAggregateDoesNotMutateLedger(t *testing.T) {
	acts := []model.Activity{
		act("2024-01-01T01:00:00Z", "a", ""),
		act("2024-01-01T02:00:00Z", "b", ""),
	}
	ledger := model.Ledger{"alice": acts}
	Aggregate(ledger)
	assert.Equal(t, "a", ledger["alice"][0].EventName)
	assert.Equal(t, "b", ledger["alice"][1].EventName)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate(model.Ledger{"ghost": nil}))
}
