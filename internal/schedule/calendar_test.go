package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudface/frequency/internal/gtfs"
)

func weekdays(id string, start, end gtfs.Date) gtfs.ServicePattern {
	return gtfs.ServicePattern{
		ServiceID: id,
		Monday:    true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true,
		StartDate: start,
		EndDate:   end,
	}
}

func TestResolveServices(t *testing.T) {
	p1 := weekdays("P1", 20260101, 20261231)
	monday := gtfs.Date(20260119)

	t.Run("pattern recurring on the weekday within validity is active", func(t *testing.T) {
		res, err := ResolveServices(monday, []gtfs.ServicePattern{p1}, nil)
		require.NoError(t, err)
		assert.True(t, res.Services.Contains("P1"))
		assert.Equal(t, time.Monday, res.Weekday)
		assert.Equal(t, []string{"P1"}, res.Base)
	})

	t.Run("removed exception excludes the pattern", func(t *testing.T) {
		_, err := ResolveServices(monday, []gtfs.ServicePattern{p1}, []gtfs.CalendarException{
			{ServiceID: "P1", Date: monday, Kind: gtfs.ExceptionRemoved},
		})
		assert.ErrorIs(t, err, ErrNoActiveServices)
	})

	t.Run("removed exception on another date has no effect", func(t *testing.T) {
		res, err := ResolveServices(monday, []gtfs.ServicePattern{p1}, []gtfs.CalendarException{
			{ServiceID: "P1", Date: 20260120, Kind: gtfs.ExceptionRemoved},
		})
		require.NoError(t, err)
		assert.True(t, res.Services.Contains("P1"))
		assert.Empty(t, res.Removed)
	})

	t.Run("added exception includes a pattern outside its weekdays", func(t *testing.T) {
		sunday := gtfs.Date(20260118)
		res, err := ResolveServices(sunday, []gtfs.ServicePattern{p1}, []gtfs.CalendarException{
			{ServiceID: "P1", Date: sunday, Kind: gtfs.ExceptionAdded},
		})
		require.NoError(t, err)
		assert.True(t, res.Services.Contains("P1"))
		assert.Empty(t, res.Base)
		assert.Equal(t, []string{"P1"}, res.Added)
	})

	t.Run("added exception includes a pattern outside its validity", func(t *testing.T) {
		late := gtfs.Date(20270104)
		res, err := ResolveServices(late, []gtfs.ServicePattern{p1}, []gtfs.CalendarException{
			{ServiceID: "P1", Date: late, Kind: gtfs.ExceptionAdded},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"P1"}, res.Services.IDs())
	})

	t.Run("added exception for a service without pattern", func(t *testing.T) {
		res, err := ResolveServices(monday, nil, []gtfs.CalendarException{
			{ServiceID: "X", Date: monday, Kind: gtfs.ExceptionAdded},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"X"}, res.Services.IDs())
	})

	t.Run("validity bounds are inclusive", func(t *testing.T) {
		p := weekdays("P", monday, monday)
		res, err := ResolveServices(monday, []gtfs.ServicePattern{p}, nil)
		require.NoError(t, err)
		assert.True(t, res.Services.Contains("P"))

		_, err = ResolveServices(20260120, []gtfs.ServicePattern{p}, nil)
		assert.ErrorIs(t, err, ErrNoActiveServices)
	})

	t.Run("pattern outside validity is inactive", func(t *testing.T) {
		_, err := ResolveServices(20251229, []gtfs.ServicePattern{p1}, nil)
		require.ErrorIs(t, err, ErrNoActiveServices)
		assert.Contains(t, err.Error(), "no matching services for this date")
		assert.Contains(t, err.Error(), "20251229")
	})

	t.Run("removal wins over addition in either row order", func(t *testing.T) {
		other := weekdays("P2", 20260101, 20261231)
		orders := [][]gtfs.CalendarException{
			{
				{ServiceID: "P1", Date: monday, Kind: gtfs.ExceptionAdded},
				{ServiceID: "P1", Date: monday, Kind: gtfs.ExceptionRemoved},
			},
			{
				{ServiceID: "P1", Date: monday, Kind: gtfs.ExceptionRemoved},
				{ServiceID: "P1", Date: monday, Kind: gtfs.ExceptionAdded},
			},
		}
		for _, exceptions := range orders {
			res, err := ResolveServices(monday, []gtfs.ServicePattern{p1, other}, exceptions)
			require.NoError(t, err)
			assert.False(t, res.Services.Contains("P1"))
			assert.True(t, res.Services.Contains("P2"))
			assert.Equal(t, []string{"P1"}, res.Conflicts)
		}
	})

	t.Run("resolution is returned with the error", func(t *testing.T) {
		res, err := ResolveServices(monday, nil, nil)
		require.Error(t, err)
		require.NotNil(t, res)
		assert.Empty(t, res.Services)
	})
}

func TestServiceSetIDs(t *testing.T) {
	s := ServiceSet{"b": {}, "a": {}, "c": {}}
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
	assert.Equal(t, []string{}, ServiceSet{}.IDs())
}
