package format

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var labelPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)

func utcLabel() *DateLabel {
	return NewDateLabel(WithLocation(time.UTC))
}

func TestFormat_EpochZeroUTC(t *testing.T) {
	assert.Equal(t, "1970-01-01 00:00", utcLabel().Format(0))
	assert.Equal(t, "1970-01-01 00:00", utcLabel().Format(int64(0)))
}

func TestFormat_ISOStringUTC(t *testing.T) {
	assert.Equal(t, "2024-03-05 09:07", utcLabel().Format("2024-03-05T09:07:00Z"))
}

func TestFormat_InputKinds(t *testing.T) {
	ts := time.Date(2024, 3, 5, 9, 7, 42, 0, time.UTC)
	want := "2024-03-05 09:07"

	cases := map[string]any{
		"time":         ts,
		"time pointer": &ts,
		"int64 millis": int64(1709629620000),
		"int millis":   1709629620000,
		"uint64":       uint64(1709629620000),
		"float millis": float64(1709629620000),
		"json integer": json.Number("1709629620000"),
		"json float":   json.Number("1709629620000.5"),
		"rfc3339":      "2024-03-05T09:07:42Z",
		"offset":       "2024-03-05T17:07:42+08:00",
		"space layout": "2024-03-05 09:07:42",
		"padded":       "  2024-03-05T09:07:00Z  ",
	}
	d := utcLabel()
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, d.Format(value))
		})
	}
}

func TestFormat_DateOnlyString(t *testing.T) {
	assert.Equal(t, "2024-03-05 00:00", utcLabel().Format("2024-03-05"))
}

func TestFormat_ZeroPadding(t *testing.T) {
	d := utcLabel()
	got := d.Format(time.Date(2009, 1, 2, 3, 5, 0, 0, time.UTC))
	assert.Equal(t, "2009-01-02 03:05", got)
	assert.Len(t, got, 16)
	assert.Regexp(t, labelPattern, got)
}

func TestFormat_PatternAndDeterminism(t *testing.T) {
	d := utcLabel()
	for _, ms := range []int64{0, 1, 59_999, 86_399_999, 951_782_400_000, 1_709_629_620_000, 4_102_444_799_000} {
		first := d.Format(ms)
		require.Regexp(t, labelPattern, first, "ms=%d", ms)
		assert.Equal(t, first, d.Format(ms), "ms=%d", ms)
	}
}

func TestFormat_InvalidInputReturnsSentinel(t *testing.T) {
	d := utcLabel()
	var nilTime *time.Time
	for _, value := range []any{"not-a-date", "", nil, nilTime, true, struct{}{}, math.NaN(), math.Inf(1), json.Number("x"),
		1e30, -1e30, json.Number("1e30"), json.Number("-1e30"),
		uint64(math.MaxUint64), uint64(math.MaxInt64) + 1, uint(math.MaxUint64)} {
		assert.Equal(t, DefaultInvalidLabel, d.Format(value), "value=%#v", value)
	}
}

func TestFormatE_RejectsOutOfRangeNumbers(t *testing.T) {
	d := utcLabel()
	for _, value := range []any{1e30, -1e30, json.Number("1e30"), uint64(math.MaxUint64), uint64(math.MaxInt64) + 1} {
		_, err := d.FormatE(value)
		assert.True(t, errors.Is(err, ErrInvalidDate), "value=%#v", value)
	}

	_, err := d.FormatE(uint64(math.MaxInt64))
	assert.NoError(t, err)
	_, err = d.FormatE(9.2e18)
	assert.NoError(t, err)
}

func TestFormat_CustomInvalidLabel(t *testing.T) {
	d := NewDateLabel(WithLocation(time.UTC), WithInvalidLabel("-"))
	assert.Equal(t, "-", d.Format("not-a-date"))
	assert.Equal(t, "-", d.InvalidLabel())

	d = NewDateLabel(WithInvalidLabel(""))
	assert.Equal(t, DefaultInvalidLabel, d.InvalidLabel())
}

func TestFormatE_WrapsErrInvalidDate(t *testing.T) {
	_, err := utcLabel().FormatE("not-a-date")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDate))

	label, err := utcLabel().FormatE(0)
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01 00:00", label)
}

func TestDefaultLocationIsLocal(t *testing.T) {
	d := NewDateLabel(WithLocation(nil))
	assert.Equal(t, time.Local, d.Location())
}

func TestIn_RendersInOtherZone(t *testing.T) {
	plus8 := time.FixedZone("UTC+8", 8*60*60)
	d := utcLabel()
	shifted := d.In(plus8)

	assert.Equal(t, "1970-01-01 08:00", shifted.Format(0))
	assert.Equal(t, "1970-01-01 00:00", d.Format(0), "receiver must keep its zone")
	assert.Same(t, d, d.In(nil))
	assert.Same(t, d, d.In(time.UTC))
}

func TestParse_ZonelessStringUsesLocation(t *testing.T) {
	plus8 := time.FixedZone("UTC+8", 8*60*60)
	d := NewDateLabel(WithLocation(plus8))

	got, err := d.Parse("2024-03-05 09:07:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 1, 7, 0, 0, time.UTC).Unix(), got.Unix())
	assert.Equal(t, "2024-03-05 09:07", d.Format("2024-03-05 09:07:00"))
}

func TestParse_FractionalMillis(t *testing.T) {
	got, err := utcLabel().Parse(-1.5)
	require.NoError(t, err)
	assert.Equal(t, time.Unix(0, 0).Add(-1500*time.Microsecond).UnixNano(), got.UnixNano())
}

func TestFormat_ConcurrentUse(t *testing.T) {
	d := utcLabel()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := d.Format(int64(0)); got != "1970-01-01 00:00" {
					t.Errorf("unexpected label %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
