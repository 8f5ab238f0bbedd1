package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDateTruncates(t *testing.T) {
	d := NewDate(time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC))
	assert.Equal(t, "2025-03-14", d.String())
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, 0, d.Minute())
}

func TestDateComparisons(t *testing.T) {
	earlier := NewDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	later := NewDate(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.False(t, earlier.Equal(later))
	assert.True(t, earlier.Equal(NewDate(earlier.Time.Add(6*time.Hour))))
}

func TestDateJSON(t *testing.T) {
	d := NewDate(time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC))

	data, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2025-07-31"`, string(data))

	var decoded Date
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equal(d))

	assert.Error(t, json.Unmarshal([]byte(`"31/07/2025"`), &decoded))
}

func TestDateScan(t *testing.T) {
	var d Date
	assert.NoError(t, d.Scan(time.Date(2025, 7, 31, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2025-07-31", d.String())

	assert.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan("2025-07-31"))
}
