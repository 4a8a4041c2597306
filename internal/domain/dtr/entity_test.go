package dtr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPunch_FillsColumnsInOrder(t *testing.T) {
	var r DTRRecord
	for i, want := range Columns {
		var used Column
		var applied bool
		r, used, applied = r.Punch("", "08:0"+string(rune('0'+i)))
		assert.True(t, applied)
		assert.Equal(t, want, used)
	}
	assert.Equal(t, "08:00", r.AMIn)
	assert.Equal(t, "08:05", r.OTOut)

	_, _, applied := r.Punch("", "09:00")
	assert.False(t, applied)
}

func TestPunch_ExplicitColumn(t *testing.T) {
	r := DTRRecord{AMIn: "07:58"}

	updated, used, applied := r.Punch(ColumnAMIn, "08:10")
	assert.False(t, applied)
	assert.Equal(t, ColumnAMIn, used)
	assert.Equal(t, "07:58", updated.AMIn)

	updated, used, applied = r.Punch(ColumnPMOut, "17:01")
	assert.True(t, applied)
	assert.Equal(t, ColumnPMOut, used)
	assert.Equal(t, "17:01", updated.PMOut)
	assert.Empty(t, r.PMOut)
}

func TestNextEmptyColumn_SkipsFilled(t *testing.T) {
	r := DTRRecord{AMIn: "07:00", PMIn: "13:00"}
	c, ok := r.NextEmptyColumn()
	assert.True(t, ok)
	assert.Equal(t, ColumnAMOut, c)
}
