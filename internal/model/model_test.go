package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from, to JobStatus
		ok       bool
	}{
		{JobPending, JobRunning, true},
		{JobPending, JobFailed, true},
		{JobRunning, JobDone, true},
		{JobRunning, JobFailed, true},
		{JobPending, JobDone, false},
		{JobDone, JobRunning, false},
		{JobFailed, JobPending, false},
		{JobRunning, JobPending, false},
		{JobDone, JobDone, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := Transition(tt.from, tt.to)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestJob_Advance(t *testing.T) {
	now := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	j := NewJob("job-1", now)
	assert.Equal(t, JobPending, j.Status)

	require.NoError(t, j.Advance(JobRunning, "", now))
	assert.NotNil(t, j.StartedAt)

	require.NoError(t, j.Advance(JobFailed, "no text layer", now.Add(time.Second)))
	assert.Equal(t, "no text layer", j.Error)
	assert.True(t, j.Status.IsTerminal())
	assert.NotNil(t, j.FinishedAt)

	err := j.Advance(JobDone, "", now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, JobFailed, j.Status)
}

func TestFieldRecord(t *testing.T) {
	r := FieldRecord{}
	r.Set(FieldPO, "4500123456")
	r.Set(FieldDest, "")

	_, ok := r.Get(FieldDest)
	assert.False(t, ok)
	assert.Equal(t, []string{FieldPO}, r.Keys())

	out := r.Overlay(FieldRecord{FieldDest: "Vietnam", FieldPO: ""})
	assert.Equal(t, "4500123456", out[FieldPO])
	assert.Equal(t, "Vietnam", out[FieldDest])
	_, ok = r[FieldDest]
	assert.False(t, ok, "overlay must not mutate the receiver")
}

func TestFieldRecord_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    FieldRecord
		wantErr bool
	}{
		{
			name: "mixed scalars",
			in:   `{"Invoice Number":"INV-01","Total Cartons":120,"Total Gross Kgs":1234.5,"Plant":true,"DEST":null}`,
			want: FieldRecord{
				FieldInvoiceNumber: "INV-01",
				FieldTotalCartons:  "120",
				FieldTotalGrossKgs: "1234.5",
				FieldPlant:         "true",
			},
		},
		{name: "large number keeps digits", in: `{"PO":4500123456789}`, want: FieldRecord{FieldPO: "4500123456789"}},
		{name: "null record", in: `null`, want: nil},
		{name: "nested object", in: `{"PO":{"a":1}}`, wantErr: true},
		{name: "array", in: `{"PO":[1,2]}`, wantErr: true},
		{name: "not an object", in: `"PO"`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FieldRecord
			err := json.Unmarshal([]byte(tt.in), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("inside a struct", func(t *testing.T) {
		var in struct {
			Data FieldRecord `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"data":{"Total Cartons":120}}`), &in))
		assert.Equal(t, FieldRecord{FieldTotalCartons: "120"}, in.Data)
	})
}
