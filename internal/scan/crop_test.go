package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestCropToSync(t *testing.T) {
	rec := testRecord("a", 3, 10, 1)
	rec.Aux = seqDense(2, 10, 100)
	rec.Timestamps = []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	rec.Sync = SyncEvents{Frames: []int{2, 5, 7}}

	require.NoError(t, rec.CropToSync())

	assert.Equal(t, 6, rec.Frames(), "span 2..7 inclusive is 6 frames")
	assert.Equal(t, 3, rec.Channels())
	assert.Equal(t, []float64{2, 3, 4, 5, 6, 7}, rec.Timestamps)
	assert.Equal(t, []int{0, 3, 5}, rec.Sync.Frames, "pulses rebased to cropped origin")

	_, auxCols := rec.Aux.Dims()
	assert.Equal(t, 6, auxCols)
	assert.Equal(t, 10, rec.RawFrames, "raw frame count unchanged by crop")
}

func TestCropToSyncTooFewPulses(t *testing.T) {
	for _, pulses := range [][]int{nil, {}, {4}} {
		rec := testRecord("a", 2, 8, 1)
		rec.Sync = SyncEvents{Frames: pulses}
		require.NoError(t, rec.CropToSync())
		assert.Equal(t, 8, rec.Frames(), "fewer than two pulses leaves the record uncropped")
	}
}

func TestCropToSyncOutOfRange(t *testing.T) {
	rec := testRecord("a", 2, 8, 1)
	rec.Sync = SyncEvents{Frames: []int{3, 12}}
	assert.Error(t, rec.CropToSync())
}

func TestCropToSyncNilAux(t *testing.T) {
	rec := testRecord("a", 2, 8, 1)
	rec.Timestamps = make([]float64, 8)
	rec.Sync = SyncEvents{Frames: []int{1, 6}}
	require.NoError(t, rec.CropToSync())
	assert.Nil(t, rec.Aux)
	assert.Equal(t, 6, rec.Frames())
}

func TestCropToSyncPreservesValues(t *testing.T) {
	data := mat.NewDense(1, 5, []float64{10, 11, 12, 13, 14})
	rec := &SystemRecord{
		Data:      data,
		Sync:      SyncEvents{Frames: []int{1, 3}},
		RawFrames: 5,
	}
	require.NoError(t, rec.CropToSync())
	assert.Equal(t, []float64{11, 12, 13}, rec.Data.RawRowView(0))
}
