package hardrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdFIFO_FIFOOrder(t *testing.T) {
	var q idFIFO
	require.NoError(t, q.push(3))
	require.NoError(t, q.push(1))
	require.NoError(t, q.push(4))

	id, err := q.pop()
	require.NoError(t, err)
	assert.EqualValues(t, 3, id)

	id, err = q.pop()
	require.NoError(t, err)
	assert.EqualValues(t, 1, id)

	id, err = q.pop()
	require.NoError(t, err)
	assert.EqualValues(t, 4, id)

	assert.True(t, q.empty())
}

func TestIdFIFO_OverflowUnderflow(t *testing.T) {
	var q idFIFO
	for i := 0; i < MaxTasks; i++ {
		require.NoError(t, q.push(TaskID(i)))
	}
	assert.ErrorIs(t, q.push(99), ErrReadyOverflow)

	for i := 0; i < MaxTasks; i++ {
		_, err := q.pop()
		require.NoError(t, err)
	}
	_, err := q.pop()
	assert.ErrorIs(t, err, ErrReadyUnderflow)
}

func TestIdFIFO_WrapsAroundRing(t *testing.T) {
	var q idFIFO
	for i := 0; i < MaxTasks-1; i++ {
		require.NoError(t, q.push(TaskID(i)))
	}
	for i := 0; i < MaxTasks-2; i++ {
		_, err := q.pop()
		require.NoError(t, err)
	}
	require.NoError(t, q.push(1))
	require.NoError(t, q.push(2))
	_, err := q.pop()
	require.NoError(t, err)
	require.NoError(t, q.push(3))
	require.NoError(t, q.push(4))

	var got []TaskID
	for !q.empty() {
		id, err := q.pop()
		require.NoError(t, err)
		got = append(got, id)
	}
	assert.Equal(t, []TaskID{1, 2, 3, 4}, got)
}
