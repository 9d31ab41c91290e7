package dstructs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlQueuePushFlush(t *testing.T) {
	q := NewFlQueue[int](0)

	one, two := 1, 2
	assert.True(t, q.Push(&one))
	assert.True(t, q.Push(&two))
	assert.Equal(t, 2, q.Len())

	flushed := q.Flush()
	assert.Len(t, flushed, 2)
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Flush())
}

func TestFlQueueBounded(t *testing.T) {
	q := NewFlQueue[int](2)

	one, two, three := 1, 2, 3
	assert.True(t, q.Push(&one))
	assert.True(t, q.Push(&two))
	assert.False(t, q.Push(&three), "push beyond limit should be dropped")
	assert.Equal(t, 2, q.Len())

	q.Flush()
	assert.True(t, q.Push(&three), "queue accepts again after flush")
}

func TestFlQueueFlushIsolation(t *testing.T) {
	q := NewFlQueue[int](0)

	one := 1
	q.Push(&one)
	first := q.Flush()

	two := 2
	q.Push(&two)

	assert.Equal(t, 1, *first[0], "flushed batch must not alias later pushes")
}
