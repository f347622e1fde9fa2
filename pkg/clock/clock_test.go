package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeAfterFuncFiresOnAdvance(t *testing.T) {
	fake := NewFake(time.Unix(0, 0))

	fired := 0
	fake.AfterFunc(10*time.Second, func() { fired++ })

	fake.Advance(9 * time.Second)
	assert.Equal(t, 0, fired)

	fake.Advance(1 * time.Second)
	assert.Equal(t, 1, fired)

	// one-shot: further advances do not re-fire
	fake.Advance(time.Minute)
	assert.Equal(t, 1, fired)
}

func TestFakeCancelDropsCallback(t *testing.T) {
	fake := NewFake(time.Unix(0, 0))

	fired := false
	task := fake.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, task.Cancel())
	assert.False(t, task.Cancel())

	fake.Advance(time.Minute)
	assert.False(t, fired)
}

func TestFakeFiresInDeadlineOrder(t *testing.T) {
	fake := NewFake(time.Unix(0, 0))

	var order []int
	fake.AfterFunc(3*time.Second, func() { order = append(order, 3) })
	fake.AfterFunc(1*time.Second, func() { order = append(order, 1) })
	fake.AfterFunc(2*time.Second, func() { order = append(order, 2) })

	fake.Advance(5 * time.Second)
	assert.Equal(t, []int{1, 2, 3}, order)
}
