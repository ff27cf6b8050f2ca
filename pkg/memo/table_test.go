package memo

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_ComputesOnce(t *testing.T) {
	t.Parallel()

	var table Table[string, int]

	calls := 0
	compute := func() int {
		calls++

		return 42
	}

	assert.Equal(t, 42, table.Get("a", compute))
	assert.Equal(t, 42, table.Get("a", compute))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, table.Len())
}

func TestTable_NilValuesAreCached(t *testing.T) {
	t.Parallel()

	var table Table[string, *int]

	calls := 0
	compute := func() *int {
		calls++

		return nil
	}

	assert.Nil(t, table.Get("missing", compute))
	assert.Nil(t, table.Get("missing", compute))
	assert.Equal(t, 1, calls)
}

func TestTable_ConcurrentPopulation(t *testing.T) {
	t.Parallel()

	var (
		table Table[int, string]
		calls atomic.Int32
		wg    sync.WaitGroup
	)

	results := make([]string, 32)

	for i := range results {
		wg.Add(1)

		go func(idx int) {
			defer wg.Done()

			results[idx] = table.Get(7, func() string {
				calls.Add(1)

				return "seven"
			})
		}(i)
	}

	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "seven", r)
	}

	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	assert.Equal(t, 1, table.Len())
}
