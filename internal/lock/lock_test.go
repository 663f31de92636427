package lock

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// withTestDir points Dir at a temp directory for the duration of the test.
func withTestDir(t *testing.T) {
	t.Helper()
	orig := Dir
	dir := t.TempDir()
	setDir(dir)
	t.Cleanup(func() { setDir(orig) })
}

func TestAcquireRelease(t *testing.T) {
	withTestDir(t)

	l, err := Acquire(1000)
	require.NoError(t, err)
	require.NoError(t, l.Release())
}

func TestAcquire_SerializesConcurrentCallers(t *testing.T) {
	withTestDir(t)

	const n = 8
	var mu sync.Mutex
	inside := 0
	maxInside := 0

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			l, err := Acquire(2000)
			require.NoError(t, err)

			mu.Lock()
			inside++
			if inside > maxInside {
				maxInside = inside
			}
			mu.Unlock()

			mu.Lock()
			inside--
			mu.Unlock()

			require.NoError(t, l.Release())
		}()
	}
	wg.Wait()

	require.Equal(t, 1, maxInside, "critical section must never be entered by more than one caller at a time")
}

func TestAcquire_CreatesLockFileOnce(t *testing.T) {
	withTestDir(t)

	l1, err := Acquire(3000)
	require.NoError(t, err)
	require.NoError(t, l1.Release())

	l2, err := Acquire(3000)
	require.NoError(t, err)
	require.NoError(t, l2.Release())

	entries, err := os.ReadDir(Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
