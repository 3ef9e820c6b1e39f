package audioring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushPopRoundTrip(t *testing.T) {
	r := NewRing(8)
	r.Push([]float64{1, 2, 3})

	dst := make([]float64, 3)
	n := r.Pop(dst)

	require.Equal(t, 3, n)
	require.Equal(t, []float64{1, 2, 3}, dst)
}

func TestPopEmptyReturnsZero(t *testing.T) {
	r := NewRing(8)
	dst := make([]float64, 4)
	require.Equal(t, 0, r.Pop(dst))
}

func TestPushDropsOnFull(t *testing.T) {
	r := NewRing(4) // rounds to 4
	r.Push([]float64{1, 2, 3, 4, 5, 6})

	require.Equal(t, uint64(2), r.Dropped())
	require.Equal(t, 4, r.Len())
}

func TestPopPartial(t *testing.T) {
	r := NewRing(8)
	r.Push([]float64{1, 2})

	dst := make([]float64, 5)
	n := r.Pop(dst)
	require.Equal(t, 2, n)
}

func TestConcurrentProducerConsumer(t *testing.T) {
	r := NewRing(1024)
	const total = 10000

	var wg sync.WaitGroup
	wg.Add(1)
	producerDone := make(chan struct{})
	go func() {
		defer wg.Done()
		defer close(producerDone)
		for i := 0; i < total; i++ {
			r.Push([]float64{float64(i)})
		}
	}()

	read := 0
	buf := make([]float64, 16)
	for {
		n := r.Pop(buf)
		read += n
		select {
		case <-producerDone:
			if r.Len() == 0 {
				wg.Wait()
				require.Equal(t, total, read+int(r.Dropped()))
				return
			}
		default:
		}
	}
}
