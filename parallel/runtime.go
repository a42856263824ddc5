package parallel

import (
	"fmt"
	"sync"

	"github.com/npandachg/PENNANT/mesh"
)

// Barrier is a reusable rendezvous for NP ranks.
type Barrier struct {
	mu    sync.Mutex
	cond  *sync.Cond
	np    int
	count int
	phase int
}

func NewBarrier(np int) (b *Barrier) {
	b = &Barrier{np: np}
	b.cond = sync.NewCond(&b.mu)
	return
}

func (b *Barrier) Wait() {
	b.mu.Lock()
	phase := b.phase
	b.count++
	if b.count == b.np {
		b.count = 0
		b.phase++
		b.cond.Broadcast()
	} else {
		for phase == b.phase {
			b.cond.Wait()
		}
	}
	b.mu.Unlock()
}

// HaloMsg carries the master-point values one rank publishes to one slave.
type HaloMsg struct {
	From   int
	Values []float64
}

// Runtime hosts NP in-process ranks and the mailboxes they exchange halo
// values and reduction contributions through.
type Runtime struct {
	NP      int
	halo    *MailBox[HaloMsg]
	reduce  *MailBox[float64]
	barrier *Barrier
}

func NewRuntime(np int) (rt *Runtime) {
	if np < 1 {
		panic(fmt.Errorf("invalid rank count %d", np))
	}
	rt = &Runtime{
		NP:      np,
		halo:    NewMailBox[HaloMsg](np),
		reduce:  NewMailBox[float64](np),
		barrier: NewBarrier(np),
	}
	return
}

// Run executes body once per rank, one goroutine each, and returns when every
// rank has finished.
func (rt *Runtime) Run(body func(ctx *RankContext)) {
	var wg sync.WaitGroup
	for color := 0; color < rt.NP; color++ {
		wg.Add(1)
		go func(color int) {
			defer wg.Done()
			body(&RankContext{Color: color, rt: rt})
		}(color)
	}
	wg.Wait()
}

// RankContext is one rank's view of the runtime: its color, the rank count,
// and the send/receive capability for halo buffers and reductions. A
// single-rank runtime simply has no neighbors, so every operation degenerates
// without special casing.
type RankContext struct {
	Color int
	rt    *Runtime
}

func (c *RankContext) NumRanks() int { return c.rt.NP }

// Barrier blocks until every rank has reached it.
func (c *RankContext) Barrier() { c.rt.barrier.Wait() }

// HaloExchange publishes this rank's master point values and overwrites its
// slaved point values with what the master ranks published. The per-relation
// point lists on the two sides of each pairing enumerate the shared boundary
// in the same order, so values are matched purely by position.
func (c *RankContext) HaloExchange(h *mesh.Halo, vals []float64) {
	mColors, mLists := h.MasterRelations()
	for i, slave := range mColors {
		msg := HaloMsg{From: c.Color, Values: make([]float64, len(mLists[i]))}
		for k, p := range mLists[i] {
			msg.Values[k] = vals[p]
		}
		c.rt.halo.PostMessage(c.Color, slave, msg)
	}
	c.rt.halo.DeliverMyMessages(c.Color)
	c.rt.barrier.Wait()
	c.rt.halo.ReceiveMyMessages(c.Color)

	byMaster := make(map[int][]float64)
	for _, msg := range c.rt.halo.ReceiveMsgQs[c.Color].Cells() {
		if _, dup := byMaster[msg.From]; dup {
			panic(fmt.Errorf("rank %d received two halo buffers from master %d",
				c.Color, msg.From))
		}
		byMaster[msg.From] = msg.Values
	}
	sColors, sLists := h.SlaveRelations()
	for i, master := range sColors {
		values, ok := byMaster[master]
		if !ok || len(values) != len(sLists[i]) {
			panic(fmt.Errorf("rank %d: halo buffer from master %d has %d values, want %d",
				c.Color, master, len(values), len(sLists[i])))
		}
		for k, p := range sLists[i] {
			vals[p] = values[k]
		}
	}
	c.rt.halo.ClearMyMessages(c.Color)
	c.rt.barrier.Wait()
}

// GlobalSum is an all-reduce sum across ranks.
func (c *RankContext) GlobalSum(x float64) (sum float64) {
	return c.allReduce(x, func(a, b float64) float64 { return a + b })
}

// GlobalMin is an all-reduce min across ranks.
func (c *RankContext) GlobalMin(x float64) (mn float64) {
	return c.allReduce(x, func(a, b float64) float64 {
		if b < a {
			return b
		}
		return a
	})
}

func (c *RankContext) allReduce(x float64, combine func(a, b float64) float64) (y float64) {
	c.rt.reduce.PostMessageToAll(c.Color, x)
	c.rt.reduce.DeliverMyMessages(c.Color)
	c.rt.barrier.Wait()
	c.rt.reduce.ReceiveMyMessages(c.Color)
	y = x
	for _, v := range c.rt.reduce.ReceiveMsgQs[c.Color].Cells() {
		y = combine(y, v)
	}
	c.rt.reduce.ClearMyMessages(c.Color)
	c.rt.barrier.Wait()
	return
}
