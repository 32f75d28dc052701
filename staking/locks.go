// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package staking

import (
	"math/big"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/sproutly-tech/sproutly-bridging/chains/evm/calls/contracts"
	"github.com/sproutly-tech/sproutly-bridging/units"
)

const (
	LOCKS_TTL     = 15 * time.Second
	maxBatchReads = 8
)

type ScheduleReader interface {
	ScheduleCount(beneficiary common.Address) (*big.Int, error)
	ScheduleByIndex(holder common.Address, index *big.Int) (*contracts.VestingSchedule, error)
	ScheduleID(holder common.Address, index *big.Int) ([32]byte, error)
}

// LocksResult is the derived list of active locks for one beneficiary.
// Dropped counts schedules that failed to fetch and were omitted, so callers
// can tell the list might be incomplete.
type LocksResult struct {
	Locks   []Lock
	Dropped int
}

type LocksMetrics interface {
	TrackDroppedSchedules(count int)
}

// LocksReader batch-reads all vesting schedules owned by an account and
// derives their active-lock views. Results are cached briefly; any mutating
// action must invalidate the owner's entry, which forces a whole-list
// refresh on the next read.
type LocksReader struct {
	vesting  ScheduleReader
	decimals uint8
	now      func() time.Time
	metrics  LocksMetrics

	cache *ttlcache.Cache[string, *LocksResult]
}

func NewLocksReader(vesting ScheduleReader, decimals uint8, metrics LocksMetrics) *LocksReader {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, *LocksResult](LOCKS_TTL),
	)
	go cache.Start()

	return &LocksReader{
		vesting:  vesting,
		decimals: decimals,
		now:      time.Now,
		metrics:  metrics,
		cache:    cache,
	}
}

// ActiveLocks returns the beneficiary's non-terminal locks with derived
// amounts and progress fields computed at the current wall clock.
func (r *LocksReader) ActiveLocks(beneficiary common.Address) (*LocksResult, error) {
	if cached := r.cache.Get(beneficiary.Hex()); cached != nil {
		return cached.Value(), nil
	}

	count, err := r.vesting.ScheduleCount(beneficiary)
	if err != nil {
		return nil, err
	}

	n := int(count.Int64())
	if n == 0 {
		result := &LocksResult{Locks: []Lock{}}
		r.cache.Set(beneficiary.Hex(), result, ttlcache.DefaultTTL)
		return result, nil
	}

	now := r.now()
	views := make([]*Lock, n)
	var dropped int64

	p := pool.New().WithMaxGoroutines(maxBatchReads)
	for i := 0; i < n; i++ {
		index := i
		p.Go(func() {
			view, err := r.fetchLock(beneficiary, index, now)
			if err != nil {
				log.Warn().
					Str("beneficiary", beneficiary.Hex()).
					Int("index", index).
					Msgf("Dropping unreadable vesting schedule: %v", err)
				atomic.AddInt64(&dropped, 1)
				return
			}
			views[index] = view
		})
	}
	p.Wait()

	locks := make([]Lock, 0, n)
	for _, view := range views {
		if view == nil {
			continue
		}
		locks = append(locks, *view)
	}

	if dropped > 0 && r.metrics != nil {
		r.metrics.TrackDroppedSchedules(int(dropped))
	}

	result := &LocksResult{Locks: locks, Dropped: int(dropped)}
	r.cache.Set(beneficiary.Hex(), result, ttlcache.DefaultTTL)
	return result, nil
}

// Invalidate drops the cached list for one beneficiary. Called after any
// mutating action (new stake, release).
func (r *LocksReader) Invalidate(beneficiary common.Address) {
	r.cache.Delete(beneficiary.Hex())
}

// fetchLock reads one schedule and derives its view, or nil for terminal
// schedules.
func (r *LocksReader) fetchLock(beneficiary common.Address, index int, now time.Time) (*Lock, error) {
	schedule, err := r.vesting.ScheduleByIndex(beneficiary, big.NewInt(int64(index)))
	if err != nil {
		return nil, err
	}
	if terminal(schedule) {
		return nil, nil
	}

	id, err := r.vesting.ScheduleID(beneficiary, big.NewInt(int64(index)))
	if err != nil {
		return nil, err
	}

	vested := VestedAmount(schedule, now)
	claimable := ClaimableAmount(schedule, now)
	unlock := UnlockDate(schedule)

	return &Lock{
		ID:          id,
		Beneficiary: schedule.Beneficiary,

		AmountTotal: schedule.AmountTotal,
		Released:    schedule.Released,
		Vested:      vested,
		Claimable:   claimable,

		AmountDisplay:    units.FormatThousands(units.ToHuman(schedule.AmountTotal, r.decimals)),
		ClaimableDisplay: units.FormatThousands(units.ToHuman(claimable, r.decimals)),
		DurationLabel:    units.DurationLabel(schedule.Duration.Uint64()),

		Progress:      Progress(schedule, now),
		UnlockDate:    unlock,
		TimeRemaining: units.TimeRemaining(unlock, now),
	}, nil
}
