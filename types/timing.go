package types

import "math/bits"

// Timing describes a vesting schedule. An untimed account has no minimum
// balance.
type Timing struct {
	IsTimed               bool       `json:"isTimed"`
	InitialMinimumBalance Balance    `json:"initialMinimumBalance"`
	CliffTime             GlobalSlot `json:"cliffTime"`
	CliffAmount           Amount     `json:"cliffAmount"`
	VestingPeriod         GlobalSlot `json:"vestingPeriod"`
	VestingIncrement      Amount     `json:"vestingIncrement"`
}

// MinimumBalanceAtSlot returns the balance that must stay locked at slot.
// Before the cliff the full initial minimum is locked; at the cliff
// CliffAmount is released, and every VestingPeriod afterwards another
// VestingIncrement, never going below zero. A zero VestingPeriod vests
// everything at the cliff.
func (t Timing) MinimumBalanceAtSlot(slot GlobalSlot) Balance {
	if !t.IsTimed {
		return 0
	}
	if slot < t.CliffTime {
		return t.InitialMinimumBalance
	}
	if t.VestingPeriod == 0 {
		return 0
	}
	remaining := saturatingSub(uint64(t.InitialMinimumBalance), uint64(t.CliffAmount))
	periods := uint64(slot-t.CliffTime) / uint64(t.VestingPeriod)
	vested := mulSaturate(periods, uint64(t.VestingIncrement))
	return Balance(saturatingSub(remaining, vested))
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

func mulSaturate(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return ^uint64(0)
	}
	return lo
}
