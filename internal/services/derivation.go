package services

import (
	"strings"

	"shopledger/internal/models"
)

// EventKind classifies an action tag at the derivation boundary. Storage keeps
// actions as free strings; parsing closes the vocabulary here so an
// unrecognized tag folds to KindOpaque instead of silently doing something.
type EventKind int

const (
	KindOpaque EventKind = iota
	KindSold
	KindReturned
	KindMemo
	KindRepairOut
	KindReceived
)

// ParseAction maps an action string to its derivation kind. Recognition is by
// exact match, except repair send-outs which carry vendor detail after the tag
// ("in repair: battery") and match by prefix.
func ParseAction(action string) EventKind {
	switch action {
	case models.ActionSold:
		return KindSold
	case models.ActionReturned:
		return KindReturned
	case models.ActionMemo:
		return KindMemo
	case models.ActionReceived:
		return KindReceived
	}
	if strings.HasPrefix(action, models.ActionRepairPrefix) {
		return KindRepairOut
	}
	return KindOpaque
}

// DerivationState is the replayed sub-state of an item: whether it is
// currently sold, out for repair, or out on memo. InRepair is orthogonal to
// the visible status.
type DerivationState struct {
	Sold     bool
	InRepair bool
	Memo     bool
}

// Replay folds an item's event history, in order, into its derivation state.
// Only action tags and their order matter; timestamps and payload fields are
// ignored, so the result is deterministic for a given history.
func Replay(history []*models.ItemEvent) DerivationState {
	var st DerivationState
	for _, ev := range history {
		st = st.apply(ParseAction(ev.Action))
	}
	return st
}

func (st DerivationState) apply(kind EventKind) DerivationState {
	switch kind {
	case KindSold:
		st.Sold = true
	case KindReturned:
		st.Sold = false
	case KindRepairOut:
		st.InRepair = true
	case KindMemo:
		st.Memo = true
	case KindReceived:
		if st.InRepair {
			// A receive that closes a repair episode restores whatever
			// sale/memo sub-state was active before the item went out: the
			// watch came back from the vendor but had already been sold or
			// memoed. Asymmetric with the plain-receive branch below, and
			// load-bearing for existing data; needs product sign-off before
			// any change.
			st.InRepair = false
		} else {
			// A non-repair receive puts the item back in the shop, clearing
			// both sale and memo.
			st.Sold = false
			st.Memo = false
		}
	}
	return st
}

// NextStatusOnReceive computes the canonical status to store for a receive
// event occurring after the replayed history.
func NextStatusOnReceive(st DerivationState) models.ItemStatus {
	if st.InRepair {
		switch {
		case st.Sold:
			return models.StatusSold
		case st.Memo:
			return models.StatusMemo
		}
	}
	return models.StatusInStock
}
