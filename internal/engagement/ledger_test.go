package engagement

import (
	"math/rand"
	"testing"
)

func TestApplyVote_CastOnEmptyLedger(t *testing.T) {
	tr := ApplyVote(nil, "user-a", Upvote)

	if tr.Action != VoteCast {
		t.Fatalf("expected cast, got %v", tr.Action)
	}
	if tr.UpDelta != 1 || tr.DownDelta != 0 {
		t.Fatalf("expected deltas +1/0, got %d/%d", tr.UpDelta, tr.DownDelta)
	}
	if len(tr.Ledger) != 1 || tr.Ledger[0].UserID != "user-a" || tr.Ledger[0].Vote != Upvote {
		t.Fatalf("unexpected ledger: %+v", tr.Ledger)
	}
}

func TestApplyVote_ToggleOffRemovesEntry(t *testing.T) {
	ledger := Ledger{{UserID: "user-a", Vote: Upvote}}
	tr := ApplyVote(ledger, "user-a", Upvote)

	if tr.Action != VoteRetract {
		t.Fatalf("expected retract, got %v", tr.Action)
	}
	if tr.UpDelta != -1 || tr.DownDelta != 0 {
		t.Fatalf("expected deltas -1/0, got %d/%d", tr.UpDelta, tr.DownDelta)
	}
	if len(tr.Ledger) != 0 {
		t.Fatalf("expected empty ledger, got %+v", tr.Ledger)
	}
}

func TestApplyVote_FlipRewritesEntry(t *testing.T) {
	ledger := Ledger{{UserID: "user-a", Vote: Upvote}}
	tr := ApplyVote(ledger, "user-a", Downvote)

	if tr.Action != VoteSwitch {
		t.Fatalf("expected switch, got %v", tr.Action)
	}
	if tr.UpDelta != -1 || tr.DownDelta != 1 {
		t.Fatalf("expected deltas -1/+1, got %d/%d", tr.UpDelta, tr.DownDelta)
	}
	if len(tr.Ledger) != 1 || tr.Ledger[0].Vote != Downvote {
		t.Fatalf("unexpected ledger: %+v", tr.Ledger)
	}
}

func TestApplyVote_DoesNotMutateInput(t *testing.T) {
	ledger := Ledger{{UserID: "user-a", Vote: Upvote}, {UserID: "user-b", Vote: Downvote}}
	_ = ApplyVote(ledger, "user-a", Downvote)
	_ = ApplyVote(ledger, "user-b", Downvote)

	if ledger[0].Vote != Upvote || len(ledger) != 2 {
		t.Fatalf("input ledger mutated: %+v", ledger)
	}
}

// Toggle-off twice returns the ledger to its state before the first call.
func TestApplyVote_ToggleIdempotencePair(t *testing.T) {
	start := Ledger{{UserID: "user-b", Vote: Downvote}}

	first := ApplyVote(start, "user-a", Upvote)
	second := ApplyVote(first.Ledger, "user-a", Upvote)

	if up := second.Ledger.Tally(Upvote); up != start.Tally(Upvote) {
		t.Fatalf("expected upvote tally back to %d, got %d", start.Tally(Upvote), up)
	}
	if first.UpDelta+second.UpDelta != 0 || first.DownDelta+second.DownDelta != 0 {
		t.Fatal("expected deltas of a toggle pair to cancel out")
	}
}

// Scenario from the product flow: A upvotes, B upvotes, A clicks upvote again.
func TestApplyVote_TwoUsersToggleScenario(t *testing.T) {
	up, down := 0, 0
	apply := func(l Ledger, user string, dir Direction) Ledger {
		tr := ApplyVote(l, user, dir)
		up += tr.UpDelta
		down += tr.DownDelta
		return tr.Ledger
	}

	var ledger Ledger
	ledger = apply(ledger, "user-a", Upvote)
	if up != 1 {
		t.Fatalf("after A upvote expected 1, got %d", up)
	}
	ledger = apply(ledger, "user-b", Upvote)
	if up != 2 {
		t.Fatalf("after B upvote expected 2, got %d", up)
	}
	ledger = apply(ledger, "user-a", Upvote)
	if up != 1 {
		t.Fatalf("after A toggle-off expected 1, got %d", up)
	}
	if down != 0 {
		t.Fatalf("expected no downvotes, got %d", down)
	}
	if ledger.Find("user-a") != -1 || ledger.Find("user-b") == -1 {
		t.Fatalf("unexpected ledger: %+v", ledger)
	}
}

// Counters derived from deltas must equal ledger tallies after any sequence
// of votes, and no user may ever appear twice.
func TestApplyVote_InvariantsUnderRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	users := []string{"u1", "u2", "u3", "u4", "u5"}
	dirs := []Direction{Upvote, Downvote}

	var ledger Ledger
	up, down := 0, 0
	for i := 0; i < 2000; i++ {
		tr := ApplyVote(ledger, users[rng.Intn(len(users))], dirs[rng.Intn(2)])
		ledger = tr.Ledger
		up += tr.UpDelta
		down += tr.DownDelta

		if up != ledger.Tally(Upvote) || down != ledger.Tally(Downvote) {
			t.Fatalf("step %d: counters %d/%d diverged from tallies %d/%d",
				i, up, down, ledger.Tally(Upvote), ledger.Tally(Downvote))
		}
		seen := map[string]bool{}
		for _, v := range ledger {
			if seen[v.UserID] {
				t.Fatalf("step %d: duplicate ledger entry for %s", i, v.UserID)
			}
			seen[v.UserID] = true
		}
		if up < 0 || down < 0 {
			t.Fatalf("step %d: negative counter %d/%d", i, up, down)
		}
	}
}

func TestDirection_Valid(t *testing.T) {
	if !Upvote.Valid() || !Downvote.Valid() {
		t.Fatal("expected upvote/downvote to be valid")
	}
	if Direction("sideways").Valid() {
		t.Fatal("expected unknown direction to be invalid")
	}
}
