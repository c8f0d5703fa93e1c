package engagement

// Direction is a vote direction on a post or review.
type Direction string

const (
	Upvote   Direction = "upvote"
	Downvote Direction = "downvote"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == Upvote || d == Downvote
}

// Voter is one ledger entry: who voted and which way.
type Voter struct {
	UserID string    `json:"user_id"`
	Vote   Direction `json:"vote"`
}

// Ledger is the per-entity vote record, at most one entry per user.
type Ledger []Voter

// Tally counts ledger entries in the given direction.
func (l Ledger) Tally(dir Direction) int {
	n := 0
	for _, v := range l {
		if v.Vote == dir {
			n++
		}
	}
	return n
}

// Find returns the entry index for userID, or -1.
func (l Ledger) Find(userID string) int {
	for i, v := range l {
		if v.UserID == userID {
			return i
		}
	}
	return -1
}

// VoteAction describes what a vote transition did.
type VoteAction int

const (
	// VoteCast added a new ledger entry.
	VoteCast VoteAction = iota
	// VoteRetract removed the user's entry (same direction clicked twice).
	VoteRetract
	// VoteSwitch flipped the user's entry to the other direction.
	VoteSwitch
)

// Transition is the result of applying one vote to a ledger.
type Transition struct {
	Ledger    Ledger
	Action    VoteAction
	UpDelta   int
	DownDelta int
}

// ApplyVote applies the 3-way vote transition for userID:
//
//   - no entry        -> append {userID, dir}, +1 to that counter
//   - same direction  -> remove the entry (un-vote), -1 to that counter
//   - other direction -> rewrite the entry, -1 old counter, +1 new counter
//
// The input ledger is never mutated; the returned ledger always holds at most
// one entry per user, and applying the deltas to counters that matched the
// input ledger keeps them matching the output ledger.
func ApplyVote(ledger Ledger, userID string, dir Direction) Transition {
	i := ledger.Find(userID)

	if i < 0 {
		next := make(Ledger, len(ledger), len(ledger)+1)
		copy(next, ledger)
		next = append(next, Voter{UserID: userID, Vote: dir})
		t := Transition{Ledger: next, Action: VoteCast}
		if dir == Upvote {
			t.UpDelta = 1
		} else {
			t.DownDelta = 1
		}
		return t
	}

	if ledger[i].Vote == dir {
		next := make(Ledger, 0, len(ledger)-1)
		next = append(next, ledger[:i]...)
		next = append(next, ledger[i+1:]...)
		t := Transition{Ledger: next, Action: VoteRetract}
		if dir == Upvote {
			t.UpDelta = -1
		} else {
			t.DownDelta = -1
		}
		return t
	}

	next := make(Ledger, len(ledger))
	copy(next, ledger)
	next[i].Vote = dir
	t := Transition{Ledger: next, Action: VoteSwitch}
	if dir == Upvote {
		t.UpDelta, t.DownDelta = 1, -1
	} else {
		t.UpDelta, t.DownDelta = -1, 1
	}
	return t
}
