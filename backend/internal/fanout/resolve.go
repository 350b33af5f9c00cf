// Package fanout decides how a member's attitude changes and which
// denormalised counters and notices follow from a state change. Planning is
// pure; Applier and Notifier carry the plans out against the stores on a
// best-effort basis.
package fanout

import (
	"fmt"

	"github.com/plaza-dev/plaza/shared/domain"
)

type Mode string

const (
	Initiate Mode = "initiate"
	Revoke   Mode = "revoke"
	Reverse  Mode = "reverse"
)

// Transition is the outcome of resolving a request against the stored value.
// Next is the attitude to store afterwards.
type Transition struct {
	Mode      Mode
	Previous  domain.Attitude
	Requested domain.Attitude
	Next      domain.Attitude
}

// Resolve compares the stored attitude with the requested one:
//
//	previous == requested        -> revoke,   next 0
//	previous * requested < 0     -> reverse,  next -previous
//	otherwise                    -> initiate, next requested
func Resolve(previous, requested domain.Attitude) (Transition, error) {
	if !domain.IsValidAttitude(previous) {
		return Transition{}, fmt.Errorf("invalid stored attitude %d", previous)
	}
	if !domain.IsValidAttitude(requested) {
		return Transition{}, fmt.Errorf("invalid requested attitude %d", requested)
	}

	t := Transition{Previous: previous, Requested: requested}
	switch {
	case previous == requested:
		t.Mode = Revoke
		t.Next = domain.Neutral
	case previous*requested < 0:
		t.Mode = Reverse
		t.Next = -previous
	default:
		t.Mode = Initiate
		t.Next = requested
	}
	return t, nil
}

// counters returns the counter stems touched by t, in application order.
func (t Transition) counters() []string {
	switch t.Mode {
	case Initiate:
		if t.Requested > 0 {
			return []string{"Liked"}
		}
		return []string{"Disliked"}
	case Revoke:
		if t.Previous > 0 {
			return []string{"UndoLiked"}
		}
		return []string{"UndoDisliked"}
	case Reverse:
		if t.Requested > 0 {
			return []string{"UndoDisliked", "Liked"}
		}
		return []string{"UndoLiked", "Disliked"}
	}
	return nil
}

// NotifiesLike reports whether the transition should produce a like notice
// for authorId. Self-likes never do.
func (t Transition) NotifiesLike(actor, authorId domain.MemberId) bool {
	return t.Mode == Initiate && t.Requested > 0 && actor != authorId
}
