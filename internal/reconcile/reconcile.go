// Package reconcile decides how a client's local snapshot absorbs an
// authoritative remote snapshot that arrived by push or poll, and packages
// engine events into the broadcast deltas that feed those clients.
package reconcile

// Decision records which rule settled a reconcile call.
type Decision string

const (
	DecisionNewGame    Decision = "new_game"
	DecisionFreshSync  Decision = "fresh_sync"
	DecisionForced     Decision = "forced"
	DecisionSuppressed Decision = "suppressed"
	DecisionApplied    Decision = "applied"
	// DecisionRefetch leaves the local view untouched; the caller must
	// fetch authoritative state before trusting it again.
	DecisionRefetch Decision = "refetch"
)

// Overwrites reports whether the remote snapshot replaced the local one.
func (d Decision) Overwrites() bool {
	return d != DecisionSuppressed && d != DecisionRefetch
}

type Options struct {
	// Force bypasses the local-ahead guard. Set for undo, edit, reset
	// and explicit reconnects.
	Force bool
}

// Match reconciles a local match view against a remote one. Rules apply in
// order: a different game always overwrites; a fresh local copy takes any
// remote progress; a forced sync overwrites; a local copy with more throws
// than the remote is kept; anything else is applied.
func Match(local, remote MatchView, opts Options) (MatchView, Decision) {
	switch {
	case !local.sameGame(remote):
		return remote, DecisionNewGame
	case local.Fresh() && remote.progressed():
		return remote, DecisionFreshSync
	case opts.Force:
		return remote, DecisionForced
	case local.ThrowCount > remote.ThrowCount:
		return local, DecisionSuppressed
	}
	return remote, DecisionApplied
}

// Shootout reconciles the shootout slot. The slot version plays the role
// the throw count plays for matches.
func Shootout(local, remote ShootoutView, opts Options) (ShootoutView, Decision) {
	switch {
	case local.TournamentID != remote.TournamentID:
		return remote, DecisionNewGame
	case opts.Force:
		return remote, DecisionForced
	case local.Version > remote.Version:
		return local, DecisionSuppressed
	}
	return remote, DecisionApplied
}
