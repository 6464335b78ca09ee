// Package shootout runs the pre-bracket seeding shootout: one tournament-wide
// slot that at most one player occupies at a time, on a single locked board.
package shootout

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"darts-tournament/internal/domain"
	"darts-tournament/internal/rules"
)

type Player struct {
	ID   string
	Name string
}

// Orchestrator owns the slot and the per-player results. All methods are
// safe for concurrent use; a rejected transition leaves no trace.
type Orchestrator struct {
	mu        sync.Mutex
	slot      domain.ShootoutSlot
	entries   []domain.ShootoutEntry
	index     map[string]int
	finalized bool
}

// New opens a shootout for players in registration order.
func New(tournamentID string, players []Player) (*Orchestrator, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: shootout needs at least one player", domain.ErrRuleViolation)
	}
	entries := make([]domain.ShootoutEntry, len(players))
	for i, p := range players {
		entries[i] = domain.ShootoutEntry{PlayerID: p.ID, Name: p.Name, RegistrationSeq: i}
	}
	return Restore(domain.ShootoutSlot{
		TournamentID: tournamentID,
		Status:       domain.SlotWaitingForSelection,
	}, entries)
}

// Restore rebuilds an orchestrator from persisted state.
func Restore(slot domain.ShootoutSlot, entries []domain.ShootoutEntry) (*Orchestrator, error) {
	o := &Orchestrator{
		slot:    slot,
		entries: make([]domain.ShootoutEntry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		e.Throws = slices.Clone(e.Throws)
		if e.Score != nil {
			score := *e.Score
			e.Score = &score
		}
		o.entries[i] = e
	}
	slices.SortStableFunc(o.entries, func(a, b domain.ShootoutEntry) int {
		return cmp.Compare(a.RegistrationSeq, b.RegistrationSeq)
	})
	for i, e := range o.entries {
		if e.PlayerID == "" {
			return nil, fmt.Errorf("%w: player without id", domain.ErrRuleViolation)
		}
		if _, dup := o.index[e.PlayerID]; dup {
			return nil, fmt.Errorf("%w: player %s registered twice", domain.ErrRuleViolation, e.PlayerID)
		}
		o.index[e.PlayerID] = i
	}
	if err := o.check(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Orchestrator) check() error {
	s := o.slot
	if !s.Status.Valid() {
		return fmt.Errorf("shootout %s: unknown status %q", s.TournamentID, s.Status)
	}
	if s.Status.Occupied() != (s.ActivePlayerID != "") {
		return fmt.Errorf("shootout %s: active player %q inconsistent with status %s", s.TournamentID, s.ActivePlayerID, s.Status)
	}
	if s.ActivePlayerID != "" {
		if _, ok := o.index[s.ActivePlayerID]; !ok {
			return fmt.Errorf("shootout %s: active player %s is not registered", s.TournamentID, s.ActivePlayerID)
		}
		if s.LockedBoardID == "" {
			return fmt.Errorf("shootout %s: player selected without a locked board", s.TournamentID)
		}
	}
	if s.Status == domain.SlotCompleted && !o.allScored() {
		return fmt.Errorf("shootout %s: completed with unscored players", s.TournamentID)
	}
	return nil
}

func (o *Orchestrator) allScored() bool {
	for _, e := range o.entries {
		if !e.Scored() {
			return false
		}
	}
	return true
}

func (o *Orchestrator) entry(playerID string) (*domain.ShootoutEntry, error) {
	i, ok := o.index[playerID]
	if !ok {
		return nil, fmt.Errorf("%w: player %s is not in the shootout", domain.ErrNotFound, playerID)
	}
	return &o.entries[i], nil
}

func (o *Orchestrator) next(action Action) (domain.SlotStatus, error) {
	if o.finalized {
		return o.slot.Status, fmt.Errorf("%w: shootout %s already finalized", domain.ErrStateOrdering, o.slot.TournamentID)
	}
	return Next(o.slot.Status, action)
}

// SelectPlayer puts playerID into the slot. The first selection locks the
// shootout to boardID; later selections may omit the board but cannot move it.
func (o *Orchestrator) SelectPlayer(playerID, boardID string) (domain.ShootoutSlot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, err := o.next(ActionSelectPlayer)
	if err != nil {
		return o.slot, err
	}
	e, err := o.entry(playerID)
	if err != nil {
		return o.slot, err
	}
	if e.Scored() {
		return o.slot, fmt.Errorf("%w: player %s already threw, reset the player to retry", domain.ErrStateOrdering, playerID)
	}

	locked := o.slot.LockedBoardID
	switch {
	case locked == "" && boardID == "":
		return o.slot, fmt.Errorf("%w: first selection must name a board", domain.ErrRuleViolation)
	case locked == "":
		locked = boardID
	case boardID != "" && boardID != locked:
		return o.slot, fmt.Errorf("%w: shootout is locked to board %s", domain.ErrRuleViolation, locked)
	}

	o.slot.Status = next
	o.slot.ActivePlayerID = playerID
	o.slot.LockedBoardID = locked
	return o.slot, nil
}

func (o *Orchestrator) StartThrowing() (domain.ShootoutSlot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, err := o.next(ActionStartThrowing)
	if err != nil {
		return o.slot, err
	}
	o.slot.Status = next
	return o.slot, nil
}

// RecordThrows stores the active player's darts. Shootout scoring is a plain
// sum: no bust or checkout rules apply.
func (o *Orchestrator) RecordThrows(darts []domain.Dart) (domain.ShootoutSlot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, err := o.next(ActionRecordThrows)
	if err != nil {
		return o.slot, err
	}
	if err := rules.ValidateShape(darts); err != nil {
		return o.slot, err
	}
	e, err := o.entry(o.slot.ActivePlayerID)
	if err != nil {
		return o.slot, err
	}

	score := domain.Sum(darts)
	e.Score = &score
	e.Throws = slices.Clone(darts)
	o.slot.Status = next
	return o.slot, nil
}

// ConfirmFinish releases the slot, completing the shootout when every
// player has a score.
func (o *Orchestrator) ConfirmFinish() (domain.ShootoutSlot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, err := o.next(ActionConfirmFinish)
	if err != nil {
		return o.slot, err
	}
	if o.allScored() {
		next = domain.SlotCompleted
	}
	o.slot.Status = next
	o.slot.ActivePlayerID = ""
	return o.slot, nil
}

// CancelSelection releases a wrongly selected player without a result.
func (o *Orchestrator) CancelSelection() (domain.ShootoutSlot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, err := o.next(ActionCancelSelection)
	if err != nil {
		return o.slot, err
	}
	o.slot.Status = next
	o.slot.ActivePlayerID = ""
	return o.slot, nil
}

// ResetPlayer clears a recorded score so the player can throw again.
func (o *Orchestrator) ResetPlayer(playerID string) (domain.ShootoutSlot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, err := o.next(ActionResetPlayer)
	if err != nil {
		return o.slot, err
	}
	e, err := o.entry(playerID)
	if err != nil {
		return o.slot, err
	}
	e.Score = nil
	e.Throws = nil
	o.slot.Status = next
	return o.slot, nil
}

// Finalize ranks the players and releases the board lock. It can only run
// once; the result is meant for bracket seeding.
func (o *Orchestrator) Finalize() ([]domain.RankedPlayer, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, err := o.next(ActionFinalize); err != nil {
		return nil, err
	}
	ranked := Rank(o.entries)
	o.slot.LockedBoardID = ""
	o.finalized = true
	return ranked, nil
}

// Rank orders scored entries by score descending. Equal scores keep
// registration order.
func Rank(entries []domain.ShootoutEntry) []domain.RankedPlayer {
	ranked := make([]domain.RankedPlayer, 0, len(entries))
	for _, e := range entries {
		if !e.Scored() {
			continue
		}
		ranked = append(ranked, domain.RankedPlayer{
			PlayerID:        e.PlayerID,
			Name:            e.Name,
			Score:           *e.Score,
			RegistrationSeq: e.RegistrationSeq,
		})
	}
	slices.SortStableFunc(ranked, func(a, b domain.RankedPlayer) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.RegistrationSeq, b.RegistrationSeq)
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// PollResult answers a client that believes believedActive holds the slot.
type PollResult struct {
	Status           domain.SlotStatus
	ActivePlayerID   string
	ActivePlayerName string
	LockedBoardID    string
	Changed          bool
	Scored           int
	Total            int
}

func (o *Orchestrator) Poll(believedActive string) PollResult {
	o.mu.Lock()
	defer o.mu.Unlock()

	res := PollResult{
		Status:         o.slot.Status,
		ActivePlayerID: o.slot.ActivePlayerID,
		LockedBoardID:  o.slot.LockedBoardID,
		Changed:        believedActive != o.slot.ActivePlayerID,
		Total:          len(o.entries),
	}
	if e, err := o.entry(o.slot.ActivePlayerID); err == nil {
		res.ActivePlayerName = e.Name
	}
	for _, e := range o.entries {
		if e.Scored() {
			res.Scored++
		}
	}
	return res
}

func (o *Orchestrator) Slot() domain.ShootoutSlot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.slot
}

// Entries returns a copy of the entries in registration order.
func (o *Orchestrator) Entries() []domain.ShootoutEntry {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]domain.ShootoutEntry, len(o.entries))
	for i, e := range o.entries {
		e.Throws = slices.Clone(e.Throws)
		if e.Score != nil {
			score := *e.Score
			e.Score = &score
		}
		out[i] = e
	}
	return out
}
