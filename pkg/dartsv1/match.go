// Package dartsv1 holds the request and response messages of the darts.v1
// MatchService and ShootoutService.
package dartsv1

type Dart struct {
	Segment    int `json:"segment"`
	Multiplier int `json:"multiplier"`
}

type Rules struct {
	StartingScore int    `json:"startingScore"`
	LegsToWin     int    `json:"legsToWin"`
	CheckoutMode  string `json:"checkoutMode"`
}

type Player struct {
	Name        string  `json:"name"`
	Score       int     `json:"score"`
	Legs        int     `json:"legs"`
	DartsThrown int     `json:"dartsThrown"`
	Average     float64 `json:"average"`
}

type Throw struct {
	ID        string `json:"id"`
	Player    int    `json:"player"`
	Darts     []Dart `json:"darts"`
	Total     int    `json:"total"`
	Remaining int    `json:"remaining"`
	Leg       int    `json:"leg"`
	Bust      bool   `json:"bust"`
	Checkout  bool   `json:"checkout"`
}

type Match struct {
	ID            string   `json:"id"`
	BoardID       string   `json:"boardId"`
	Players       []Player `json:"players"`
	CurrentPlayer int      `json:"currentPlayer"`
	CurrentLeg    int      `json:"currentLeg"`
	Rules         Rules    `json:"rules"`
	Throws        []Throw  `json:"throws"`
	Status        string   `json:"status"`
	Winner        int      `json:"winner,omitempty"`
	Version       int64    `json:"version"`
}

type AssignMatchRequest struct {
	BoardID string `json:"boardId"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	// Rules overrides the server defaults field by field when set.
	Rules *Rules `json:"rules,omitempty"`
}

type SubmitThrowRequest struct {
	MatchID string `json:"matchId"`
	Darts   []Dart `json:"darts"`
}

type SubmitThrowResponse struct {
	Match         Match `json:"match"`
	Throw         Throw `json:"throw"`
	LegWon        bool  `json:"legWon"`
	MatchFinished bool  `json:"matchFinished"`
}

type UndoThrowRequest struct {
	MatchID string `json:"matchId"`
}

type EditThrowRequest struct {
	MatchID string `json:"matchId"`
	Index   int    `json:"index"`
	Darts   []Dart `json:"darts"`
}

type ResetMatchRequest struct {
	MatchID string `json:"matchId"`
}

type GetMatchRequest struct {
	MatchID string `json:"matchId"`
}

type GetBoardMatchRequest struct {
	BoardID string `json:"boardId"`
}

type MatchResponse struct {
	Match Match `json:"match"`
}
