package models

// LeaderboardEntry is a user annotated with its 1-based position.
type LeaderboardEntry struct {
	User
	Position int `json:"position"`
}

type UserRatingResponse struct {
	User         User `json:"user"`
	Position     int  `json:"position"`
	TotalPlayers int  `json:"totalPlayers"`
}
