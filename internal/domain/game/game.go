package game

import "time"

// Record is an archived game.
type Record struct {
	GameKey   string         `json:"game_key" bson:"game_key"`
	BoardSize int            `json:"board_size" bson:"board_size"`
	Komi      float64        `json:"komi" bson:"komi"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	MoveCount int            `json:"move_count" bson:"move_count"`
	Score     map[string]int `json:"score" bson:"score"`
	SGF       string         `json:"sgf" bson:"sgf"`
}

type CreateGameRequest struct {
	BoardSize int     `json:"board_size"`
	Komi      float64 `json:"komi"`
}

type GameCreateResponse struct {
	GameKey string `json:"game_key"`
}

// MoveRequest is a move in sgf terms. Empty coordinates are a pass. Captured lists
// the stones the move takes off the board, as decided by the caller's rules.
type MoveRequest struct {
	Color       string   `json:"color"`
	Coordinates string   `json:"coordinates"`
	Captured    []string `json:"captured,omitempty"`
}

type AdornmentRequest struct {
	Kind        string `json:"kind"`
	Coordinates string `json:"coordinates"`
	Letter      string `json:"letter,omitempty"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

type MoveView struct {
	Number      int    `json:"number"`
	Color       string `json:"color,omitempty"`
	Coordinates string `json:"coordinates"`
	IsPass      bool   `json:"is_pass"`
	Comments    string `json:"comments,omitempty"`
	Branches    int    `json:"branches"`
}

type GameStateResponse struct {
	GameKey string         `json:"game_key"`
	Move    MoveView       `json:"move"`
	Score   map[string]int `json:"score"`
	SGF     string         `json:"sgf"`
}
