// Package rules implements round resolution for the three-way move set.
package rules

import "github.com/mcoot/rpsmatch-go/internal/model"

// Winner resolves a round given both moves. The result labels refer to
// argument position: ResultPlayer1 means moveA won.
func Winner(moveA, moveB model.Move) model.RoundResult {
	if moveA == moveB {
		return model.ResultDraw
	}
	if (moveA == model.MoveRock && moveB == model.MoveScissors) ||
		(moveA == model.MoveScissors && moveB == model.MovePaper) ||
		(moveA == model.MovePaper && moveB == model.MoveRock) {
		return model.ResultPlayer1
	}
	return model.ResultPlayer2
}
