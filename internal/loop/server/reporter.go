package server

import "github.com/tomz197/bullseye/internal/game"

// Reporter is a game.Presenter that forwards final scores to the hub.
type Reporter struct {
	game.NopPresenter
	Server   GameServer
	ClientID int
}

func (r Reporter) GameOver(finalScore int) {
	r.Server.ReportScore(r.ClientID, finalScore)
}

var _ game.Presenter = Reporter{}
