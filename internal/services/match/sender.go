package match

import "github.com/mcoot/rpsmatch-go/internal/model"

// Sender delivers outbound messages to connections. The transport owns
// buffering and delivery; sends are fire-and-forget from the controller's
// perspective.
type Sender interface {
	Send(conn model.ConnID, msg model.ServerMessage)
}
