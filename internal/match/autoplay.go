package match

import "context"

// runCascade plays out consecutive bot seats after an accepted move. Each
// iteration re-reads the live session, so anything that happened while the
// provider was thinking (a timeout, a resignation, even another move) is
// observed: the stale bot move simply fails validation and the loop stops.
// The loop needs no artificial cap: every pass either stops or advances the
// cycle, and play ends the session by itself in an all-bot room.
func (m *Manager) runCascade(sessionID string) {
	for {
		m.mu.Lock()
		sess := m.sessions[sessionID]
		if sess == nil || sess.ended {
			m.mu.Unlock()
			return
		}
		_, seat := sess.currentSeat()
		if seat == nil || !seat.Player.IsBot {
			m.mu.Unlock()
			return
		}
		state := sess.board
		connID := seat.Player.ConnID
		m.mu.Unlock()

		move, ok := m.provider.ProvideMove(context.Background(), state)
		if !ok {
			return
		}
		if m.applyMove(sessionID, connID, move) == nil {
			return // rejected: the session moved on, or the policy misfired
		}
	}
}
