package game

// resolveCollisions runs the per-tick contact phases in fixed order: token
// pickup, power-zone pickup, pursuer contact, win check.
func (r *Round) resolveCollisions() []Event {
	var events []Event
	events = r.collectToken(events)
	events = r.collectPowerZone(events)
	events = r.resolvePursuerContacts(events)
	events = r.checkWin(events)
	return events
}

func (r *Round) collectToken(events []Event) []Event {
	pos := r.Player.Position
	if !r.Tokens.Has(pos) {
		return events
	}
	r.Tokens.Remove(pos)
	r.Score += TokenPoints
	return append(events,
		Event{Type: EventCollect},
		Event{Type: EventScoreChanged, Value: r.Score},
	)
}

func (r *Round) collectPowerZone(events []Event) []Event {
	pos := r.Player.Position
	if !r.PowerZones.Has(pos) {
		return events
	}
	r.PowerZones.Remove(pos)
	wasActive := r.Power.Active
	r.Power.Activate()
	events = append(events, Event{Type: EventPowerUp})
	if !wasActive {
		events = append(events, Event{Type: EventPowerModeChanged, Flag: true})
	}
	return events
}

// resolvePursuerContacts handles every pursuer sharing the player's cell. In
// power mode each one is defeated and respawned. Otherwise the first contact
// costs a life (unless the player is invulnerable) and ends the phase.
func (r *Round) resolvePursuerContacts(events []Event) []Event {
	for _, p := range r.Pursuers {
		if p.Position != r.Player.Position {
			continue
		}

		if r.Power.Active {
			r.Score += PursuerPoints
			p.Respawn()
			events = append(events,
				Event{Type: EventEnemyDefeated},
				Event{Type: EventScoreChanged, Value: r.Score},
			)
			continue
		}

		if r.Player.IsInvulnerable(r.Tick) {
			continue
		}

		r.Lives--
		events = append(events,
			Event{Type: EventDie},
			Event{Type: EventLivesChanged, Value: r.Lives},
		)
		if r.Lives == 0 {
			r.State = StateLost
			return append(events,
				Event{Type: EventLose},
				Event{Type: EventRoundEnded, Flag: false},
			)
		}
		r.resetCharacters()
		return events
	}
	return events
}

func (r *Round) checkWin(events []Event) []Event {
	if r.State != StatePlaying || r.Tokens.Size() > 0 {
		return events
	}
	r.State = StateWon
	return append(events,
		Event{Type: EventWin},
		Event{Type: EventRoundEnded, Flag: true},
	)
}
