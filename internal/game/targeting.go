package game

// ComputeTarget returns the cell p steers toward this decision tick. While
// power mode is active every variant scatters to a random in-bounds cell.
func ComputeTarget(p *Pursuer, r *Round) Cell {
	if r.Power.Active {
		return scatterTarget(r)
	}

	switch p.Variant {
	case VariantAmbusher:
		return ambushTarget(r.Player)
	case VariantFlanker:
		return flankTarget(r.Player, r.chaser())
	case VariantOpportunist:
		return opportunistTarget(r.maze, p, r.Player)
	default:
		return r.Player.Position
	}
}

func scatterTarget(r *Round) Cell {
	return Cell{X: r.rng.Intn(r.maze.Width()), Y: r.rng.Intn(r.maze.Height())}
}

// ambushTarget aims AmbushLookahead cells ahead of the player along its heading.
func ambushTarget(player *Player) Cell {
	return player.Position.Add(player.Heading.Scale(AmbushLookahead))
}

// flankTarget mirrors the chaser through a point just ahead of the player,
// closing the pincer from the opposite side. Without a chaser it degrades to
// direct pursuit.
func flankTarget(player *Player, chaser *Pursuer) Cell {
	if chaser == nil {
		return player.Position
	}
	pivot := player.Position.Add(player.Heading.Scale(FlankLookahead))
	offset := pivot.Sub(chaser.Position)
	return chaser.Position.Add(offset.Scale(FlankScale))
}

// opportunistTarget chases from afar and retreats to the maze's retreat
// corner up close.
func opportunistTarget(m *Maze, p *Pursuer, player *Player) Cell {
	if CellDistance(p.Position, player.Position) > OpportunistRadius {
		return player.Position
	}
	return m.RetreatCorner()
}
