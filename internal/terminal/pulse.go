package terminal

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// pulse oscillates between 0 and 1, one half-period per tween.
type pulse struct {
	period float32
	tween  *gween.Tween
	rising bool
	value  float32
}

func newPulse(period float32) *pulse {
	p := &pulse{period: period}
	p.reset()
	return p
}

func (p *pulse) reset() {
	p.rising = true
	p.value = 0
	p.tween = gween.New(0, 1, p.period/2, ease.InOutSine)
}

// advance moves the pulse by dt seconds and returns the new level.
func (p *pulse) advance(dt float32) float32 {
	v, finished := p.tween.Update(dt)
	p.value = v
	if finished {
		p.rising = !p.rising
		if p.rising {
			p.tween = gween.New(0, 1, p.period/2, ease.InOutSine)
		} else {
			p.tween = gween.New(1, 0, p.period/2, ease.InOutSine)
		}
	}
	return v
}
