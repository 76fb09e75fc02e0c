package smartcab

import env "github.com/samuelfneumann/smartcab/environment"

// Traffic light periods are sampled from [minPeriod, maxPeriod]
const (
	minPeriod = 3
	maxPeriod = 5
)

// trafficLight is the light at a single intersection. When northSouth
// is true, traffic heading north or south has a green light; otherwise
// traffic heading east or west does.
type trafficLight struct {
	northSouth  bool
	period      int
	lastUpdated int
}

// update toggles the light if a full period has passed since it last
// changed
func (l *trafficLight) update(t int) {
	if t-l.lastUpdated >= l.period {
		l.northSouth = !l.northSouth
		l.lastUpdated = t
	}
}

func (l *trafficLight) reset() {
	l.lastUpdated = 0
}

// colour returns the light seen by traffic facing heading h
func (l *trafficLight) colour(h env.Heading) env.Light {
	if l.northSouth == h.Vertical() {
		return env.Green
	}
	return env.Red
}
