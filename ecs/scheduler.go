package ecs

// System updates a world by dt seconds.
type System interface {
	Update(w *World, dt float64)
}

// Scheduler runs systems in insertion order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if s == nil || system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World, dt float64) {
	if s == nil || w == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(w, dt)
	}
}

func (s *Scheduler) Systems() []System {
	if s == nil {
		return nil
	}
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// Stepper turns variable frame time into a whole number of fixed steps.
// At most MaxSteps are returned per frame; leftover time beyond that is dropped.
type Stepper struct {
	Step     float64
	MaxSteps int

	acc float64
}

func NewStepper(step float64, maxSteps int) *Stepper {
	if maxSteps <= 0 {
		maxSteps = 1
	}
	return &Stepper{Step: step, MaxSteps: maxSteps}
}

func (s *Stepper) Advance(frameDt float64) int {
	if s == nil || s.Step <= 0 || frameDt <= 0 {
		return 0
	}
	s.acc += frameDt
	steps := 0
	for s.acc >= s.Step && steps < s.MaxSteps {
		s.acc -= s.Step
		steps++
	}
	if steps == s.MaxSteps && s.acc >= s.Step {
		s.acc = 0
	}
	return steps
}

func (s *Stepper) Reset() {
	if s == nil {
		return
	}
	s.acc = 0
}
