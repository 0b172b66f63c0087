// Package phases holds the onboarding conversation: from the first "Feeling
// stuck?" screen to choosing life areas, rating them on the wheel and the
// closing screen.
package phases

import (
	"time"

	"github.com/rook-computer/lifewheel/internal/phase"
)

const (
	Default        = phase.DefaultPhase
	GetStarted     = "getStarted"
	PreChooseAreas = "preChooseAreas"
	ChooseAreas    = "chooseAreas"
	ShowWheel      = "showWheel"
	Freeform       = "freeform"
)

// PhaseState keys.
const (
	KeyClicked       = "clicked"
	KeySelectedAreas = "selectedAreas"
	KeyWheel         = "wheel"
)

// IntroStepInterval paces the scripted wheel animations.
const IntroStepInterval = 350 * time.Millisecond

type Options struct {
	// LinkBase is the externally reachable base URL of the HTTP server. The
	// closing screen shows a QR code for the wheel export below it.
	LinkBase string
}

// Registry returns the onboarding phases in priority order.
func Registry(opts Options) *phase.Registry {
	return phase.NewRegistry(
		phase.Definition{
			Name: Default,
			New:  func(s *phase.Stage) phase.Controller { return &defaultPhase{stage: s} },
		},
		phase.Definition{
			Name:    GetStarted,
			New:     func(s *phase.Stage) phase.Controller { return &getStartedPhase{stage: s} },
			Accepts: func(st phase.State) bool { return st.Truthy(KeyClicked) },
		},
		phase.Definition{
			Name:    PreChooseAreas,
			New:     func(s *phase.Stage) phase.Controller { return &preChooseAreasPhase{stage: s} },
			Accepts: func(st phase.State) bool { return st.Has(KeySelectedAreas) },
		},
		phase.Definition{
			Name:    ChooseAreas,
			New:     func(s *phase.Stage) phase.Controller { return &chooseAreasPhase{stage: s} },
			Accepts: func(st phase.State) bool { return len(st.Strings(KeySelectedAreas)) > 0 },
		},
		phase.Definition{
			Name:    ShowWheel,
			New:     func(s *phase.Stage) phase.Controller { return &showWheelPhase{stage: s} },
			Accepts: func(st phase.State) bool { return st.Has(KeyWheel) },
		},
		phase.Definition{
			Name:    Freeform,
			New:     func(s *phase.Stage) phase.Controller { return &freeformPhase{stage: s, linkBase: opts.LinkBase} },
			Accepts: func(phase.State) bool { return false },
		},
	)
}

// intro runs a scripted sequence of steps, one per tick when animated and all
// at once otherwise.
type intro struct {
	stage *phase.Stage
	steps int
	step  int
	do    func(step int)
	timer phase.Timer
}

func (in *intro) start(animate bool) {
	if !animate {
		for in.step <= in.steps {
			in.next()
		}
		return
	}
	in.timer = in.stage.Every(IntroStepInterval, in.next)
}

func (in *intro) next() {
	if in.step > in.steps {
		return
	}
	step := in.step
	in.step++
	if step == in.steps && in.timer != nil {
		in.timer.Stop()
	}
	in.do(step)
}
