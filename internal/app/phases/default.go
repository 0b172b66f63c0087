package phases

import (
	"github.com/rook-computer/lifewheel/internal/phase"
	"github.com/rook-computer/lifewheel/internal/ui"
)

// defaultPhase is the invitation screen; any click on it starts the tour.
type defaultPhase struct {
	stage *phase.Stage
}

func (p *defaultPhase) Connect(animate bool) {
	screen := ui.Container("screenOverlay",
		ui.Container("",
			ui.Text("bigBigMessage", "Feeling stuck?"),
			ui.Text("pseudoLink", "Click here."),
		),
	)
	screen.OnClick = func() {
		p.stage.AssignState(phase.State{KeyClicked: true})
		p.stage.Advance(GetStarted)
	}
	p.stage.IntroduceOverlayContent(screen)
}
