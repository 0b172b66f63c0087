package phases

import (
	"github.com/rook-computer/lifewheel/internal/phase"
	"github.com/rook-computer/lifewheel/internal/ui"
)

type preChooseAreasPhase struct {
	stage *phase.Stage
}

func (p *preChooseAreasPhase) Connect(animate bool) {
	p.stage.IntroduceOverlayContent(ui.Container("screenOverlay",
		ui.Container("",
			ui.Text("bigMessage", "Let's start by identifying the areas of your life"),
			ui.Text("bigMessage bold", "most important"),
			ui.Text("bigMessage", "to you."),
		),
		ui.Container("buttonContainer",
			ui.Button("button", "OK", func() { p.stage.Advance(ChooseAreas) }),
		),
	))
}
