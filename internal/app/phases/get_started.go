package phases

import (
	"github.com/rook-computer/lifewheel/internal/canvas"
	"github.com/rook-computer/lifewheel/internal/phase"
	"github.com/rook-computer/lifewheel/internal/ui"
	"github.com/rook-computer/lifewheel/internal/wheel"
)

const (
	getStartedDescription = "The Wheel of Life exercise is a popular life assessment tool, simple yet powerful."
	getStartedDescription2 = "It gives you a foundation for describing your overall life experience in terms of " +
		"your satisfaction in different areas important to you."
	getStartedDescription3 = "We'll step you through the construction of your wheel. " +
		"Click the button below to get started."
)

// getStartedPhase brings the wheel on stage, fills it segment by segment,
// titles it and explains the exercise.
type getStartedPhase struct {
	stage *phase.Stage
	intro intro
}

func (p *getStartedPhase) Connect(animate bool) {
	wc := p.stage.Canvas()
	p.intro = intro{stage: p.stage, steps: 10, do: p.introStep}
	if animate {
		wc.SetTransitionSpeed(canvas.Slow)
		wc.SetPlacement(wheel.Offstage)
		wc.SetVisible(true)
		for i := 0; i < wheel.NumSegments; i++ {
			wc.SetValue(i, wheel.ValueOf(0))
		}
		p.intro.start(true)
		return
	}
	p.intro.start(false)
	wc.SetVisible(true)
}

func (p *getStartedPhase) introStep(step int) {
	wc := p.stage.Canvas()
	switch step {
	case 0:
		wc.SetPlacement(wheel.Neutral)
	case 1:
		wc.SetCurrentSection(6)
	case 8:
		labelTitle(wc, "Wheel", "of", "Life")
	case 10:
		wc.SetPlacement(wheel.CenterStage)
		p.addUI()
	}
	if segment := step - 2; segment >= 0 && segment < wheel.NumSegments {
		wc.SetValue(segment, wheel.ValueOf(wheel.MaxValue))
	}
}

// labelTitle writes the three title words on the segments around the top.
func labelTitle(wc *canvas.WheelCanvas, a, b, c string) {
	wc.SetLabel(5, a)
	wc.SetLabel(6, b)
	wc.SetLabel(7, c)
}

func (p *getStartedPhase) addUI() {
	// Push the text below the crown of the wheel.
	shaper := ui.Container("")
	shaper.Height = int(p.stage.Canvas().Metrics().Radius / 4)

	p.stage.IntroduceOverlayContent(ui.Container("overlay",
		ui.Container("column",
			shaper,
			ui.Text("normalText paragraph centered narrowest", getStartedDescription),
			ui.Text("normalText paragraph centered narrower", getStartedDescription2),
			ui.Text("normalText paragraph centered narrow", getStartedDescription3),
			ui.Container("buttonContainer",
				ui.Button("button", "Get Started!", p.advance),
			),
		),
	))
}

func (p *getStartedPhase) advance() {
	wc := p.stage.Canvas()
	wc.SetTransitionSpeed(canvas.Fast)
	wc.SetPlacement(wheel.Offstage)
	labelTitle(wc, "", "", "")
	p.stage.AssignState(phase.State{KeySelectedAreas: []string{}})
	p.stage.Advance(PreChooseAreas)
}
