package phases

import (
	"github.com/rook-computer/lifewheel/internal/canvas"
	"github.com/rook-computer/lifewheel/internal/phase"
	"github.com/rook-computer/lifewheel/internal/ui"
	"github.com/rook-computer/lifewheel/internal/wheel"
)

// showWheelPhase moves the labeled wheel to the left and lets the user rate
// each area in turn.
type showWheelPhase struct {
	stage *phase.Stage
	intro intro

	section   int
	areaLabel *ui.Node
	picker    *ui.Node
	next      *ui.Node
}

func (p *showWheelPhase) Connect(animate bool) {
	wc := p.stage.Canvas()
	st := wheel.DefaultState()
	if err := p.stage.State().Decode(KeyWheel, &st); err != nil {
		p.stage.Logger().Errorf("phases", "showWheel: %v", err)
		st = wheel.DefaultState()
	}
	st.Normalize()
	wc.SetState(st)

	p.intro = intro{stage: p.stage, steps: 8, do: p.introStep}
	if animate {
		wc.SetTransitionSpeed(canvas.Slow)
		wc.SetPlacement(wheel.Offstage)
	}
	p.intro.start(animate)
	wc.SetVisible(true)
}

func (p *showWheelPhase) introStep(step int) {
	wc := p.stage.Canvas()
	switch step {
	case 0:
		wc.SetPlacement(wheel.Neutral)
	case 1:
		wc.SetCurrentSection(4)
	case 6:
		wc.SetCurrentSection(0)
		wc.SetPlacement(wheel.StageLeft)
	case 8:
		p.addUI()
	}
}

func (p *showWheelPhase) addUI() {
	p.areaLabel = ui.Text("bigMessage bold", "")
	p.picker = ui.NumberInput("inputText", 0, wheel.MaxValue, p.rate)
	p.next = ui.Container("buttonContainer",
		ui.Button("button", "Next >", func() { p.stage.Advance(Freeform) }),
	)
	p.next.Hidden = true

	p.selectSection(0)
	p.updateCompleteness()

	p.stage.IntroduceOverlayContent(ui.Container("rightHalf",
		ui.Text("titleBar", "How satisfied are you?"),
		ui.Text("normalText", "Rate your satisfaction level (0..10) in"),
		p.areaLabel,
		ui.Container("", p.picker),
		ui.Container("row",
			ui.Button("button", "◄", func() { p.selectSection((p.section + wheel.NumSegments - 1) % wheel.NumSegments) }),
			ui.Text("normalText", "rotate"),
			ui.Button("button", "►", func() { p.selectSection((p.section + 1) % wheel.NumSegments) }),
		),
		p.next,
	))
}

func (p *showWheelPhase) rate(v float64) {
	wc := p.stage.Canvas()
	wc.SetTransitionSpeed(canvas.Medium)
	wc.SetValue(p.section, wheel.ValueOf(v))
	p.stage.AssignState(phase.State{KeyWheel: wc.State()})
	p.updateCompleteness()
}

func (p *showWheelPhase) selectSection(section int) {
	wc := p.stage.Canvas()
	wc.SetTransitionSpeed(canvas.Medium)
	p.section = section
	wc.SetCurrentSection(section)

	st := wc.State()
	p.areaLabel.Text = st.Labels[section]
	if v := st.Values[section]; v.Known {
		p.picker.SetNumber(float64(v.N))
	} else {
		p.picker.SetNumber(0)
	}
}

func (p *showWheelPhase) updateCompleteness() {
	for _, v := range p.stage.Canvas().State().Values {
		if !v.Known {
			return
		}
	}
	p.next.Hidden = false
}
