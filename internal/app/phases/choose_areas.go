package phases

import (
	"strconv"
	"strings"

	"github.com/rook-computer/lifewheel/internal/phase"
	"github.com/rook-computer/lifewheel/internal/ui"
	"github.com/rook-computer/lifewheel/internal/wheel"
)

// Suggestions are the life areas offered next to the area input.
var Suggestions = []string{
	"Love", "Romance", "Partner", "Home", "Family",
	"Career", "Studies", "Business", "Money", "Finances",
	"Development", "Connection", "Social", "Friends",
	"Inner Peace", "Spirituality", "Contribution", "Life Purpose",
	"Self-Image", "Health", "Fitness", "Fun", "Recreation",
}

// chooseAreasPhase collects one life area per wheel segment.
type chooseAreasPhase struct {
	stage *phase.Stage

	remaining int
	input     *ui.Node
	add       *ui.Node
	inputRow  *ui.Node
	count     *ui.Node
	prompt    *ui.Node
	advanceUI *ui.Node
}

func (p *chooseAreasPhase) selectedAreas() []string {
	st := p.stage.State()
	if !st.Has(KeySelectedAreas) {
		// Reached through a direct jump.
		p.stage.AssignState(phase.State{KeySelectedAreas: []string{}})
		return []string{}
	}
	return st.Strings(KeySelectedAreas)
}

func (p *chooseAreasPhase) Connect(animate bool) {
	areas := p.selectedAreas()
	p.remaining = wheel.NumSegments - len(areas)

	p.input = ui.TextInput("textInput inputText", "Type something", func(string) { p.updateAddDisabled() })
	p.input.OnSubmit = func(string) { p.addSelection() }
	p.add = ui.Button("button inputText", "Add", p.addSelection)
	p.updateAddDisabled()

	p.inputRow = ui.Container("row", p.input, p.add)
	inputPanel := ui.Container("halfWidth", p.inputRow)

	suggestions := ui.Container("borderBox")
	for _, label := range Suggestions {
		label := label
		suggestions.Append(ui.Button("linkButton", label, func() {
			p.input.SetValue(label)
			p.add.Disabled = false
		}))
	}
	suggestionsPanel := ui.Container("halfWidth", ui.Text("boxLabel", "Suggestions"), suggestions)

	p.count = ui.Text("titleBar bold", "")
	p.prompt = ui.Container("inline centered", p.count, ui.Text("titleBar", " more to go!"))
	p.advanceUI = ui.Container("buttonContainer centered",
		ui.Button("button", "I'm good with these!", p.advance),
	)

	for _, area := range areas {
		p.showSelection(area)
	}
	p.updateRemaining(0)

	p.stage.IntroduceOverlayContent(ui.Container("overlay",
		ui.Container("",
			ui.Text("titleBar centered italic", "What are the important areas of my life?"),
			ui.Container("flow", inputPanel, suggestionsPanel),
			p.prompt,
			p.advanceUI,
		),
	))
}

func (p *chooseAreasPhase) updateAddDisabled() {
	p.add.Disabled = p.input.Value == ""
}

func (p *chooseAreasPhase) addSelection() {
	value := strings.TrimSpace(p.input.Value)
	p.input.SetValue("")
	p.updateAddDisabled()
	if value == "" || p.remaining <= 0 {
		return
	}
	areas := p.selectedAreas()
	for _, a := range areas {
		if a == value {
			return
		}
	}
	p.showSelection(value)
	p.stage.AssignState(phase.State{KeySelectedAreas: append(areas, value)})
	p.updateRemaining(-1)
}

func (p *chooseAreasPhase) showSelection(value string) {
	element := ui.Container("selectionElement", ui.Text("selectionLabel", value))
	element.Append(ui.Button("deleteButton", "X", func() {
		var kept []string
		for _, a := range p.selectedAreas() {
			if a != value {
				kept = append(kept, a)
			}
		}
		if kept == nil {
			kept = []string{}
		}
		p.stage.AssignState(phase.State{KeySelectedAreas: kept})
		element.Remove()
		p.updateRemaining(1)
	}))
	p.inputRow.Parent().InsertBefore(element, p.inputRow)
}

func (p *chooseAreasPhase) updateRemaining(delta int) {
	p.remaining += delta
	p.count.Text = strconv.Itoa(p.remaining)
	done := p.remaining <= 0
	p.inputRow.Hidden = done
	p.prompt.Hidden = done
	p.advanceUI.Hidden = !done
}

func (p *chooseAreasPhase) advance() {
	wc := p.stage.Canvas()
	p.stage.AssignState(phase.State{KeyWheel: nil})

	st := wheel.DefaultState()
	current := wc.State()
	st.Visible = current.Visible
	st.Placement = current.Placement
	for i, area := range p.selectedAreas() {
		if i < wheel.NumSegments {
			st.Labels[i] = area
		}
	}
	wc.SetState(st)

	p.stage.AssignState(phase.State{KeyWheel: wc.State()})
	p.stage.Advance(ShowWheel)
}
