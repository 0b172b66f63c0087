package phases

import (
	"github.com/rook-computer/lifewheel/internal/phase"
	"github.com/rook-computer/lifewheel/internal/render"
	"github.com/rook-computer/lifewheel/internal/ui"
)

const freeformMessage = "Future versions will allow you to enter descriptions of each area, " +
	"propose action items and contact a coach."

// freeformPhase is the closing screen. It is only reached by advancing.
type freeformPhase struct {
	stage    *phase.Stage
	linkBase string
}

func (p *freeformPhase) Connect(animate bool) {
	screen := ui.Container("screenOverlay",
		ui.Text("bigMessage", "That's all for this demo!"),
		ui.Text("paragraph centered normalText", freeformMessage),
	)
	if link := render.WheelLink(p.linkBase); link != "" {
		img, err := render.GenerateQRCodeImage(link, 0)
		if err != nil {
			p.stage.Logger().Errorf("phases", "freeform: qr code for %s: %v", link, err)
		} else {
			screen.Append(ui.Image("", img))
			screen.Append(ui.Text("normalText", "Scan to download your wheel"))
		}
	}
	p.stage.IntroduceOverlayContent(screen)
}
