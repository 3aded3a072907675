package main

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/robotboss/common"
	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	toastFrames = 120
	barWidth    = 300
	barHeight   = 10
)

// HUD shows both health bars, the player's inventory and a status line.
type HUD struct {
	ui        *ebitenui.UI
	bossName  *widget.Text
	inventory *widget.Text
	status    *widget.Text

	bossHealth   float64
	playerHealth float64
	showBoss     bool

	toast     string
	toastLeft int
}

func NewHUD() *HUD {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	h := &HUD{}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})
	h.bossName = widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(center),
	)
	h.inventory = widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart})),
	)
	h.status = widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xff, G: 0xe0, B: 0x60, A: 0xff}),
		widget.TextOpts.WidgetOpts(center),
	)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewRowLayout(
		widget.RowLayoutOpts.Direction(widget.DirectionVertical),
		widget.RowLayoutOpts.Spacing(6),
		widget.RowLayoutOpts.Padding(&widget.Insets{Top: 40, Left: 12, Right: 12}),
	)))
	root.AddChild(h.bossName)
	root.AddChild(h.inventory)
	root.AddChild(h.status)
	h.ui = &ebitenui.UI{Container: root}
	return h
}

// Toast shows msg on the status line for a couple of seconds.
func (h *HUD) Toast(msg string) {
	h.toast = msg
	h.toastLeft = toastFrames
}

func (h *HUD) Update(w *ecs.World, outcome string) {
	h.showBoss = false
	if e, ok := ecs.First(w, component.BossComponent.Kind()); ok {
		bc, _ := ecs.Get(w, e, component.BossComponent.Kind())
		if health, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			h.bossHealth = health.Fraction()
		}
		h.bossName.Label = bc.Config.Name
		h.showBoss = true
	} else {
		h.bossName.Label = ""
	}

	h.inventory.Label = ""
	if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if health, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			h.playerHealth = health.Fraction()
		}
		if inv, ok := ecs.Get(w, e, component.InventoryComponent.Kind()); ok {
			h.inventory.Label = inventoryLine(inv)
		}
	}

	if h.toastLeft > 0 {
		h.toastLeft--
	}
	switch {
	case outcome != "":
		h.status.Label = outcome
	case h.toastLeft > 0:
		h.status.Label = h.toast
	default:
		h.status.Label = ""
	}

	h.ui.Update()
}

func inventoryLine(inv *component.Inventory) string {
	if len(inv.Items) == 0 {
		return ""
	}
	names := make([]string, 0, len(inv.Items))
	for name := range inv.Items {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s x%d", name, inv.Items[name]))
	}
	return strings.Join(parts, "  ")
}

func (h *HUD) Draw(screen *ebiten.Image) {
	drawBar(screen, 12, 10, h.playerHealth, colornames.Deepskyblue)
	if h.showBoss {
		drawBar(screen, (common.BaseWidth-barWidth)/2, 26, h.bossHealth, colornames.Crimson)
	}
	h.ui.Draw(screen)
}

func drawBar(screen *ebiten.Image, x, y float32, fraction float64, fill color.Color) {
	fraction = common.Clamp(fraction, 0, 1)
	vector.FillRect(screen, x, y, barWidth, barHeight, color.NRGBA{A: 160}, false)
	vector.FillRect(screen, x, y, float32(barWidth*fraction), barHeight, fill, false)
	vector.StrokeRect(screen, x, y, barWidth, barHeight, 1, colornames.White, false)
}
