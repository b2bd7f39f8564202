package main

import (
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/cursorpal/config"
	"github.com/milk9111/cursorpal/pack"
	"github.com/milk9111/cursorpal/settings"
)

const (
	panelWidth  = 360
	panelHeight = 520
)

var (
	textColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	labelColor = &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}
)

// Panel edits the settings file the overlay watches.
type Panel struct {
	ui     *ebitenui.UI
	saver  *settings.Saver
	state  settings.Settings
	status *widget.Label

	enabled   *widget.Button
	packs     *widget.List
	sliders   []*widget.Slider
	values    []*widget.Label
	clipboard bool

	// suppress ignores widget events fired while the panel itself sets them
	suppress bool
}

func NewPanel(state settings.Settings, idx pack.Index, saver *settings.Saver, clipboardOK bool) *Panel {
	p := &Panel{state: state, saver: saver, clipboard: clipboardOK}

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	theme := newPanelTheme(&face)

	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{R: 0x20, G: 0x24, B: 0x2a, A: 0xff})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 20, Right: 20}),
		)),
	)
	stretch := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})

	p.enabled = widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(enabledText(state.Enabled), &face, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ToggleMode(),
		widget.ButtonOpts.WidgetOpts(stretch, widget.WidgetOpts.MinSize(0, 32)),
		widget.ButtonOpts.StateChangedHandler(func(args *widget.ButtonChangedEventArgs) {
			if p.suppress {
				return
			}
			p.state.Enabled = args.State == widget.WidgetChecked
			args.Button.SetText(enabledText(p.state.Enabled))
			p.commit()
		}),
	)
	p.setEnabled(state.Enabled)
	root.AddChild(p.enabled)

	root.AddChild(widget.NewLabel(widget.LabelOpts.Text("Pack", &face, labelColor)))
	entries := make([]any, 0, len(idx))
	var selected any
	for _, e := range idx.Entries() {
		entries = append(entries, e)
		if e.ID == state.Pack {
			selected = e
		}
	}
	p.packs = widget.NewList(
		widget.ListOpts.Entries(entries),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(pack.IndexEntry); ok {
				return entry.Name
			}
			return ""
		}),
		widget.ListOpts.ScrollContainerImage(theme.ListTheme.ScrollContainerImage),
		widget.ListOpts.SliderParams(theme.SliderTheme),
		widget.ListOpts.EntryFontFace(&face),
		widget.ListOpts.EntryColor(theme.ListTheme.EntryColor),
		widget.ListOpts.HideHorizontalSlider(),
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(stretch, widget.WidgetOpts.MinSize(0, 160))),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(pack.IndexEntry)
			if !ok || p.suppress || entry.ID == p.state.Pack {
				return
			}
			p.state.Pack = entry.ID
			p.commit()
		}),
	)
	if selected != nil {
		p.suppress = true
		p.packs.SetSelectedEntry(selected)
		p.suppress = false
	}
	root.AddChild(p.packs)

	for i, tu := range tunings {
		value := tu.value(state.Patch)
		label := widget.NewLabel(widget.LabelOpts.Text(tu.text(value), &face, labelColor))
		lo, hi := tu.sliderRange()
		slider := widget.NewSlider(
			widget.SliderOpts.Direction(widget.DirectionHorizontal),
			widget.SliderOpts.MinMax(lo, hi),
			widget.SliderOpts.InitialCurrent(tu.toSlider(value)),
			widget.SliderOpts.Images(theme.SliderTheme.TrackImage, theme.SliderTheme.HandleImage),
			widget.SliderOpts.FixedHandleSize(10),
			widget.SliderOpts.WidgetOpts(stretch, widget.WidgetOpts.MinSize(0, 16)),
			widget.SliderOpts.ChangedHandler(func(args *widget.SliderChangedEventArgs) {
				if p.suppress {
					return
				}
				p.setTuning(i, tu.fromSlider(args.Current))
			}),
		)
		p.values = append(p.values, label)
		p.sliders = append(p.sliders, slider)
		root.AddChild(label)
		root.AddChild(slider)
	}

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
	)
	for _, b := range []struct {
		label string
		fn    func()
	}{
		{"Copy", p.copySettings},
		{"Paste", p.pastePatch},
		{"Reset", p.resetTuning},
	} {
		fn := b.fn
		buttons.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(b.label, &face, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(96, 28)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				fn()
			}),
		))
	}
	root.AddChild(buttons)

	p.status = widget.NewLabel(widget.LabelOpts.Text("", &face, labelColor))
	root.AddChild(p.status)

	p.ui = &ebitenui.UI{Container: root}
	p.ui.PrimaryTheme = theme
	return p
}

func enabledText(enabled bool) string {
	if enabled {
		return "Enabled"
	}
	return "Disabled"
}

func (p *Panel) setEnabled(enabled bool) {
	p.suppress = true
	defer func() { p.suppress = false }()
	if enabled {
		p.enabled.SetState(widget.WidgetChecked)
	} else {
		p.enabled.SetState(widget.WidgetUnchecked)
	}
}

func (p *Panel) setTuning(i int, v float64) {
	tu := tunings[i]
	tu.set(&p.state.Patch, v)
	p.values[i].Label = tu.text(v)
	p.commit()
}

// syncSliders moves every slider to the current patch without echoing the
// change back as an edit.
func (p *Panel) syncSliders() {
	p.suppress = true
	defer func() { p.suppress = false }()
	for i, tu := range tunings {
		v := tu.value(p.state.Patch)
		p.sliders[i].Current = tu.toSlider(v)
		p.values[i].Label = tu.text(v)
	}
}

func (p *Panel) commit() {
	p.saver.Submit(p.state)
}

func (p *Panel) copySettings() {
	if !p.clipboard {
		p.status.Label = "Clipboard unavailable"
		return
	}
	data, err := settings.Marshal(p.state)
	if err != nil {
		log.Printf("settings panel: %v", err)
		p.status.Label = "Copy failed"
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	p.status.Label = "Settings copied"
}

func (p *Panel) pastePatch() {
	if !p.clipboard {
		p.status.Label = "Clipboard unavailable"
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		p.status.Label = "Clipboard is empty"
		return
	}
	patch, err := config.DecodePatch(data)
	if err != nil {
		log.Printf("settings panel: paste: %v", err)
	}
	if patch.IsZero() {
		p.status.Label = "Nothing to paste"
		return
	}
	p.state.Patch = p.state.Patch.Merge(settings.Clamp(patch))
	p.syncSliders()
	p.commit()
	p.status.Label = "Pasted tuning"
}

func (p *Panel) resetTuning() {
	p.state.Patch = config.Patch{}
	p.syncSliders()
	p.commit()
	p.status.Label = "Tuning reset"
}

func (p *Panel) Update() error {
	p.ui.Update()
	return nil
}

func (p *Panel) Draw(screen *ebiten.Image) {
	p.ui.Draw(screen)
}

func (p *Panel) Layout(outsideWidth, outsideHeight int) (int, int) {
	return panelWidth, panelHeight
}

func newPanelTheme(face *ebtext.Face) *widget.Theme {
	solid := imageui.NewNineSliceColor
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: face,
			EntryColor: &widget.ListEntryColor{
				Unselected:          textColor,
				Selected:            color.NRGBA{R: 0x10, G: 0x14, B: 0x1a, A: 0xff},
				DisabledUnselected:  color.Gray{Y: 128},
				DisabledSelected:    color.Gray{Y: 64},
				SelectingBackground: color.NRGBA{R: 0x60, G: 0xb0, B: 0xc8, A: 0xff},
				SelectedBackground:  color.NRGBA{R: 0x40, G: 0xaa, B: 0xbe, A: 0xff},
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solid(color.NRGBA{R: 0x30, G: 0x36, B: 0x3e, A: 0xff}),
				Mask: solid(color.NRGBA{R: 0x30, G: 0x36, B: 0x3e, A: 0xff}),
			},
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solid(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}),
				Hover:   solid(color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}),
				Pressed: solid(color.NRGBA{R: 0x40, G: 0xaa, B: 0xbe, A: 0xff}),
			},
			TextFace:  face,
			TextColor: &widget.ButtonTextColor{Idle: textColor},
		},
		SliderTheme: &widget.SliderParams{
			TrackImage: &widget.SliderTrackImage{
				Idle:  solid(color.NRGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xff}),
				Hover: solid(color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}),
			},
			HandleImage: &widget.ButtonImage{
				Idle:    solid(color.NRGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}),
				Hover:   solid(color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}),
				Pressed: solid(color.NRGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff}),
			},
		},
	}
}
