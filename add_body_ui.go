package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/gravityballs/scenes"
	"golang.org/x/image/font/basicfont"
)

var formLabels = [...]string{"Position", "Velocity", "Mass", "Radius", "Color", "Name", "Name color"}

func formValues(f scenes.BodyForm) [len(formLabels)]string {
	return [len(formLabels)]string{f.Position, f.Velocity, f.Mass, f.Radius, f.Color, f.Name, f.NameColor}
}

func formFromValues(v [len(formLabels)]string) scenes.BodyForm {
	return scenes.BodyForm{
		Position:  v[0],
		Velocity:  v[1],
		Mass:      v[2],
		Radius:    v[3],
		Color:     v[4],
		Name:      v[5],
		NameColor: v[6],
	}
}

// addBodyDialog collects the seven body fields. onAdd returning an error
// keeps the dialog open and shows the message.
type addBodyDialog struct {
	Overlay *widget.Container

	inputs  [len(formLabels)]*widget.TextInput
	errText *widget.Text
	onAdd   func(scenes.BodyForm) error
}

func solidNineSlice(c color.Color) *imageui.NineSlice {
	return imageui.NewNineSliceColor(c)
}

func (d *addBodyDialog) Open(form scenes.BodyForm) {
	for i, v := range formValues(form) {
		d.inputs[i].SetText(v)
	}
	d.errText.Label = ""
	d.inputs[0].Focus(true)
	d.Overlay.GetWidget().Visibility = widget.Visibility_Show
}

func (d *addBodyDialog) Close() {
	for _, in := range d.inputs {
		in.Focus(false)
	}
	d.Overlay.GetWidget().Visibility = widget.Visibility_Hide
}

func (d *addBodyDialog) IsOpen() bool {
	return d.Overlay.GetWidget().Visibility == widget.Visibility_Show
}

func (d *addBodyDialog) submit() {
	var values [len(formLabels)]string
	for i, in := range d.inputs {
		values[i] = in.GetText()
	}
	if err := d.onAdd(formFromValues(values)); err != nil {
		d.errText.Label = err.Error()
		return
	}
	d.Close()
}

func newAddBodyDialog(face *ebtext.Face, buttonImg *widget.ButtonImage, buttonText *widget.ButtonTextColor, onAdd func(scenes.BodyForm) error) *addBodyDialog {
	d := &addBodyDialog{onAdd: onAdd}

	d.Overlay = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.NRGBA{0, 0, 0, 160})),
	)
	d.Overlay.GetWidget().Visibility = widget.Visibility_Hide

	dialog := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(360, 200),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.NRGBA{0x20, 0x20, 0x28, 0xff})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 20, Right: 20}),
		)),
	)

	grid := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Spacing(10, 6),
			widget.GridLayoutOpts.Stretch([]bool{false, true}, nil),
		)),
	)
	labelColor := &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}
	for i, name := range formLabels {
		grid.AddChild(widget.NewLabel(widget.LabelOpts.Text(name, face, labelColor)))
		d.inputs[i] = widget.NewTextInput(
			widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(240, 24)),
			widget.TextInputOpts.Image(&widget.TextInputImage{
				Idle:     solidNineSlice(color.NRGBA{245, 245, 245, 255}),
				Disabled: solidNineSlice(color.NRGBA{200, 200, 200, 255}),
			}),
			widget.TextInputOpts.Color(&widget.TextInputColor{
				Idle:     color.Black,
				Disabled: color.Gray{Y: 120},
				Caret:    color.Black,
			}),
			widget.TextInputOpts.Face(face),
			widget.TextInputOpts.SubmitOnEnter(true),
			widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
				d.submit()
			}),
		)
		grid.AddChild(d.inputs[i])
	}

	d.errText = widget.NewText(
		widget.TextOpts.Text("", face, color.NRGBA{0xff, 0x60, 0x60, 0xff}),
	)

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
	)
	buttons.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(buttonImg),
		widget.ButtonOpts.Text("Add", face, buttonText),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(80, 28)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			d.submit()
		}),
	))
	buttons.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(buttonImg),
		widget.ButtonOpts.Text("Cancel", face, buttonText),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(80, 28)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			d.Close()
		}),
	))

	dialog.AddChild(grid)
	dialog.AddChild(d.errText)
	dialog.AddChild(buttons)
	d.Overlay.AddChild(dialog)
	return d
}

// NewGameUI builds the top bar (Clear, Add Ball) and the hidden add-body
// dialog.
func NewGameUI(g *Game) (*ebitenui.UI, *addBodyDialog) {
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnImg := &widget.ButtonImage{
		Idle:    solidNineSlice(color.NRGBA{0x33, 0x33, 0x33, 0xff}),
		Hover:   solidNineSlice(color.NRGBA{0x44, 0x44, 0x44, 0xff}),
		Pressed: solidNineSlice(color.NRGBA{0x22, 0x22, 0x22, 0xff}),
	}
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{0xff, 0xff, 0xff, 0xff}}

	dialog := newAddBodyDialog(&face, btnImg, btnTextColor, g.addFromForm)

	bar := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Left: 8}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	addButton := func(label string, onClick func()) {
		bar.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(90, 28)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}
	addButton("Clear", g.clear)
	addButton("Add Ball", func() {
		dialog.Open(scenes.DefaultBodyForm())
	})

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(bar)
	root.AddChild(dialog.Overlay)

	return &ebitenui.UI{Container: root}, dialog
}
