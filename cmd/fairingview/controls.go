package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/fairingkit/pkg/fairing"
)

const maxRings = 32

func (app *App) renderControls() {
	app.renderCatalog()
	imgui.Separator()

	changed := false
	imgui.Text("Tessellation")
	if imgui.SliderIntV("Sides", &app.sides, 3, 128, "%d", imgui.SliderFlagsNone) {
		changed = true
	}
	if imgui.SliderIntV("Panels", &app.panels, 1, 16, "%d", imgui.SliderFlagsNone) {
		changed = true
	}
	if imgui.SliderFloatV("Thickness", &app.thickness, 0.001, 0.5, "%.3f", imgui.SliderFlagsNone) {
		changed = true
	}
	if s := app.fairing; s != nil && s.Shell() != nil {
		got := len(s.Shell().Panels)
		if got != int(app.panels) {
			imgui.TextDisabled(fmt.Sprintf("rounded to %d panels", got))
		}
	}

	imgui.Separator()
	imgui.Text("Rings")
	if app.renderRings() {
		changed = true
	}

	if changed {
		app.rebuild()
	}

	imgui.Separator()
	app.renderJettison()

	if app.status != "" {
		imgui.Separator()
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), app.status)
	}
}

func (app *App) renderCatalog() {
	if imgui.Button("Open Catalog...") {
		app.openCatalogDialog()
	}
	if app.catalog == nil {
		imgui.TextDisabled("No catalog loaded")
		return
	}
	imgui.TextDisabled(app.catalogPath)

	preview := app.selected
	if preview == "" {
		preview = "(custom)"
	}
	if imgui.BeginCombo("Definition", preview) {
		for _, name := range app.names {
			if imgui.SelectableBoolV(name, name == app.selected, 0, imgui.NewVec2(0, 0)) {
				app.selectDefinition(name)
				app.fairing = nil
				app.rebuild()
			}
		}
		imgui.EndCombo()
	}
}

// renderRings draws one offset/radius pair per ring and reports whether any
// ring changed.
func (app *App) renderRings() bool {
	changed := false
	remove := -1
	for i := range app.rings {
		r := &app.rings[i]
		imgui.PushIDInt(int32(i))
		imgui.SetNextItemWidth(110)
		if imgui.DragFloatV("##offset", &r.Offset, 0.01, -10, 50, "y %.2f", imgui.SliderFlagsNone) {
			changed = true
		}
		imgui.SameLine()
		imgui.SetNextItemWidth(110)
		if imgui.DragFloatV("##radius", &r.Radius, 0.01, 0, 20, "r %.2f", imgui.SliderFlagsNone) {
			changed = true
		}
		imgui.SameLine()
		if imgui.Button("x") && len(app.rings) > 2 {
			remove = i
		}
		imgui.PopID()
	}

	if remove >= 0 {
		app.rings = append(app.rings[:remove], app.rings[remove+1:]...)
		changed = true
	}
	if len(app.rings) < maxRings && imgui.Button("Add Ring") {
		last := app.rings[len(app.rings)-1]
		app.rings = append(app.rings, fairing.Ring{Offset: last.Offset + 0.5, Radius: last.Radius})
		changed = true
	}
	if changed {
		app.selected = ""
	}
	return changed
}

func (app *App) renderJettison() {
	imgui.Text("Jettison")
	imgui.SliderFloatV("Force", &app.jettison.Force, 0, 200, "%.1f", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Mass", &app.jettison.Mass, 0.01, 5, "%.2f", imgui.SliderFlagsNone)

	spent := app.fairing == nil || app.fairing.Jettisoned()
	if !spent {
		app.fairing.SetJettisonSpec(app.jettison)
		if imgui.Button("Jettison") {
			app.doJettison()
		}
		imgui.SameLine()
	}
	if imgui.Button("Reset") {
		app.fairing = nil
		app.rebuild()
	}

	if app.debris != nil {
		imgui.Text(fmt.Sprintf("t = %.2fs", app.debris.Elapsed))
		for _, p := range app.debris.Pieces {
			v := p.Velocity
			imgui.TextDisabled(fmt.Sprintf("#%d  %.2f kg  v=(%.1f, %.1f, %.1f)", p.Panel.Index, p.Panel.Mass, v.X, v.Y, v.Z))
		}
	}
}

func (app *App) renderPreview() {
	avail := imgui.ContentRegionAvail()
	w, h := int32(avail.X), int32(avail.Y-24)
	if w < 1 || h < 1 {
		return
	}
	app.renderer.Resize(w, h)
	textureID := app.renderer.Render()

	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(float32(w), float32(h)),
		imgui.NewVec2(0, 1), // GL origin is bottom-left
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.12, 0.13, 0.16, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			app.renderer.Camera.HandleDrag(mousePos.X-app.lastMouse.X, mousePos.Y-app.lastMouse.Y)
		}
		app.lastMouse = mousePos

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			app.renderer.Camera.HandleZoom(wheel)
		}
	}

	if s := app.fairing; s != nil && s.Shell() != nil {
		sh := s.Shell()
		imgui.TextDisabled(fmt.Sprintf("%d panels  %d vertices  %d triangles  height %.2f",
			len(sh.Panels), sh.VertexCount(), sh.TriangleCount(), sh.Height))
	} else {
		imgui.TextDisabled("(Drag to rotate, scroll to zoom)")
	}
}
