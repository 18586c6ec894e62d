// Fairing View - an interactive editor for fairing shells.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/fairingkit/internal/audio"
	"github.com/Faultbox/fairingkit/internal/config"
	"github.com/Faultbox/fairingkit/internal/logger"
	"github.com/Faultbox/fairingkit/internal/texture"
	"github.com/Faultbox/fairingkit/internal/viewer"
	"github.com/Faultbox/fairingkit/pkg/catalog"
	"github.com/Faultbox/fairingkit/pkg/fairing"
)

const jettisonSound = "jettison"

func main() {
	runtime.LockOSThread()

	var overrides config.Overrides
	overrides.Register(flag.CommandLine)
	definition := flag.String("def", "", "Definition to show on start")
	flag.Parse()

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	if *definition != "" {
		cfg.Catalog.Default = *definition
	}

	app := NewApp(cfg)
	defer app.Close()
	app.Run()
}

// App is the editor state. Everything except pickedPath is touched on the
// main thread only.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	cfg     *config.Config
	log     *zap.Logger

	// catalog
	catalog     *catalog.Catalog
	catalogPath string
	names       []string
	selected    string
	pickedPath  chan string

	// editable shell
	rings     []fairing.Ring
	sides     int32
	panels    int32
	thickness float32
	uv        fairing.UVMap
	jettison  fairing.JettisonSpec

	fairing  *fairing.Fairing
	debris   *viewer.Debris
	renderer *viewer.Renderer
	sfx      *audio.Manager

	lastFrame time.Time
	lastMouse imgui.Vec2
	status    string
}

// NewApp creates the window and loads the configured catalog.
func NewApp(cfg *config.Config) *App {
	app := &App{
		cfg:        cfg,
		log:        logger.Named("viewer"),
		pickedPath: make(chan string, 1),
		sides:      int32(cfg.Shell.RadialSegments),
		panels:     int32(cfg.Shell.PanelCount),
		thickness:  cfg.Shell.WallThickness,
		uv:         fairing.DefaultUVMap(),
		jettison:   cfg.JettisonSpec(),
		rings: []fairing.Ring{
			{Offset: 0, Radius: 1.25},
			{Offset: 2, Radius: 1.25},
			{Offset: 3, Radius: 0.6},
		},
	}

	var err error
	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		logger.Fatal("failed to create backend", zap.Error(err))
	}
	app.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	app.backend.CreateWindow("Fairing View", cfg.Viewer.Width, cfg.Viewer.Height)

	if err := gl.Init(); err != nil {
		logger.Fatal("OpenGL init failed", zap.Error(err))
	}
	app.renderer, err = viewer.NewRenderer(int32(cfg.Viewer.Width), int32(cfg.Viewer.Height), logger.Named("renderer"))
	if err != nil {
		logger.Fatal("failed to create renderer", zap.Error(err))
	}

	app.initSound()

	if err := app.openCatalog(cfg.Catalog.Path); err != nil {
		app.log.Warn("catalog not loaded", zap.String("path", cfg.Catalog.Path), zap.Error(err))
	}
	if cfg.Catalog.Default != "" {
		app.selectDefinition(cfg.Catalog.Default)
	}
	app.rebuild()
	app.refreshAtlas()

	return app
}

// Close releases GL and audio resources.
func (app *App) Close() {
	if app.renderer != nil {
		app.renderer.Destroy()
		app.renderer = nil
	}
	if app.sfx != nil {
		app.sfx.Close()
	}
}

// Run starts the main loop.
func (app *App) Run() {
	app.lastFrame = time.Now()
	app.backend.Run(app.render)
}

func (app *App) initSound() {
	app.sfx = audio.New()
	if !app.cfg.Viewer.Sound {
		return
	}
	if err := app.sfx.Init(); err != nil {
		app.log.Warn("sound disabled", zap.Error(err))
		return
	}
	app.sfx.SetSFXVolume(float64(app.cfg.Viewer.SFXVolume))

	if err := app.sfx.LoadFile(jettisonSound, app.cfg.Viewer.SoundFile); err != nil {
		app.log.Debug("no jettison sample, using a tone", zap.String("file", app.cfg.Viewer.SoundFile), zap.Error(err))
		if err := app.sfx.LoadTone(jettisonSound, 180, 250*time.Millisecond); err != nil {
			app.log.Warn("failed to create jettison tone", zap.Error(err))
		}
	}
}

// openCatalogDialog shows a native file dialog. The dialog blocks, so it runs
// on its own goroutine and hands the result back through pickedPath.
func (app *App) openCatalogDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Definition catalogs", "yaml", "yml", "toml").
			Filter("All Files", "*").
			Title("Open Catalog").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				app.log.Error("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case app.pickedPath <- filename:
		default:
		}
	}()
}

func (app *App) openCatalog(path string) error {
	cat, err := catalog.Load(path)
	if err != nil {
		return err
	}
	app.catalog = cat
	app.catalogPath = path
	app.names = cat.Names()
	app.selected = ""
	app.backend.SetWindowTitle(fmt.Sprintf("Fairing View - %s", path))
	app.log.Info("catalog loaded", zap.String("path", path), zap.Int("definitions", cat.Len()))
	return nil
}

// selectDefinition copies a definition into the editable state.
func (app *App) selectDefinition(name string) {
	if app.catalog == nil {
		return
	}
	def, err := app.catalog.Get(name)
	if err != nil {
		app.setStatus(err)
		return
	}
	p, err := def.Profile()
	if err != nil {
		app.setStatus(err)
		return
	}
	opts := def.Options()

	app.selected = name
	app.rings = append(app.rings[:0], p.Rings()...)
	app.sides = int32(opts.RadialSegments)
	app.panels = int32(opts.PanelCount)
	app.thickness = opts.WallThickness
	app.uv = opts.UV
	app.jettison = def.JettisonSpec()
	app.refreshAtlas()
}

func (app *App) options() fairing.Options {
	opts := app.cfg.Options()
	opts.RadialSegments = int(app.sides)
	opts.PanelCount = int(app.panels)
	opts.WallThickness = app.thickness
	opts.UV = app.uv
	return opts
}

// rebuild regenerates the shell from the editable state. A rejected edit
// keeps the previous shell on screen.
func (app *App) rebuild() {
	p, err := fairing.NewProfile(app.rings...)
	if err != nil {
		app.setStatus(err)
		return
	}

	if app.fairing == nil || app.fairing.Jettisoned() {
		f, err := fairing.New(p, app.options(), app.jettison, app.log)
		if err != nil {
			app.setStatus(err)
			return
		}
		app.fairing = f
	} else {
		app.fairing.SetJettisonSpec(app.jettison)
		if opts := app.options(); opts != app.fairing.Options() {
			if err := app.fairing.SetOptions(opts); err != nil {
				app.setStatus(err)
				return
			}
		}
		if err := app.fairing.SetProfile(p); err != nil {
			app.setStatus(err)
			return
		}
	}

	app.debris = nil
	app.renderer.SetShell(app.fairing.Shell())
	app.status = ""
}

func (app *App) doJettison() {
	if app.fairing == nil {
		return
	}
	panels, err := app.fairing.Jettison(app.cfg.InheritedVelocity())
	if err != nil {
		app.setStatus(err)
		return
	}
	app.debris = viewer.NewDebris(panels, app.cfg.Viewer.Gravity)
	app.renderer.SetDebris(app.debris)

	if app.sfx.IsInitialized() {
		if err := app.sfx.Play(jettisonSound); err != nil {
			app.log.Warn("jettison sound failed", zap.Error(err))
		}
	}
}

func (app *App) refreshAtlas() {
	if app.renderer == nil {
		return
	}
	if path := app.cfg.Viewer.Texture; path != "" {
		img, err := texture.Load(path)
		if err == nil {
			app.renderer.SetAtlas(img)
			return
		}
		app.log.Warn("atlas not loaded, using checker", zap.String("path", path), zap.Error(err))
	}
	app.renderer.SetAtlas(texture.Checker(512, 16, app.uv))
}

func (app *App) setStatus(err error) {
	app.status = err.Error()
	app.log.Debug("edit rejected", zap.Error(err))
}

// render is called each frame to draw the UI.
func (app *App) render() {
	select {
	case path := <-app.pickedPath:
		if err := app.openCatalog(path); err != nil {
			app.setStatus(err)
		}
	default:
	}

	now := time.Now()
	dt := float32(now.Sub(app.lastFrame).Seconds())
	app.lastFrame = now
	if app.debris != nil {
		// clamp so a stalled frame does not teleport the debris
		app.debris.Step(min(dt, 0.05))
		app.renderer.UpdateDebris(app.debris)
	}

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()

	controlsWidth := float32(320)
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(controlsWidth, workSize.Y))
	if imgui.BeginV("Shell", nil, flags) {
		app.renderControls()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+controlsWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-controlsWidth, workSize.Y))
	if imgui.BeginV("Preview", nil, flags) {
		app.renderPreview()
	}
	imgui.End()
}
