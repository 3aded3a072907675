package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/robotboss/assets"
	"github.com/milk9111/robotboss/boss"
	"github.com/milk9111/robotboss/common"
	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
	"github.com/milk9111/robotboss/ecs/entity"
	"github.com/milk9111/robotboss/ecs/system"
	"github.com/milk9111/robotboss/prefabs"
	"golang.design/x/clipboard"
)

type Options struct {
	Debug bool
	TPS   int
	Mute  bool
	Watch bool
}

type Game struct {
	opts Options
	dt   float64

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	bosses    *system.BossSystem
	scripts   *system.BossScriptSystem
	shake     *system.CameraShakeSystem
	audio     *system.AudioSystem

	arena   *prefabs.ArenaSpec
	sounds  *assets.SoundBank
	watcher *prefabs.Watcher

	hud     *HUD
	pauseUI *ebitenui.UI

	clipboardReady bool
	paused         bool
	restart        bool
	outcome        string
	frames         int
}

func NewGame(opts Options) (*Game, error) {
	if opts.TPS <= 0 {
		opts.TPS = common.TPS
	}

	arena, err := prefabs.LoadArenaSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		opts:  opts,
		dt:    1.0 / float64(opts.TPS),
		arena: arena,
		hud:   NewHUD(),
	}
	g.pauseUI = NewPauseUI(g)
	g.sounds = g.loadSounds(arena)
	g.audio = system.NewAudioSystem(g.sounds)
	g.audio.Enabled = !opts.Mute

	if opts.Watch {
		watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("game: prefab hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("game: clipboard unavailable: %v", err)
	} else {
		g.clipboardReady = true
	}

	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) loadSounds(arena *prefabs.ArenaSpec) *assets.SoundBank {
	if g.opts.Mute {
		return assets.NewSoundBank(nil, arena.Sounds)
	}
	return assets.NewSoundBank(assets.AudioContext(), arena.Sounds)
}

// reset rebuilds the world from the prefabs on disk.
func (g *Game) reset() error {
	w := ecs.NewWorld()
	if _, err := entity.NewArena(w, g.arena); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if _, err := entity.NewPlayer(w); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if _, err := entity.NewBoss(w); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	g.world = w
	g.physics = system.NewPhysicsSystem(g.dt)
	g.bosses = system.NewBossSystem(g.physics, g.dt, g.arena)
	g.scripts = system.NewBossScriptSystem(g.arena)
	g.shake = system.NewCameraShakeSystem()
	g.scheduler = ecs.NewScheduler(
		system.NewPlayerControllerSystem(),
		g.physics,
		g.bosses,
		g.scripts,
		system.NewPickupCollectSystem(),
		system.NewInvulnerableSystem(),
		system.NewWhiteFlashSystem(),
		system.NewAnimationSystem(),
		system.NewEffectSystem(),
		system.NewTTLSystem(),
		g.shake,
		g.audio,
	)
	g.outcome = ""
	g.paused = false
	g.restart = false
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copySnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.opts.Debug = !g.opts.Debug
	}

	if g.restart {
		if err := g.reset(); err != nil {
			log.Printf("game: restart: %v", err)
			g.restart = false
		}
	}

	g.applyPrefabChanges()

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	readInput(g.world)
	g.scheduler.Update(g.world)
	g.handleEvents()
	g.hud.Update(g.world, g.outcome)
	return nil
}

func (g *Game) handleEvents() {
	for _, ev := range g.world.Events().Drain() {
		switch ev.Type {
		case system.EventPlayerDied:
			g.outcome = "You were destroyed. Press R to retry."
		case system.EventBossExpired:
			if g.outcome == "" {
				g.outcome = "Boss defeated! Press R to fight again."
			}
		case system.EventItemCollected:
			if item, ok := ev.Data.(system.ItemCollected); ok {
				g.hud.Toast(fmt.Sprintf("+1 %s", item.Item))
			}
		case system.EventBossPrefix + string(boss.EventHealStart):
			g.hud.Toast("The boss is repairing itself!")
		}
	}
}

func (g *Game) applyPrefabChanges() {
	if g.watcher == nil {
		return
	}
	for _, change := range g.watcher.Poll() {
		switch change.Kind {
		case prefabs.ScriptChanged:
			g.scripts.Reload(change.Name)
			log.Printf("game: reloaded script %s", change.Name)
		case prefabs.SpecChanged:
			g.reloadSpec(change.Name)
		}
	}
}

func (g *Game) reloadSpec(name string) {
	switch name {
	case "boss.yaml":
		spec, err := prefabs.LoadBossSpec()
		if err != nil {
			log.Printf("game: reload %s: %v", name, err)
			return
		}
		cfg, err := spec.Config()
		if err != nil {
			log.Printf("game: reload %s: %v", name, err)
			return
		}
		n := g.bosses.Reload(g.world, cfg)
		log.Printf("game: retuned %d boss(es) from %s", n, name)
	case "arena.yaml":
		arena, err := prefabs.LoadArenaSpec()
		if err != nil {
			log.Printf("game: reload %s: %v", name, err)
			return
		}
		g.arena = arena
		g.bosses.SetArena(arena)
		g.scripts.SetArena(arena)
		g.sounds = g.loadSounds(arena)
		g.audio.SetSounds(g.sounds)
		log.Printf("game: reloaded %s; bounds apply on restart", name)
	default:
		log.Printf("game: %s changed; press R to apply", name)
	}
}

// copySnapshot puts the state line of every boss on the clipboard.
func (g *Game) copySnapshot() {
	var lines []string
	ecs.ForEach(g.world, component.BossComponent.Kind(), func(_ ecs.Entity, bc *component.Boss) {
		if bc.Agent != nil {
			lines = append(lines, bc.Agent.Snapshot())
		}
	})
	if len(lines) == 0 {
		return
	}
	text := strings.Join(lines, "\n")
	if !g.clipboardReady {
		log.Printf("game: snapshot: %s", text)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	g.hud.Toast("Boss state copied")
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g.world, g.arena, g.shake.OffsetX, g.shake.OffsetY, g.opts.Debug)
	g.hud.Draw(screen)

	if g.opts.Debug {
		var b strings.Builder
		fmt.Fprintf(&b, "FPS: %.1f  TPS: %.1f  entities: %d\n", ebiten.ActualFPS(), ebiten.ActualTPS(), len(ecs.Entities(g.world)))
		ecs.ForEach(g.world, component.BossComponent.Kind(), func(_ ecs.Entity, bc *component.Boss) {
			if bc.Agent != nil {
				b.WriteString(bc.Agent.Snapshot())
				b.WriteByte('\n')
			}
		})
		ebitenutil.DebugPrintAt(screen, b.String(), 8, common.BaseHeight-40)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
