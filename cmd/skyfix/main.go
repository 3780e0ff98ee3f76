// Command skyfix builds as a shared library loaded into the game
// process:
//
//	go build -buildmode=c-shared -o skyfix.dll ./cmd/skyfix
//
// Loading the library starts a single worker that reads the
// configuration next to the game executable, then applies every fix in
// declared order. Armed hooks persist for the remaining lifetime of the
// process; there is no unload path.
package main

import "C"

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/edsky/skyfix"
	"github.com/edsky/skyfix/internal/config"
	"github.com/edsky/skyfix/internal/fixes"
	"github.com/edsky/skyfix/internal/logging"
)

const version = "1.0.0"

const (
	configFile = "skyfix.yml"
	logFile    = "skyfix.log"
)

func init() {
	go run()
}

func main() {}

func run() {
	// installs happen on one dedicated OS thread, raised above the
	// game's own threads so the fixes land before the engine starts
	runtime.LockOSThread()
	raisePriority()

	exe, err := os.Executable()
	if err != nil {
		return
	}
	dir := filepath.Dir(exe)

	log, _, err := logging.NewFile(filepath.Join(dir, logFile))
	if err != nil {
		return
	}
	log.Info().Msg("-------------------------------------")
	log.Info().Str("version", version).Str("go", runtime.Version()).Msg("skyfix")
	log.Info().Str("path", exe).Msg("host executable")

	cfg, err := config.Load(filepath.Join(dir, configFile))
	if err != nil {
		// without a config every fix stays off, but the log still
		// records why
		log.Error().Err(err).Msg("config load failed")
		cfg = &config.Config{}
	}
	log.Info().
		Str("name", cfg.Name).
		Bool("masterEnable", cfg.MasterEnable).
		Bool("fixes.textures.enable", cfg.Fixes.Textures.Enable).
		Bool("fixes.zoom.enable", cfg.Fixes.Zoom.Enable).
		Float64("fixes.zoom.factor", cfg.Fixes.Zoom.Factor).
		Msg("config")

	mod, err := skyfix.CurrentModule()
	if err != nil {
		log.Error().Err(err).Msg("resolve host module")
		return
	}
	log.Info().
		Str("module", mod.Name).
		Str("variant", mod.Variant.String()).
		Uint64("base", uint64(mod.Base)).
		Uint32("size", mod.Size).
		Msg("host module")

	fixes.Apply(fixes.Deps{Log: log, Cfg: cfg, Mod: mod})
}
