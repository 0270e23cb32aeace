package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mixera/internal/audio"
	"github.com/llehouerou/mixera/internal/catalog"
	"github.com/llehouerou/mixera/internal/clock"
	"github.com/llehouerou/mixera/internal/config"
	"github.com/llehouerou/mixera/internal/deezer"
	"github.com/llehouerou/mixera/internal/game"
	"github.com/llehouerou/mixera/internal/selector"
	"github.com/llehouerou/mixera/internal/store"
	"github.com/llehouerou/mixera/internal/tui"
)

func buildDeps() (game.Deps, *store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return game.Deps{}, nil, fmt.Errorf("load config: %w", err)
	}

	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
	} else {
		cat, err = catalog.Load()
	}
	if err != nil {
		return game.Deps{}, nil, err
	}

	var st *store.Store
	if cfg.DataPath != "" {
		st, err = store.OpenAt(cfg.DataPath)
	} else {
		st, err = store.Open()
	}
	if err != nil {
		return game.Deps{}, nil, err
	}

	gameCfg := cfg.GetGameConfig(time.Now().Year())
	game.SeedDefaultFilters(st, gameCfg.YearMin, gameCfg.YearMax)

	return game.Deps{
		Clock:    clock.NewSystem(),
		Catalog:  cat,
		Selector: selector.New(),
		Resolver: deezer.New(cfg.Deezer.Proxies...),
		Audio:    audio.NewController(clock.NewSystem(), audio.NewBeepFactory()),
		KV:       st,
	}, st, nil
}

func main() {
	deps, st, err := buildDeps()
	if err != nil {
		fmt.Printf("Error initializing: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	p := tea.NewProgram(tui.New(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
