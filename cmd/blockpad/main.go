package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"blockpad/internal/config"
	"blockpad/internal/history"
	"blockpad/internal/patterns"
	"blockpad/internal/theme"
	"blockpad/internal/ui"
)

var version = "dev"

func main() {
	filePath := flag.String("file", "", "text file to load into the buffer")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("blockpad", version)
		return
	}
	if *filePath == "" && flag.NArg() > 0 {
		*filePath = flag.Arg(0)
	}

	content := ""
	if *filePath != "" {
		data, err := os.ReadFile(*filePath)
		if err != nil {
			log.Fatalf("read %s: %v", *filePath, err)
		}
		content = string(data)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Printf("settings: %v (using defaults)", err)
	}

	hist := history.NewLog(config.HistoryPath(), settings.HistoryCapacity)
	if err := hist.Load(); err != nil {
		log.Printf("history: %v", err)
	}

	store := patterns.NewStore(config.PatternsPath())
	if err := store.Load(); err != nil {
		log.Printf("patterns: %v", err)
	}

	model := ui.New(ui.Config{
		FilePath:       *filePath,
		InitialContent: content,
		Theme:          theme.ByName(settings.DefaultTheme, termenv.HasDarkBackground()),
		Settings:       settings,
		History:        hist,
		Patterns:       store,
		ExportDir:      settings.ExportDir,
		Version:        version,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatalf("blockpad: %v", err)
	}
}
