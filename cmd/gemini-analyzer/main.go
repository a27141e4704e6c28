package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	geminianalyzer "github.com/menta2k/gemini-analyzer"
	"github.com/menta2k/gemini-analyzer/internal/config"
	"github.com/menta2k/gemini-analyzer/internal/logging"
	"github.com/menta2k/gemini-analyzer/internal/utils"
)

func main() {
	var configPath, backend, image, question, visionModel, logLevel, writeConfig string
	var triggers int
	var interactive, version bool

	flag.StringVar(&configPath, "config", "", "config file (json|yaml|toml); defaults are used when empty")
	flag.StringVar(&backend, "backend", "", "backend to use: gemini or ollama")
	flag.StringVar(&image, "image", "", "image path or URL (jpg/png/webp); the bundled image when empty")
	flag.StringVar(&question, "question", "", "question to ask about the image")
	flag.StringVar(&visionModel, "model", "", "vision model identifier for the selected backend")
	flag.StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error")
	flag.StringVar(&writeConfig, "write-config", "", "write the effective config (without API key) to this path and exit")
	flag.IntVar(&triggers, "n", 1, "number of requests to fire back to back")
	flag.BoolVar(&interactive, "interactive", false, "fire one request per line read from stdin")
	flag.BoolVar(&version, "version", false, "print version and exit")
	flag.Parse()

	if version {
		fmt.Println(geminianalyzer.GetVersion())
		return
	}

	if configPath == "" {
		if p := config.GetConfigPath(); utils.FileExists(p) {
			configPath = p
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	applyFlags(cfg, backend, image, question, visionModel, logLevel)

	if writeConfig != "" {
		if err := cfg.SaveToFile(writeConfig); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", writeConfig)
		return
	}

	logger := logging.New(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	ga, err := geminianalyzer.NewFromConfig(cfg, logger, nil)
	if err != nil {
		log.Fatalf("usage: %s [-config file] [-backend gemini|ollama] [-image path|URL] [-n 1] [-interactive]: %v",
			filepath.Base(os.Args[0]), err)
	}

	// The terminal is the display: print every value the answer takes
	ga.Answer().Subscribe(func(v string) {
		fmt.Printf("answer: %s\n", v)
	})

	if img, err := ga.Source().Image(); err == nil {
		b := img.Bounds()
		logger.Info("image ready", "width", b.Dx(), "height", b.Dy(), "backend", cfg.Backend)
	}

	if interactive {
		fmt.Println("press Enter to analyse, Ctrl-D to quit")
		readTriggers(os.Stdin, ga.Trigger)
	} else {
		for i := 0; i < triggers; i++ {
			ga.Trigger()
		}
	}

	ga.Wait()
}

func applyFlags(cfg *config.Config, backend, image, question, visionModel, logLevel string) {
	if backend != "" {
		cfg.Backend = backend
	}
	if image != "" {
		cfg.Image.Path = image
	}
	if question != "" {
		cfg.Question = question
	}
	if visionModel != "" {
		if cfg.Backend == config.BackendOllama {
			cfg.Ollama.VisionModel = visionModel
		} else {
			cfg.Gemini.VisionModel = visionModel
		}
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
}

func readTriggers(r io.Reader, trigger func()) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		trigger()
	}
}
