package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/joho/godotenv"

	"github.com/lukaszgryglicki/shaderpixel/internal/shaderpixel"
)

func main() {
	_ = godotenv.Load()

	shaderpixel.Debug = os.Getenv("DEBUG") != ""
	shaderpixel.PNG = os.Getenv("PNG") != ""
	shaderpixel.GIF = os.Getenv("GIF") != ""
	shaderpixel.Progress = os.Getenv("QUIET") == ""
	level := slog.LevelInfo
	if shaderpixel.Debug {
		level = slog.LevelDebug
	}
	shaderpixel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg := "scenes/config.json"
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := shaderpixel.Run(ctx, cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		stop()
		if profile {
			pprof.StopCPUProfile()
		}
		os.Exit(1)
	}
}
