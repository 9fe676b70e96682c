package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	get "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/sandworld/pkg/world/material"
	"github.com/OCharnyshevich/sandworld/pkg/world/structure"
)

func main() {
	var (
		src   = flag.String("src", "", "template pack source (any go-getter URL, e.g. git::https://host/repo.git//clouds)")
		out   = flag.String("o", "./assets", "output dir path")
		clean = flag.Bool("clean", true, "remove the output dir before downloading")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *src == "" || *out == "" {
		log.Error("both -src and -o are required")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *clean {
		if err := os.RemoveAll(*out); err != nil {
			log.Error("clean output dir", "error", err)
			os.Exit(1)
		}
	}

	log.Info("start downloading templates", "src", *src, "dst", *out)
	if err := get.Get(*out, *src, get.WithContext(ctx)); err != nil {
		log.Error("download templates", "error", err)
		os.Exit(1)
	}
	log.Info("done downloading templates", "dst", *out)

	n, err := validate(*out)
	if err != nil {
		log.Error("validate templates", "error", err)
		os.Exit(1)
	}
	log.Info("templates valid", "count", n)
}

// validate loads every manifest under dir and returns how many there are.
func validate(dir string) (int, error) {
	reg, err := material.Default()
	if err != nil {
		return 0, err
	}
	src := structure.NewFSSource(os.DirFS(dir), reg)
	names, err := src.Names()
	if err != nil {
		return 0, err
	}
	if len(names) == 0 {
		return 0, fmt.Errorf("no templates found in %s", dir)
	}
	for _, name := range names {
		if _, err := src.Template(name); err != nil {
			return 0, err
		}
	}
	return len(names), nil
}
