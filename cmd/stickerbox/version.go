package main

import (
	"context"
	"fmt"

	"github.com/justinpbarnett/stickerbox/internal/config"
	"github.com/justinpbarnett/stickerbox/internal/ui/panels"
	"github.com/justinpbarnett/stickerbox/internal/update"
)

func runVersion(ctx context.Context, cfg *config.Config) error {
	fmt.Printf("stickerbox version %s\n", panels.Version)

	if panels.Version == "dev" {
		fmt.Println("Development build, update check skipped.")
		return nil
	}

	c, err := update.NewChecker(cfg.Update.Repo)
	if err != nil {
		return err
	}
	rel, err := c.Check(ctx, panels.Version)
	if err != nil {
		fmt.Printf("Update check failed: %v\n", err)
		return nil
	}
	if rel != nil {
		fmt.Printf("Update available: v%s. Run \"stickerbox update\" to install.\n", rel.Version)
	} else {
		fmt.Println("You are up to date.")
	}
	return nil
}

func runUpdate(ctx context.Context, cfg *config.Config) error {
	c, err := update.NewChecker(cfg.Update.Repo)
	if err != nil {
		return err
	}
	rel, err := c.Apply(ctx, panels.Version)
	if err != nil {
		return err
	}
	fmt.Printf("Updated to v%s\n", rel.Version)
	return nil
}
