package main

import (
	"log"

	"sticker-backend/internal/config"
	"sticker-backend/internal/database"
	"sticker-backend/internal/printing"
	"sticker-backend/internal/server"
	"sticker-backend/internal/storage"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	var signer *printing.Signer
	if cfg.PrintSecret != "" {
		signer = printing.NewSigner(cfg.PrintSecret, cfg.PrintLinkTTL)
	}

	app := server.NewApp(cfg, server.Deps{
		Bucket:    storage.NewDisk(cfg.StoragePath, cfg.PublicBaseURL),
		FilesRoot: cfg.StoragePath,
		Signer:    signer,
		AccessLog: true,
	})

	log.Println("Server running on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
