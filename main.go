// Package main, sigma backend'inin giriş noktasıdır.
//
// Komutlar (cobra):
//
//	sigma serve                  HTTP server'ı başlatır (varsayılan)
//	sigma seed --file seed.yaml  kategori, kupon ve admin hesaplarını yükler
//	sigma hash-password <pw>     admin seed'i için argon2id hash üretir
//	sigma version
//
// Global değişken yok; serve komutu config → database → repository → hub →
// service → handler → route sırasıyla her şeyi kendisi bağlar.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version, build sırasında -ldflags "-X main.version=..." ile set edilir.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sigma",
		Short:         "Sigma Academy course marketplace API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		newServeCmd(),
		newSeedCmd(),
		newHashPasswordCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Printf("[main] %v", err)
		stop()
		os.Exit(1)
	}
}
