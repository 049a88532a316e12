package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"token_sale/internal/app/port"
	"token_sale/internal/app/service"
	"token_sale/internal/config"
	clientprovider "token_sale/internal/infrastructure/network/client"
	"token_sale/internal/infrastructure/walletloader"
	"token_sale/internal/pkg/logger"
	"token_sale/internal/pkg/scheduler"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// salewatch polls the sale contract read-only and logs its state. Useful
// for watching a sale from a box with no wallet configured.
func main() {
	configPath := flag.String("config", "config/config.yml", "path to the configuration file")
	interval := flag.Duration("interval", 0, "poll interval, overrides the configured slow interval")
	flag.Parse()

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger.InitZap(zapLogger)
	appLogger := logger.NewSlogAdapter()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		zapLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	pollEvery := time.Duration(cfg.Refresh.SlowIntervalMs) * time.Millisecond
	if *interval > 0 {
		pollEvery = *interval
	}

	walletProvider := walletloader.NewStaticProvider("", cfg.Network.ChainID, appLogger.Info)

	bindingProvider, err := clientprovider.NewBindingProvider(
		cfg.Network,
		walletProvider,
		time.Duration(cfg.RpcClient.ConnectTimeoutMs)*time.Millisecond,
		time.Duration(cfg.RpcClient.CallTimeoutMs)*time.Millisecond,
		cfg.RpcClient.RateLimit,
		cfg.RpcClient.BurstLimit,
		appLogger,
	)
	if err != nil {
		zapLogger.Fatal("Failed to connect to the network", zap.Error(err))
	}
	batcher := clientprovider.NewMulticallBatcher(bindingProvider, appLogger)
	supplyReader := service.NewSupplyService(cfg.SaleAsset(), batcher, appLogger)

	watch := scheduler.New(pollEvery, appLogger)
	unsub := watch.Subscribe("salewatch", func(ctx context.Context) {
		supplyReader.RefreshAll(ctx,
			bindingProvider.TokenBinding(cfg.Sale.SaleTokenAddress, port.ReadOnly),
			bindingProvider.SaleBinding(cfg.Sale.SaleAddress, port.ReadOnly),
			cfg.Sale.SaleAddress,
		)

		state := supplyReader.SaleState()
		fields := []any{
			"active", state.Active,
			"rate", humanize.BigComma(state.Rate),
			"remaining", state.Remaining.Format() + " " + cfg.Sale.SaleTokenSymbol,
		}
		if supply, ok := supplyReader.TotalSupply().Get(); ok {
			fields = append(fields, "total_supply", humanize.BigComma(supply.Raw))
		}
		appLogger.Info("Sale state", fields...)
	})
	defer unsub()
	watch.Start(context.Background())
	defer watch.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Stopping sale watcher")
}
