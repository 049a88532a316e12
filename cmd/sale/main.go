package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"token_sale/internal/app/port"
	"token_sale/internal/app/service"
	"token_sale/internal/config"
	"token_sale/internal/domain/entity"
	"token_sale/internal/infrastructure/analytics"
	clientprovider "token_sale/internal/infrastructure/network/client"
	"token_sale/internal/infrastructure/restapi"
	"token_sale/internal/infrastructure/walletloader"
	"token_sale/internal/pkg/logger"
	"token_sale/internal/pkg/scheduler"

	slogzap "github.com/samber/slog-zap/v2"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Token Sale API
// @version 1.0
// @description Purchase orchestration for the fixed-rate token sale.
// @BasePath /api/v1
func main() {
	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	configPath := "config/config.yml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		zapLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Init(slogzap.Option{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Logger: zapLogger,
	}.NewZapHandler())
	appLogger := logger.NewSlogAdapter()

	walletProvider := walletloader.NewStaticProvider(cfg.Wallet.Account, cfg.Network.ChainID, appLogger.Info)

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
	allowanceReader := service.NewAllowanceService(cfg.PaymentAsset(), appLogger)

	var sink port.AnalyticsSink = analytics.NoopSink{}
	if cfg.Analytics.Enabled && cfg.Analytics.BaseURL != "" {
		sink = analytics.NewHTTPSink(
			cfg.Analytics.BaseURL,
			time.Duration(cfg.Analytics.RequestTimeoutMillis)*time.Millisecond,
			zapLogger,
		)
	}

	estimator := service.NewGasService(appLogger)
	submitter := service.NewSubmitService(cfg.Sale.GasMarginPercent, cfg.Sale.MinGasLimit, appLogger)
	orchestrator := service.NewPurchaseService(
		bindingProvider, walletProvider, estimator, submitter, sink, appLogger,
		cfg.Sale.PaymentTokenAddress, cfg.Sale.SaleAddress,
	)

	refreshScheduler := scheduler.New(time.Duration(cfg.Refresh.FastIntervalMs)*time.Millisecond, appLogger)
	unsubSupply := refreshScheduler.Subscribe("supply", func(ctx context.Context) {
		supplyReader.RefreshAll(ctx,
			bindingProvider.TokenBinding(cfg.Sale.SaleTokenAddress, port.ReadOnly),
			bindingProvider.SaleBinding(cfg.Sale.SaleAddress, port.ReadOnly),
			cfg.Sale.SaleAddress,
		)
	})
	defer unsubSupply()
	if cfg.Refresh.AllowancePolling {
		unsubAllowance := refreshScheduler.Subscribe("allowance", func(ctx context.Context) {
			allowanceReader.Refresh(ctx,
				walletProvider.Account(),
				entity.NonEmpty(cfg.Sale.SaleAddress),
				bindingProvider.TokenBinding(cfg.Sale.PaymentTokenAddress, port.ReadOnly),
			)
		})
		defer unsubAllowance()
	}
	refreshScheduler.Start(context.Background())
	defer refreshScheduler.Stop()

	saleHandler := restapi.NewSaleHandler(
		supplyReader, allowanceReader, orchestrator,
		walletProvider, bindingProvider, cfg, appLogger,
	)
	router := restapi.SetupRouter(saleHandler)

	if cfg.Swagger.Enabled {
		router.StaticFile("/docs/swagger.yaml", "docs/swagger.yaml")
		router.GET(cfg.Swagger.Path+"/*any", ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/docs/swagger.yaml"),
		))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		appLogger.Info("HTTP server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Forced shutdown", "error", err)
	}
}
