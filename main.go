package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tableside/internal/api"
	"tableside/internal/config"
	"tableside/internal/logger"
	"tableside/internal/models"
	"tableside/internal/poller"
	"tableside/internal/services"
	"tableside/internal/store"
	"tableside/internal/stubapi"
)

var log *logger.Logger

// The demo terminal: bind a table, order something, confirm, settle, and
// keep polling until interrupted. With OFFLINE=1 it runs entirely against
// the embedded stub of the remote POS service.
func main() {
	log = logger.NewLogger()
	defer log.Close()

	if err := godotenv.Load(); err != nil {
		log.Warn("ENV", "No .env file found, using environment variables")
	}

	log.LogProcess("STARTUP", "Tableside terminal starting up...")
	cfg := config.Load()
	log.Info("CONFIG", "Configuration loaded")

	baseURL := cfg.API.BaseURL
	var stubSrv *http.Server
	if cfg.Demo.Offline {
		stub := stubapi.NewServer()
		stub.SeedDemo()
		stubSrv = &http.Server{Addr: ":8080", Handler: stub.Handler()}
		go func() {
			log.LogProcess("STUB", "Offline mode: embedded POS service on :8080")
			if err := stubSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal("STUB", "Embedded service failed: "+err.Error())
			}
		}()
		baseURL = "http://127.0.0.1:8080/api/v1"
		time.Sleep(100 * time.Millisecond)
	}

	client := api.NewClient(baseURL, log,
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		api.WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst),
	)
	log.LogProcess("CLIENT", "Gateway client ready for "+baseURL)

	state := store.NewOrderState()
	session := services.NewSessionService(client, state, log)
	cart := services.NewCartService(client, state, log)
	lifecycle := services.NewLifecycleService(client, state, log)
	refresher := poller.NewRefresher(client, state, log, cfg.Poll.Interval)

	ctx := context.Background()

	order, err := session.BindQR(ctx, cfg.Demo.TableQR)
	if err != nil {
		log.Fatal("SESSION", "Failed to bind table: "+err.Error())
	}
	log.LogOrder("BOUND", order.ID, fmt.Sprintf("table %d, status %s, %d line(s)", order.TableID, order.Status, len(order.Items)))

	refresher.Start(ctx)

	if cfg.Demo.Offline {
		runDemoOrder(ctx, client, cart, lifecycle, state)
	}

	// Keep converging until interrupted.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("SHUTDOWN", "Received shutdown signal")
	refresher.Stop()

	if stubSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := stubSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("STUB", "Embedded service shutdown: "+err.Error())
		}
	}

	log.Info("SHUTDOWN", "Tableside terminal stopped")
}

// runDemoOrder walks one table through the whole lifecycle against the
// embedded stub.
func runDemoOrder(ctx context.Context, client *api.Client, cart *services.CartService, lifecycle *services.LifecycleService, state *store.OrderState) {
	menu, err := client.GetMenuItems(ctx, 10, 0)
	if err != nil || len(menu.Items) < 2 {
		log.Error("DEMO", "Could not load menu")
		return
	}

	if _, err := cart.AddToCart(ctx, menu.Items[0], 2, ""); err != nil {
		log.Error("DEMO", "Add to cart failed: "+err.Error())
		return
	}
	if _, err := cart.AddToCart(ctx, menu.Items[1], 1, "no ice"); err != nil {
		log.Error("DEMO", "Add to cart failed: "+err.Error())
		return
	}

	// Guest changes their mind: one of the first item instead of two.
	if _, err := cart.SetQuantity(ctx, menu.Items[0].ID, 1, ""); err != nil {
		log.Error("DEMO", "Quantity change failed: "+err.Error())
		return
	}

	log.Info("DEMO", "Bill so far: "+state.Total().StringFixed(2))

	if _, err := lifecycle.Confirm(ctx); err != nil {
		log.Error("DEMO", "Confirm failed: "+err.Error())
		return
	}

	result, err := lifecycle.Checkout(ctx, models.MethodCash)
	if err != nil {
		log.Error("DEMO", "Checkout failed: "+err.Error())
		return
	}
	log.Info("DEMO", fmt.Sprintf("Settled %s by %s, order closed at %s",
		result.Payment.Amount.StringFixed(2), result.Payment.Method,
		result.Order.ClosedAt.Format(time.RFC3339)))
}
