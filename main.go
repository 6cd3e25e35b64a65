package main

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "os"
    "os/signal"
    "runtime"
    "syscall"
    "time"

    _ "github.com/go-sql-driver/mysql"
    "github.com/gorilla/mux"

    "pawmart-storefront-api/config"
    "pawmart-storefront-api/database"
    "pawmart-storefront-api/handlers"
    "pawmart-storefront-api/middleware"
    "pawmart-storefront-api/queue"
    "pawmart-storefront-api/services/auth"
    "pawmart-storefront-api/services/email"
    "pawmart-storefront-api/storage"
    "pawmart-storefront-api/worker"
)

func corsMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
        w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")

        if r.Method == "OPTIONS" {
            w.WriteHeader(http.StatusOK)
            return
        }
        next.ServeHTTP(w, r)
    })
}

type responseWriter struct {
    http.ResponseWriter
    status int
}

func (rw *responseWriter) WriteHeader(code int) {
    rw.status = code
    rw.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware records only slow requests and errors.
func loggingMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()

        wrapper := &responseWriter{ResponseWriter: w, status: http.StatusOK}
        next.ServeHTTP(wrapper, r)

        elapsed := time.Since(start)
        if elapsed > 500*time.Millisecond || wrapper.status >= 400 {
            log.Printf(
                "%s %s %s %d %v",
                r.Method,
                r.RequestURI,
                r.RemoteAddr,
                wrapper.status,
                elapsed,
            )
        }
    })
}

func main() {
    log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds | log.LUTC)

    cfg := config.Load()
    log.Printf("Configuration loaded successfully")

    var db *database.Connection
    var err error
    for retries := 0; retries < 5; retries++ {
        db, err = database.NewConnection(cfg.Database)
        if err == nil {
            break
        }
        retryDelay := time.Duration(retries+1) * time.Second
        log.Printf("Failed to connect to database (attempt %d/5): %v. Retrying in %v...",
            retries+1, err, retryDelay)
        time.Sleep(retryDelay)
    }
    if err != nil {
        log.Fatalf("Failed to connect to database after retries: %v", err)
    }
    defer db.Close()

    ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
    defer cancel()

    if err := db.GetDB().PingContext(ctx); err != nil {
        log.Fatalf("Failed to ping database: %v", err)
    }
    log.Println("Successfully connected to database")

    cartKV, err := storage.NewRedisKV(cfg.Redis.URL, cfg.Redis.CartTTL)
    if err != nil {
        log.Fatalf("Failed to connect to Redis: %v", err)
    }
    defer cartKV.Close()
    log.Println("Successfully connected to Redis")

    orderQueue, err := queue.NewQueue(cfg.Redis.URL, "order_jobs")
    if err != nil {
        log.Fatalf("Failed to create order queue: %v", err)
    }
    defer orderQueue.Close()

    emailService := email.NewSMTPService(email.SMTPConfig{
        Host:     cfg.SMTP.Host,
        Port:     cfg.SMTP.Port,
        Username: cfg.SMTP.Username,
        Password: cfg.SMTP.Password,
        From:     cfg.SMTP.From,
    })
    jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, db)

    workerConcurrency := cfg.Redis.WorkerConcurrency
    if workerConcurrency < 2 {
        workerConcurrency = 2
    } else if workerConcurrency > 8 {
        workerConcurrency = 8
    }

    orderWorker := worker.NewWorker(orderQueue, db, emailService)
    orderWorker.Start(workerConcurrency)
    defer orderWorker.Stop()
    log.Printf("Started order worker with %d threads", workerConcurrency)

    productHandler := handlers.NewProductHandler(db)
    cartHandler := handlers.NewCartHandler(db, cartKV, cfg)
    checkoutHandler := handlers.NewCheckoutHandler(db, orderQueue, cartHandler)
    authHandler := handlers.NewAuthHandler(jwtService)
    rateLimiter := middleware.NewRateLimiter(cartKV.Client())

    router := mux.NewRouter()
    router.Use(corsMiddleware)
    router.Use(loggingMiddleware)
    router.Use(rateLimiter.RateLimitMiddleware())

    api := router.PathPrefix("/api").Subrouter()

    // Catalog endpoints
    api.HandleFunc("/products", productHandler.GetProducts).Methods("GET", "OPTIONS")
    api.HandleFunc("/products/{id:[0-9]+}", productHandler.GetProduct).Methods("GET", "OPTIONS")
    api.HandleFunc("/brands", productHandler.GetBrands).Methods("GET", "OPTIONS")
    api.HandleFunc("/banners/active", productHandler.GetActiveBanners).Methods("GET", "OPTIONS")

    // Auth endpoints
    api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
    api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST", "OPTIONS")
    api.Handle("/auth/validate",
        middleware.AuthMiddleware(jwtService)(http.HandlerFunc(authHandler.Validate))).Methods("GET", "OPTIONS")

    // Cart endpoints
    api.HandleFunc("/cart", cartHandler.GetCart).Methods("GET", "OPTIONS")
    api.HandleFunc("/cart", cartHandler.ClearCart).Methods("DELETE", "OPTIONS")
    api.HandleFunc("/cart/items", cartHandler.AddItem).Methods("POST", "OPTIONS")
    api.HandleFunc("/cart/items/{id}", cartHandler.SetQuantity).Methods("PUT", "OPTIONS")
    api.HandleFunc("/cart/items/{id}", cartHandler.RemoveItem).Methods("DELETE", "OPTIONS")
    api.HandleFunc("/cart/coupon", cartHandler.ApplyCoupon).Methods("POST", "OPTIONS")
    api.HandleFunc("/cart/coupon", cartHandler.RemoveCoupon).Methods("DELETE", "OPTIONS")
    api.HandleFunc("/cart/delivery-fee", cartHandler.DeliveryFee).Methods("GET", "OPTIONS")

    // Checkout
    api.HandleFunc("/checkout", checkoutHandler.Checkout).Methods("POST", "OPTIONS")

    startTime := time.Now()

    api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
        ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
        defer cancel()

        health := struct {
            Status    string `json:"status"`
            Time      string `json:"time"`
            Database  string `json:"database"`
            Redis     string `json:"redis"`
            Uptime    string `json:"uptime"`
            GoVersion string `json:"go_version"`
        }{
            Status:    "ok",
            Time:      time.Now().Format(time.RFC3339),
            Database:  "connected",
            Redis:     "connected",
            Uptime:    fmt.Sprintf("%v", time.Since(startTime)),
            GoVersion: runtime.Version(),
        }

        dbCtx, dbCancel := context.WithTimeout(ctx, 500*time.Millisecond)
        defer dbCancel()

        if err := db.GetDB().PingContext(dbCtx); err != nil {
            health.Status = "degraded"
            health.Database = "error"
        }

        redisCtx, redisCancel := context.WithTimeout(ctx, 500*time.Millisecond)
        defer redisCancel()

        if err := cartKV.Client().Ping(redisCtx).Err(); err != nil {
            health.Status = "degraded"
            health.Redis = "error"
        }

        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(health)
    }).Methods("GET")

    srv := &http.Server{
        Addr:           fmt.Sprintf(":%s", cfg.Server.Port),
        Handler:        router,
        ReadTimeout:    15 * time.Second,
        WriteTimeout:   30 * time.Second,
        IdleTimeout:    120 * time.Second,
        MaxHeaderBytes: 1 << 20,
    }

    go func() {
        log.Printf("Server starting on port %s", cfg.Server.Port)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("Server error: %v", err)
        }
    }()

    stop := make(chan os.Signal, 1)
    signal.Notify(stop, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

    <-stop
    log.Println("Shutdown signal received, gracefully shutting down...")

    shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
    defer shutdownCancel()

    log.Println("Shutting down HTTP server...")
    if err := srv.Shutdown(shutdownCtx); err != nil {
        log.Printf("Server forced to shutdown: %v", err)
    }

    log.Println("Stopping order worker...")
    orderWorker.Stop()

    time.Sleep(2 * time.Second)

    log.Println("Closing database connections...")
    db.Close()

    log.Println("Closing Redis connections...")
    cartKV.Close()
    orderQueue.Close()

    log.Println("Server exited properly")
}
