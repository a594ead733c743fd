package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/LandDroid/Oppacu-Search-by-Customer/auth"
	"github.com/LandDroid/Oppacu-Search-by-Customer/customers"
	"github.com/LandDroid/Oppacu-Search-by-Customer/internal/config"
	"github.com/LandDroid/Oppacu-Search-by-Customer/internal/database"
	"github.com/LandDroid/Oppacu-Search-by-Customer/server"
	"github.com/LandDroid/Oppacu-Search-by-Customer/sessions"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	connector := database.NewSQLServerConnector(c)
	validator, err := auth.NewSQLValidator(connector)
	if err != nil {
		return fmt.Errorf("auth.NewSQLValidator: %w", err)
	}
	gateway, err := customers.NewSQLGateway(connector)
	if err != nil {
		return fmt.Errorf("customers.NewSQLGateway: %w", err)
	}
	store := sessions.NewStore(c.GetMaxSessionIdle())

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	store.StartSweeper(sweepCtx, c.GetSessionSweepInterval(), func(removed int) {
		if removed > 0 {
			log.Printf("Swept %d expired sessions\n", removed)
		}
	})

	handler, err := server.New(c, store, validator, gateway)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
