// Package server is the HTTP boundary of the gateway: login issues a session
// token, logout revokes it, and the /query routes run allow-listed customer
// queries using the credentials stored in the caller's session.
package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/LandDroid/Oppacu-Search-by-Customer/auth"
	"github.com/LandDroid/Oppacu-Search-by-Customer/customers"
	"github.com/LandDroid/Oppacu-Search-by-Customer/internal/config"
	"github.com/LandDroid/Oppacu-Search-by-Customer/sessions"
)

type Server struct {
	env       string // Environment (e.g., "DEV", "production")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	store     *sessions.Store
	validator auth.Validator
	gateway   customers.Gateway
}

func New(cfg config.Config, store *sessions.Store, validator auth.Validator, gateway customers.Gateway) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("[Server New] session store is required")
	}
	if validator == nil {
		return nil, fmt.Errorf("[Server New] credential validator is required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("[Server New] customer gateway is required")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		store:     store,
		validator: validator,
		gateway:   gateway,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
