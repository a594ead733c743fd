package server

import "net/http"

func (s *Server) initRoutes() {
	// LOGIN / LOGOUT
	s.RegisterRouteFunc("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// Protected query routes; the session gate passes the validated session
	// into the handler for this one request.
	s.RegisterRouteFunc("GET "+RouteCustomers, ChainMiddleware(s.RequireSession(s.CustomersHandler()), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteCustomerSearch, ChainMiddleware(s.RequireSession(s.CustomerSearchHandler()), s.APIMiddleware()...))

	// CORS preflight for the browser UI
	s.RegisterRouteFunc("OPTIONS /", ChainMiddleware(s.preflightHandler(), s.APIMiddleware()...))
}

func (s *Server) preflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// CorsMiddleware has already answered OPTIONS requests.
	}
}
