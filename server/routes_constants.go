package server

const (
	RouteLogin          = "/login"
	RouteLogout         = "/logout"
	RouteCustomers      = "/query/cust"
	RouteCustomerSearch = "/query/cust/search"
)
