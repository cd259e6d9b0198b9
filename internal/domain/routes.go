package domain

// Route is a navigation target handed back to the caller once a flow completes.
type Route string

const (
	RouteHome          Route = "/"
	RouteLogin         Route = "/Login"
	RouteUpdateProfile Route = "/UpdateProfile"
)
