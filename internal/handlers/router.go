package handlers

import (
	"context"
	"net/http"

	"github.com/elduverx/gruposmCRM-sub002/internal/config"
	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/internal/services"
	"github.com/elduverx/gruposmCRM-sub002/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Users         *services.UserService
	Goals         *services.GoalService
	Activities    *services.ActivityLogger
	Zones         *services.ZoneService
	Properties    *services.PropertyService
	Notifications *services.NotificationService
	Hub           *GoalsHub
	Ping          func(ctx context.Context) error
}

// NewRouter registers every route of the API.
func NewRouter(cfg *config.Config, svc Services) *mux.Router {
	userHandler := NewUserHandler(svc.Users, cfg)
	goalHandler := NewGoalHandler(svc.Goals)
	activityHandler := NewActivityHandler(svc.Activities)
	zoneHandler := NewZoneHandler(svc.Zones)
	propertyHandler := NewPropertyHandler(svc.Properties, svc.Zones)
	notificationHandler := NewNotificationHandler(svc.Notifications)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/healthz", HealthHandler(svc.Ping)).Methods("GET")
	if svc.Hub != nil {
		router.HandleFunc("/ws/goals", svc.Hub.ServeWS).Methods("GET")
	}

	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")

	auth := middleware.AuthMiddleware(cfg.JWTSecret)
	lastActive := middleware.UpdateLastActiveMiddleware(svc.Users)

	api := router.NewRoute().Subrouter()
	api.Use(auth, lastActive)

	api.HandleFunc("/users/me", userHandler.MeHandler).Methods("GET")

	api.HandleFunc("/activities", activityHandler.LogActivityHandler).Methods("POST")
	api.HandleFunc("/activities", activityHandler.ListActivitiesHandler).Methods("GET")

	api.HandleFunc("/goals", goalHandler.GetGoalsHandler).Methods("GET")
	api.HandleFunc("/goals", goalHandler.CreateGoalHandler).Methods("POST")
	api.HandleFunc("/goals/{id}", goalHandler.GetGoalHandler).Methods("GET")
	api.HandleFunc("/goals/{id}/recompute", goalHandler.RecomputeGoalHandler).Methods("POST")

	api.HandleFunc("/zones", zoneHandler.ListZonesHandler).Methods("GET")
	api.HandleFunc("/zones/locate", zoneHandler.LocateHandler).Methods("GET")
	api.HandleFunc("/zones/{id}", zoneHandler.GetZoneHandler).Methods("GET")

	api.HandleFunc("/properties", propertyHandler.CreatePropertyHandler).Methods("POST")
	api.HandleFunc("/properties", propertyHandler.ListPropertiesHandler).Methods("GET")
	api.HandleFunc("/properties/{id}/located", propertyHandler.SetLocatedHandler).Methods("PATCH")

	api.HandleFunc("/notifications", notificationHandler.GetUserNotificationsHandler).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsReadHandler).Methods("POST")
	api.HandleFunc("/notifications/{id}", notificationHandler.DeleteNotificationHandler).Methods("DELETE")

	admin := api.NewRoute().Subrouter()
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.HandleFunc("/zones", zoneHandler.CreateZoneHandler).Methods("POST")
	admin.HandleFunc("/zones/{id}", zoneHandler.UpdateZoneHandler).Methods("PUT")
	admin.HandleFunc("/zones/{id}", zoneHandler.DeleteZoneHandler).Methods("DELETE")
	admin.HandleFunc("/admin/zones/reassign", zoneHandler.ReassignHandler).Methods("POST")
	admin.HandleFunc("/admin/activities/{id}", activityHandler.DeleteActivityHandler).Methods("DELETE")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})
	return router
}
