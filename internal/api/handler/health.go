package handler

import (
	"net/http"

	"github.com/beamcollective/portal-api/internal/api/response"
	"github.com/beamcollective/portal-api/internal/repository/mongo"
	"github.com/beamcollective/portal-api/internal/repository/redis"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// ReadyCheck returns readiness status including backing store connectivity
func ReadyCheck(db *mongo.DB, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			response.ServiceUnavailable(w, "database not ready")
			return
		}
		if err := redisClient.Ping(r.Context()); err != nil {
			response.ServiceUnavailable(w, "redis not ready")
			return
		}

		response.OK(w, map[string]string{
			"status": "ready",
		})
	}
}
