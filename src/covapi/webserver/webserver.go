// Package webserver serves the read-only status API over the same backing
// channels the bot writes. Read paths garbage-collect expired and malformed
// entries exactly like the bot's own reads.
package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yuft/covbot/src/carpool"
	"github.com/yuft/covbot/src/rank"
)

type Stores struct {
	Carpools *carpool.Store
	Ranks    *rank.Store
}

func New(origins []string, stores Stores) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, origins, stores)
	return g
}

func attachRoutes(r *gin.Engine, origins []string, stores Stores) {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "OPTIONS"}
	if len(origins) == 1 && origins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	r.Use(cors.New(corsCfg))

	h := newHandlers(stores)
	r.GET("/healthz", h.Health)

	v1 := r.Group("/v1")
	{
		v1.GET("/carpools", h.Carpools)
		v1.GET("/leaderboard", h.Leaderboard)
	}
}
