package handler

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every endpoint. debug may be nil to leave the
// diagnostics routes out.
func NewRouter(newsHandler *NewsHandler, debug *DebugHandler, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger())
	r.Use(cors.New(corsConfig(corsOrigins)))

	r.GET("/health", newsHandler.GetHealth)
	r.GET("/fetch-news/:query", newsHandler.FetchNews)
	r.GET("/news", newsHandler.GetNews)
	r.GET("/test-sentiment", newsHandler.TestSentiment)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if debug != nil {
		r.GET("/debug/files", debug.ListFiles)
		r.GET("/debug/database", debug.DatabaseInfo)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
