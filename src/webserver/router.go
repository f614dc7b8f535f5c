package webserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/veriscope/veriscope/src/verify"
)

// New builds the HTTP router. The consuming clients are browser and mobile
// apps on arbitrary origins, hence the permissive CORS policy; preflight
// OPTIONS requests are short-circuited by the middleware.
func New(svc *verify.Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLog())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type"},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"provider": svc.ProviderName(),
		})
	})

	h := Verify{Svc: svc}
	v1 := r.Group("/v1/verify")
	{
		v1.POST("/text", h.Text)
		v1.POST("/claim", h.Claim)
		v1.GET("/claim", h.ClaimQuery)
		v1.POST("/quick", h.Quick)
		v1.POST("/image", h.Image)
	}

	return r
}
