package middleware

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

type corsFile struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

// CORS builds the CORS policy. A yaml file at path overrides the
// development defaults; an empty path or unreadable file keeps them.
func CORS(path string) gin.HandlerFunc {
	origins := defaultOrigins
	if path != "" {
		if raw, err := os.ReadFile(path); err == nil {
			var cfg corsFile
			if yaml.Unmarshal(raw, &cfg) == nil && len(cfg.AllowOrigins) > 0 {
				origins = cfg.AllowOrigins
			}
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	})
}
