package routes

import (
	"fraudguard/controllers"
	"fraudguard/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const serviceName = "fraudguard"

func SetupRouter(chat *controllers.ChatController, logger *zap.SugaredLogger) *gin.Engine {
	r := gin.New()

	// middlewares must be registered before the routes they wrap
	r.Use(gin.Recovery())
	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(logger))
	r.Use(middlewares.Metrics())

	r.GET("/health", controllers.Health(serviceName))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	c := r.Group("/chat")
	{
		// チャットメッセージ送信
		c.POST("/message", chat.SendMessage)

		// 新しいセッションの発行
		c.POST("/new-session", chat.NewSession)

		// セッションの会話履歴
		c.GET("/history", chat.GetHistory)

		c.DELETE("/session/:sessionId", chat.ClearSession)
	}

	return r
}
