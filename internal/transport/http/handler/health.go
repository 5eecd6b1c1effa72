package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docchat/internal/bootstrap"
)

// HealthHandler reports the liveness of every backing dependency the
// question-answering pipeline needs: the document store, the session store,
// the audit queue and the worker draining it.
type HealthHandler struct {
	app *bootstrap.App
}

type dependencyStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]func(context.Context) error{
		"mysql":     h.pingMySQL,
		"redis":     h.pingRedis,
		"rabbitmq":  h.pingRabbitMQ,
		"qa_worker": h.checkWorker,
	}

	deps := gin.H{}
	status := "ok"
	code := http.StatusOK
	for name, check := range checks {
		if err := check(ctx); err != nil {
			deps[name] = dependencyStatus{Message: err.Error()}
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		deps[name] = dependencyStatus{OK: true}
	}

	c.JSON(code, gin.H{
		"status":       status,
		"app":          h.app.Config.App.Name,
		"env":          h.app.Config.App.Env,
		"uptime":       time.Since(h.app.StartedAt).Truncate(time.Second).String(),
		"dependencies": deps,
	})
}

func (h *HealthHandler) pingMySQL(ctx context.Context) error {
	sqlDB, err := h.app.MySQL.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (h *HealthHandler) pingRedis(ctx context.Context) error {
	return h.app.Redis.Ping(ctx).Err()
}

func (h *HealthHandler) pingRabbitMQ(context.Context) error {
	if h.app.MQConn == nil || h.app.MQConn.IsClosed() {
		return errors.New("connection closed")
	}
	return nil
}

func (h *HealthHandler) checkWorker(context.Context) error {
	if h.app.QAWorker == nil || !h.app.QAWorker.Running() {
		return errors.New("persist worker not running")
	}
	return nil
}
