package handler

import (
	"strings"

	"github.com/bigface030/fatten-up-plan/internal/catalog"
	"github.com/bigface030/fatten-up-plan/internal/config"
	"github.com/bigface030/fatten-up-plan/internal/render"
	"github.com/bigface030/fatten-up-plan/internal/service"
	"github.com/bigface030/fatten-up-plan/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Handler 统一处理器，包含所有服务依赖
type Handler struct {
	db            *gorm.DB
	recordService *service.RecordService
	renderer      *render.Renderer
}

// NewHandler 创建处理器实例
func NewHandler(db *gorm.DB, rdb *redis.Client, cfg *config.Config, c *catalog.Catalog) *Handler {
	return &Handler{
		db:            db,
		recordService: service.NewRecordService(db, rdb, cfg, c),
		renderer:      render.NewRenderer(c),
	}
}

// WebhookRequest 消息入口请求
type WebhookRequest struct {
	Username string `json:"username" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

// Webhook 接收一段用户输入并返回回复文本
// POST /webhook
func (h *Handler) Webhook(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		response.ParamError(c, "username 参数错误")
		return
	}

	tokenGroups := service.Tokenize(req.Text)
	reply := h.recordService.Execute(c.Request.Context(), username, tokenGroups)

	response.Success(c, gin.H{
		"status": reply.Status,
		"reply":  h.renderer.Render(reply),
	})
}

// Version 返回底层数据库版本，用于部署后的连通性确认
// GET /version
func (h *Handler) Version(c *gin.Context) {
	var version string
	if err := h.db.WithContext(c.Request.Context()).Raw("SELECT VERSION()").Scan(&version).Error; err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"version": version})
}
