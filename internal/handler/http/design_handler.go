package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/application/usecase"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/design"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/designcode"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/share"
)

const (
	sessionName = "wardrobe"
	lastCodeKey = "last_code"
)

// DesignHandler 處理設計相關的 HTTP 請求
type DesignHandler struct {
	designUC *usecase.DesignUseCase
	quoteUC  *usecase.QuoteUseCase
	shareUC  *usecase.ShareUseCase
	sessions sessions.Store
	logger   *zap.Logger
}

// NewDesignHandler 建立新的 DesignHandler
func NewDesignHandler(
	duc *usecase.DesignUseCase,
	quc *usecase.QuoteUseCase,
	suc *usecase.ShareUseCase,
	store sessions.Store,
	logger *zap.Logger,
) *DesignHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DesignHandler{
		designUC: duc,
		quoteUC:  quc,
		shareUC:  suc,
		sessions: store,
		logger:   logger,
	}
}

// Save 儲存設計並回傳分享代碼
func (h *DesignHandler) Save(c *gin.Context) {
	var d design.Design
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的設計格式"})
		return
	}

	if err := h.designUC.SaveDesign(c.Request.Context(), &d); err != nil {
		writeError(c, err)
		return
	}
	h.rememberCode(c, d.Code)

	c.JSON(http.StatusOK, gin.H{"message": "設計儲存成功", "id": d.ID, "code": d.Code})
}

// Resume 以設計代碼找回設計
func (h *DesignHandler) Resume(c *gin.Context) {
	d, err := h.designUC.ResumeDesign(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.rememberCode(c, d.Code)
	c.JSON(http.StatusOK, d)
}

// Last 回傳此瀏覽器最近一次儲存或開啟的設計
func (h *DesignHandler) Last(c *gin.Context) {
	session, err := h.sessions.Get(c.Request, sessionName)
	if err != nil {
		h.logger.Debug("ignoring unreadable session", zap.Error(err))
	}
	code, _ := session.Values[lastCodeKey].(string)
	if code == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "沒有最近開啟的設計"})
		return
	}

	d, err := h.designUC.ResumeDesign(c.Request.Context(), code)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ListByEmail 列出同一個電子郵件儲存的設計
func (h *DesignHandler) ListByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 email 查詢參數"})
		return
	}
	designs, err := h.designUC.ListDesignsByEmail(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}
	if designs == nil {
		designs = []*design.Design{}
	}
	c.JSON(http.StatusOK, designs)
}

// Quote 計算設計報價
func (h *DesignHandler) Quote(c *gin.Context) {
	q, err := h.quoteUC.Quote(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// Share 以電子郵件寄出設計代碼
func (h *DesignHandler) Share(c *gin.Context) {
	var req share.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的分享格式"})
		return
	}

	if err := h.shareUC.ShareDesign(c.Request.Context(), c.Param("code"), req); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "設計已分享"})
}

// NewCode 產生新的設計代碼，可用 ?length= 指定總長度 (0 只回傳前綴)，未指定時使用設定的長度
func (h *DesignHandler) NewCode(c *gin.Context) {
	length := h.designUC.CodeLength()
	if raw, ok := c.GetQuery("length"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > designcode.MaxLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("length 必須是 0 到 %d 之間的整數", designcode.MaxLength)})
			return
		}
		length = n
	}
	c.JSON(http.StatusOK, gin.H{"code": h.designUC.NewCode(length)})
}

func (h *DesignHandler) rememberCode(c *gin.Context, code string) {
	session, err := h.sessions.Get(c.Request, sessionName)
	if err != nil {
		h.logger.Debug("replacing unreadable session", zap.Error(err))
	}
	session.Values[lastCodeKey] = code
	if err := session.Save(c.Request, c.Writer); err != nil {
		h.logger.Warn("failed to save session", zap.Error(err))
	}
}
