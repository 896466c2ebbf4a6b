package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/claritybreak/internal/boot"
)

type BootController struct {
	handler BootHandler
}

func NewBootController(handler BootHandler) *BootController {
	return &BootController{handler: handler}
}

// Trigger delivers a boot signal through the same bridge the OS hook uses.
// The bridge never reports failures, so the response only confirms receipt.
// POST /api/boot
func (bc *BootController) Trigger(c *gin.Context) {
	var req struct {
		Signal string `json:"signal"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}
	if req.Signal == "" {
		req.Signal = boot.SignalBootCompleted
	}

	bc.handler.Handle(c.Request.Context(), req.Signal)
	respondAccepted(c, "boot signal delivered", gin.H{"signal": req.Signal})
}
