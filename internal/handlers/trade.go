package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jobbook/jobbook-backend/internal/repos"
)

type TradeHandler struct {
	trades repos.TradeRepo
}

func NewTradeHandler(trades repos.TradeRepo) *TradeHandler {
	return &TradeHandler{trades: trades}
}

func (th *TradeHandler) List(c *gin.Context) {
	trades, err := th.trades.List(c.Request.Context(), nil)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"trades": trades})
}
