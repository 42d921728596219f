package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/DikshantJo/ZwitchNew-sub000/utils"
)

// GET /v1/admin/gateway/health
//
// Probes the gateway with a cheap authenticated list call. The key id is
// masked in the response; the secret never leaves the config.
func GatewayHealth(c *gin.Context) {
	utils.LogInfo("GatewayHealth called")

	if !gatewayClient.IsConfigured() {
		utils.Success(c, "Gateway health checked", gin.H{
			"configured": false,
			"reachable":  false,
			"message":    "Gateway credentials are not configured",
		})
		return
	}

	result := gatewayClient.TestConnectivity()
	utils.LogInfo("Gateway connectivity check: success=%t %s", result.Success, result.Message)

	utils.Success(c, "Gateway health checked", gin.H{
		"configured": true,
		"reachable":  result.Success,
		"message":    result.Message,
		"key":        utils.MaskSecret(gatewayClient.KeyID()),
	})
}
