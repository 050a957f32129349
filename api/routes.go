package api

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	{
		pairs := api.Group("/pairs")
		{
			pairs.GET("", s.handleGetPairs)
			pairs.GET("/:token_a/:token_b", s.handleGetPair)
		}

		quote := api.Group("/quote")
		{
			quote.GET("/amounts-out", s.handleQuoteAmountsOut)
			quote.GET("/amounts-in", s.handleQuoteAmountsIn)
		}

		router := api.Group("/router")
		{
			router.GET("/config", s.handleGetRouterConfig)
			router.GET("/pending/:user", s.handleGetPendingRefunds)
			router.GET("/joins/:user", s.handleGetLiquidityJoins)

			router.POST("/swap/exact-in", s.handleSwapExactIn)
			router.POST("/swap/exact-out", s.handleSwapExactOut)
			router.POST("/liquidity/add", s.handleAddLiquidity)
			router.POST("/liquidity/remove", s.handleRemoveLiquidity)
		}
	}
}
