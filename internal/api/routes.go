package api

func (s *Server) setupRoutes() {
	s.router.GET("/", s.healthHandler.ServiceInfo)
	s.router.GET("/health", s.healthHandler.HealthCheck)

	system := s.router.Group("/system")
	{
		system.GET("/stats", s.systemHandler.GetStats)
	}

	s.router.POST("/sessions", s.sessionHandler.CreateSession)

	sessions := s.router.Group("/sessions/:session_id", s.sessionHandler.RequireSession())
	{
		sessions.GET("", s.sessionHandler.GetSession)
		sessions.DELETE("", s.sessionHandler.DeleteSession)
		sessions.GET("/videos", s.sessionHandler.ListVideos)
		sessions.GET("/categories", s.sessionHandler.ListCategories)
		sessions.PUT("/category", s.sessionHandler.SetCategory)
	}

	videos := sessions.Group("/videos/:video")
	{
		videos.POST("/select", s.videoHandler.SelectVideo)
		videos.PUT("/frame", s.videoHandler.SetFrame)
		videos.GET("/view", s.videoHandler.GetView)
		videos.GET("/image", s.videoHandler.GetFrameImage)

		videos.POST("/shapes", s.roiHandler.UpdateShapes)
		videos.GET("/rois", s.roiHandler.GetTable)
		videos.POST("/rois/load", s.roiHandler.LoadROIs)
		videos.POST("/rois/save", s.roiHandler.SaveROIs)
		videos.POST("/rois/delete", s.roiHandler.DeleteROIs)
		videos.GET("/status", s.roiHandler.GetStatus)
	}
}
