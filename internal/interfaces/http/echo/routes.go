package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, importHandler *ImportHandler) {
	if server.Validator == nil {
		server.Validator = NewValidator()
	}

	imports := server.Group("/api/v1/imports/trainings")
	imports.POST("", importHandler.PreviewImport)
	imports.GET("/template.xlsx", importHandler.Template)
	imports.GET("/:id", importHandler.GetSession)
	imports.DELETE("/:id", importHandler.Discard)
	imports.POST("/:id/review", importHandler.Review)
	imports.GET("/:id/training-types", importHandler.SearchTrainingTypes)
	imports.POST("/:id/commit", importHandler.Commit)
	imports.POST("/:id/cancel", importHandler.CancelCommit)
	imports.GET("/:id/errors.xlsx", importHandler.ExportErrors)
}
