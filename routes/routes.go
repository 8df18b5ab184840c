package routes

import (
	"sipinjam/app"
	"sipinjam/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.NewSrv(a)
	authCtl := controllers.NewAuthController(s)
	profileCtl := controllers.NewProfileController(s)
	assetCtl := controllers.NewAssetController(s)
	reqCtl := controllers.NewRequestController(s)
	reportCtl := controllers.NewReportController(s)
	adminCtl := controllers.NewAdminController(s)

	authMW := app.AuthRequired(a.Sessions(), a.Repo)
	staffMW := app.StaffOnly()
	adminMW := app.AdminOnly()

	// Identity
	r.POST("/auth/register", authCtl.Register)
	r.POST("/auth/login", authCtl.Login)

	auth := r.Group("/", authMW)
	{
		auth.POST("/auth/logout", authCtl.Logout)
		auth.GET("/me", authCtl.Me)
		auth.PUT("/me/profile", profileCtl.Update)

		// Directory (public reads per policy)
		auth.GET("/profiles", profileCtl.List)
		auth.GET("/profiles/:id", profileCtl.Get)
		auth.PUT("/profiles/:id", profileCtl.Update)

		// Catalog
		auth.GET("/assets", assetCtl.List)
		auth.GET("/assets/:id", assetCtl.Get)
		auth.POST("/assets", staffMW, assetCtl.Create)
		auth.PUT("/assets/:id", staffMW, assetCtl.Update)

		// Borrow ledger
		auth.POST("/requests", reqCtl.Create)
		auth.GET("/requests", reqCtl.List)
		auth.GET("/requests/:id", reqCtl.Get)
		auth.POST("/requests/:id/approve", staffMW, reqCtl.Approve)
		auth.POST("/requests/:id/reject", staffMW, reqCtl.Reject)
		auth.POST("/requests/:id/return", staffMW, reqCtl.Return)

		// Reports & activity feed
		auth.GET("/reports/summary", reportCtl.Summary)
		auth.GET("/reports/assets", reportCtl.AssetTotals)
		auth.GET("/reports/departments", reportCtl.Departments)
		auth.GET("/activity", reportCtl.Activity)

		// Administration
		admin := auth.Group("/admin", adminMW)
		{
			admin.GET("/roles", adminCtl.ListRoles)
			admin.POST("/roles", adminCtl.GrantRole)
			admin.DELETE("/roles", adminCtl.RevokeRole)
			admin.GET("/users", adminCtl.ListUsers)
			admin.DELETE("/users/:id", adminCtl.DeleteUser)
		}
	}
}
