package routes

import (
	"memoflow/app"
	"memoflow/controllers"
)

func RegisterRoutes(a *app.App) {
	r := a.Router

	// 控制器与依赖
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	memoCtl := controllers.NewMemoController(s)
	tagCtl := controllers.NewTagController(s)
	teamCtl := controllers.NewTeamController(s)
	memberCtl := controllers.NewMemberController(s)
	inviteCtl := controllers.NewInviteController(s)
	teamMemoCtl := controllers.NewTeamMemoController(s)
	aiCtl := controllers.NewAIController(s)
	searchCtl := controllers.NewSearchController(s)
	profileCtl := controllers.NewProfileController(s)

	// 复用的中间件
	authMW := app.AuthRequired(s.AppSess, s.Repo)
	optionalMW := app.AuthOptional(s.AppSess, s.Repo)

	// ------------------------------
	// Auth
	// ------------------------------
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.POST("/logout", authCtl.Logout)
		auth.POST("/logout-all", authMW, authCtl.LogoutAll)
		auth.GET("/me", authMW, authCtl.Me)
	}

	// ------------------------------
	// Memos / Tags
	// ------------------------------
	memos := r.Group("/api/memos", authMW)
	{
		memos.GET("", memoCtl.ListMemos)
		memos.POST("", memoCtl.CreateMemo)
		memos.GET("/:id", memoCtl.GetMemo)
		memos.PUT("/:id", memoCtl.UpdateMemo)
		memos.DELETE("/:id", memoCtl.DeleteMemo)
	}

	tags := r.Group("/api/tags", authMW)
	{
		tags.GET("", tagCtl.ListTags)
		tags.POST("", tagCtl.CreateTag)
		tags.PUT("/:id", tagCtl.UpdateTag)
		tags.DELETE("/:id", tagCtl.DeleteTag)
		tags.GET("/:id/memos", tagCtl.ListTagMemos)
	}

	// ------------------------------
	// Teams / Members / Invitations / Team memos
	// ------------------------------
	teams := r.Group("/api/teams", authMW)
	{
		teams.GET("", teamCtl.ListTeams)
		teams.POST("", teamCtl.CreateTeam)
		teams.GET("/:id", teamCtl.GetTeam)
		teams.PUT("/:id", teamCtl.UpdateTeam)
		teams.DELETE("/:id", teamCtl.DeleteTeam)

		teams.GET("/:id/members", memberCtl.ListMembers)
		teams.PUT("/:id/members/:memberId", memberCtl.ChangeRole)
		teams.DELETE("/:id/members/:memberId", memberCtl.RemoveMember)

		teams.GET("/:id/invitations", inviteCtl.ListTeamInvitations)
		teams.POST("/:id/invitations", inviteCtl.CreateInvitation)
		teams.DELETE("/:id/invitations/:invitationId", inviteCtl.CancelInvitation)

		teams.GET("/:id/memos", teamMemoCtl.ListTeamMemos)
		teams.POST("/:id/memos", teamMemoCtl.CreateTeamMemo)
		teams.GET("/:id/memos/search", teamMemoCtl.SearchTeamMemos)
		teams.GET("/:id/memos/stats", teamMemoCtl.TeamMemoStats)
		teams.GET("/:id/memos/:memoId", teamMemoCtl.GetTeamMemo)
		teams.PUT("/:id/memos/:memoId", teamMemoCtl.UpdateTeamMemo)
		teams.DELETE("/:id/memos/:memoId", teamMemoCtl.DeleteTeamMemo)
	}

	// ------------------------------
	// Invitation token endpoints（token 即凭证，session 可选）
	// ------------------------------
	inv := r.Group("/api/invitations")
	{
		inv.GET("", authMW, inviteCtl.ListMyInvitations)
		inv.GET("/:token", optionalMW, inviteCtl.GetInvitation)
		inv.POST("/:token", optionalMW, inviteCtl.ActOnInvitation)
	}

	// ------------------------------
	// AI / Search / Profile
	// ------------------------------
	aiGroup := r.Group("/api/ai", authMW)
	{
		aiGroup.POST("/analyze", aiCtl.Analyze)
		aiGroup.GET("/semantic-search", aiCtl.SemanticSearch)
	}

	searchGroup := r.Group("/api/search", authMW)
	{
		searchGroup.GET("/suggestions", searchCtl.Suggestions)
		searchGroup.POST("/log", searchCtl.LogSearch)
		searchGroup.GET("/log", searchCtl.PopularSearches)
		searchGroup.GET("/history", searchCtl.History)
		searchGroup.DELETE("/history", searchCtl.ClearHistory)
		searchGroup.GET("/favorites", searchCtl.ListFavorites)
		searchGroup.POST("/favorites", searchCtl.AddFavorite)
		searchGroup.DELETE("/favorites/:id", searchCtl.RemoveFavorite)
	}

	profile := r.Group("/api/user", authMW)
	{
		profile.GET("/profile", profileCtl.GetProfile)
		profile.PUT("/profile", profileCtl.UpdateProfile)
	}
}
