package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler, inviteCode string) {
	mux.HandleFunc("POST /v1/league/validate", handler.ValidateLeague(inviteCode))
	mux.HandleFunc("GET /v1/push/public-key", handler.PublicKey)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler, inviteCode string) {
	mux.Handle("GET /v1/days", RequireLeagueCode(inviteCode, http.HandlerFunc(handler.ListDays)))
	mux.Handle("GET /v1/days/{dayID}", RequireLeagueCode(inviteCode, http.HandlerFunc(handler.GetDay)))
	mux.Handle("POST /v1/days/{dayID}/predictions", RequireLeagueCode(inviteCode, http.HandlerFunc(handler.SubmitPredictions)))
	mux.Handle("GET /v1/chat/messages", RequireLeagueCode(inviteCode, http.HandlerFunc(handler.ListChatMessages)))
	mux.Handle("POST /v1/chat/messages", RequireLeagueCode(inviteCode, http.HandlerFunc(handler.PostChatMessage)))
	mux.Handle("GET /v1/inbox", RequireLeagueCode(inviteCode, http.HandlerFunc(handler.ListInbox)))
	mux.Handle("DELETE /v1/inbox/{notificationID}", RequireLeagueCode(inviteCode, http.HandlerFunc(handler.DismissNotification)))
	mux.Handle("PUT /v1/push/subscriptions", RequireLeagueCode(inviteCode, http.HandlerFunc(handler.SaveSubscription)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("GET /v1/admin/football/upcoming", RequireAdminToken(adminToken, http.HandlerFunc(handler.ListUpcomingFixtures)))
	mux.Handle("POST /v1/admin/days/publish", RequireAdminToken(adminToken, http.HandlerFunc(handler.PublishDay)))
	mux.Handle("POST /v1/admin/notify", RequireAdminToken(adminToken, http.HandlerFunc(handler.NotifyLeague)))
	mux.Handle("POST /v1/admin/chat", RequireAdminToken(adminToken, http.HandlerFunc(handler.PostAdminChatMessage)))
}
