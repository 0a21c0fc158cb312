package web

import (
	"fmt"
	"net/http"

	"github.com/akhilesh1566/Website-Chatbot/internal/app"
)

// Server exposes the prepare/chat/status surface over HTTP.
type Server struct {
	router *http.ServeMux
	app    *app.App
}

func NewServer(a *app.App) *Server {
	s := &Server{
		router: http.NewServeMux(),
		app:    a,
	}
	s.router.HandleFunc("/api/prepare", s.handlePrepare)
	s.router.HandleFunc("/api/chat", s.handleChat)
	s.router.HandleFunc("/api/status", s.handleStatus)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(port int) error {
	return http.ListenAndServe(fmt.Sprintf(":%d", port), s.router)
}
