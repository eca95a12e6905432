package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"voxheat/calculator"
	"voxheat/model"
)

// 每个连接创建一个独立的计算实例
type Factory func() (calculator.Calculator, error)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	factory  Factory
	env      model.Env // 默认计算参数
}

func NewServer(addr string, upgrader websocket.Upgrader, factory Factory, env model.Env) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		factory:  factory,
		env:      env,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	c, err := s.factory()
	if err != nil {
		log.WithError(err).Error("创建计算实例失败")
		_ = conn.WriteJSON(&model.Msg{Type: "error", Content: err.Error()})
		return
	}
	hub := NewHub(c, conn, s.env)
	go hub.handleRequest()
	go hub.handleResponse()
	defer hub.close()

	logger := log.WithField("remote", conn.RemoteAddr().String())
	logger.Info("连接建立")
	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			logger.WithError(err).Info("连接断开")
			return
		}
		select {
		case hub.msg <- msg:
		case <-hub.done:
			return
		}
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("server start")
	return http.ListenAndServe(s.addr, s.Handler())
}
