package server

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"voxheat/calculator"
	"voxheat/model"
)

// 消息类型
const (
	msgEnv      = "env"
	msgStart    = "start"
	msgStop     = "stop"
	msgSnapshot = "snapshot"

	replyEnvSet   = "envSet"
	replyStarted  = "started"
	replyStopped  = "stopped"
	replyData     = "data"
	replyFinished = "finished"
	replyError    = "error"
)

// Hub 负责一个连接上的请求处理和结果推送
type Hub struct {
	c    calculator.Calculator
	conn *websocket.Conn
	env  model.Env

	running bool // 仅在 handleRequest 中读写

	// request
	msg chan model.Msg
	// response
	reply chan model.Msg

	done      chan struct{}
	closeOnce sync.Once
}

func NewHub(c calculator.Calculator, conn *websocket.Conn, env model.Env) *Hub {
	return &Hub{
		c:     c,
		conn:  conn,
		env:   env,
		msg:   make(chan model.Msg, 10),
		reply: make(chan model.Msg, 10),
		done:  make(chan struct{}),
	}
}

func (h *Hub) close() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.c.GetCalcHub().StopSignal()
	})
}

func (h *Hub) send(reply model.Msg) {
	select {
	case h.reply <- reply:
	case <-h.done:
	}
}

// 连接上唯一的写入者
func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.reply:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.WithError(err).Error("write reply failed")
				h.close()
				return
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRequest() {
	calcHub := h.c.GetCalcHub()
	for {
		select {
		case msg := <-h.msg:
			h.dispatch(msg)
		case <-calcHub.PeriodCalcResult:
			h.sendData()
		case err := <-calcHub.Finished:
			h.running = false
			h.sendData()
			reply := model.Msg{Type: replyFinished}
			if err != nil {
				reply.Content = err.Error()
			}
			h.send(reply)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) dispatch(msg model.Msg) {
	switch msg.Type {
	case msgEnv:
		if h.running {
			h.sendError("计算进行中，不能修改参数")
			return
		}
		var env model.Env
		if err := json.Unmarshal([]byte(msg.Content), &env); err != nil {
			h.sendError(fmt.Sprintf("invalid env: %v", err))
			return
		}
		if env.TimeStep > 0 {
			h.env.TimeStep = env.TimeStep
			h.c.SetTimeStep(env.TimeStep)
		}
		h.env.Iterations = env.Iterations
		h.env.PushInterval = env.PushInterval
		log.WithFields(log.Fields{
			"timeStep":     h.env.TimeStep,
			"iterations":   h.env.Iterations,
			"pushInterval": h.env.PushInterval,
		}).Info("设置计算参数")
		h.send(model.Msg{Type: replyEnvSet, Content: "env is set"})
	case msgStart:
		if h.running {
			h.sendError("计算已经开始")
			return
		}
		h.running = true
		calcHub := h.c.GetCalcHub()
		calcHub.StartSignal()
		h.c.SetPushInterval(h.env.PushInterval)
		iterations := h.env.Iterations
		h.send(model.Msg{Type: replyStarted})
		go func() {
			calcHub.Finished <- h.c.Run(iterations)
		}()
	case msgStop:
		h.c.GetCalcHub().StopSignal()
		h.send(model.Msg{Type: replyStopped, Content: "stopped"})
	case msgSnapshot:
		h.sendData()
	default:
		log.WithField("type", msg.Type).Warn("no such type")
		h.sendError(fmt.Sprintf("no such type %q", msg.Type))
	}
}

func (h *Hub) sendData() {
	data, err := json.Marshal(h.c.BuildData())
	if err != nil {
		h.sendError(err.Error())
		return
	}
	h.send(model.Msg{Type: replyData, Content: string(data)})
}

func (h *Hub) sendError(content string) {
	h.send(model.Msg{Type: replyError, Content: content})
}
