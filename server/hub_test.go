package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"voxheat/calculator"
	"voxheat/material"
	"voxheat/model"
	"voxheat/scenario"
	"voxheat/volume"
)

func newFactory(t *testing.T) Factory {
	return func() (calculator.Calculator, error) {
		size := model.Size{X: 5, Y: 4, Z: 3}
		lookup, err := material.DefaultLookup(4)
		if err != nil {
			return nil, err
		}
		m, _ := volume.New[model.MaterialId](size, 0)
		temperature, _ := volume.New[model.Temperature](size, 0)
		if err := scenario.FillTestMaterial(m, lookup); err != nil {
			return nil, err
		}
		if err := scenario.FillHeatSourceAndSink(m, temperature, lookup); err != nil {
			return nil, err
		}
		return calculator.NewSimulation(m, temperature, lookup, 100)
	}
}

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	s := NewServer("", websocket.Upgrader{}, newFactory(t), model.Env{TimeStep: 100, Iterations: 10, PushInterval: 5})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func request(t *testing.T, conn *websocket.Conn, msg model.Msg) {
	t.Helper()
	if err := conn.WriteJSON(&msg); err != nil {
		t.Fatal(err)
	}
}

func receive(t *testing.T, conn *websocket.Conn) model.Msg {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	var msg model.Msg
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	return msg
}

func decode(t *testing.T, msg model.Msg) calculator.TemperatureFieldData {
	t.Helper()
	if msg.Type != replyData {
		t.Fatalf("reply type = %q, want %q", msg.Type, replyData)
	}
	var data calculator.TemperatureFieldData
	if err := json.Unmarshal([]byte(msg.Content), &data); err != nil {
		t.Fatal(err)
	}
	return data
}

func TestHub_Run(t *testing.T) {
	conn := dial(t)

	env, _ := json.Marshal(model.Env{TimeStep: 50, Iterations: 20, PushInterval: 10})
	request(t, conn, model.Msg{Type: msgEnv, Content: string(env)})
	if reply := receive(t, conn); reply.Type != replyEnvSet {
		t.Fatalf("reply = %+v", reply)
	}

	request(t, conn, model.Msg{Type: msgStart})
	if reply := receive(t, conn); reply.Type != replyStarted {
		t.Fatalf("reply = %+v", reply)
	}
	var last calculator.TemperatureFieldData
	pushes := 0
	for {
		reply := receive(t, conn)
		if reply.Type == replyFinished {
			if reply.Content != "" {
				t.Fatalf("finished with error %q", reply.Content)
			}
			break
		}
		last = decode(t, reply)
		pushes++
	}
	// 两次周期推送和一次结束推送
	if pushes != 3 {
		t.Errorf("pushes = %d, want 3", pushes)
	}
	if last.Tick != 20 || last.TimeStep != 50 || last.Elapsed != 1000 {
		t.Errorf("last = tick %d, time step %v, elapsed %v", last.Tick, last.TimeStep, last.Elapsed)
	}
	if last.Max != model.TungstenMelting || last.Min != model.AbsoluteZero {
		t.Errorf("range = [%v, %v]", last.Min, last.Max)
	}
}

func TestHub_StopAndSnapshot(t *testing.T) {
	conn := dial(t)

	request(t, conn, model.Msg{Type: msgSnapshot})
	data := decode(t, receive(t, conn))
	if data.Tick != 0 || len(data.Temperature) != 60 || data.Materials[3] != "Iron" {
		t.Errorf("snapshot = tick %d, %d voxels, materials %v", data.Tick, len(data.Temperature), data.Materials)
	}

	env, _ := json.Marshal(model.Env{Iterations: 0, PushInterval: 1})
	request(t, conn, model.Msg{Type: msgEnv, Content: string(env)})
	if reply := receive(t, conn); reply.Type != replyEnvSet {
		t.Fatalf("reply = %+v", reply)
	}
	request(t, conn, model.Msg{Type: msgStart})
	if reply := receive(t, conn); reply.Type != replyStarted {
		t.Fatalf("reply = %+v", reply)
	}
	request(t, conn, model.Msg{Type: msgStop})

	stopped, finished := false, false
	for !stopped || !finished {
		switch reply := receive(t, conn); reply.Type {
		case replyStopped:
			stopped = true
		case replyFinished:
			finished = true
		case replyData:
			decode(t, reply)
		default:
			t.Fatalf("unexpected reply %+v", reply)
		}
	}
}

func TestHub_Errors(t *testing.T) {
	conn := dial(t)

	request(t, conn, model.Msg{Type: "explode"})
	if reply := receive(t, conn); reply.Type != replyError {
		t.Errorf("reply = %+v", reply)
	}
	request(t, conn, model.Msg{Type: msgEnv, Content: "{"})
	if reply := receive(t, conn); reply.Type != replyError {
		t.Errorf("reply = %+v", reply)
	}
}
