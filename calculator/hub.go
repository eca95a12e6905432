package calculator

import (
	"sync"
)

type CalcHub struct {
	mu   sync.Mutex
	stop chan struct{}
	once *sync.Once

	// 温度场推送
	PeriodCalcResult chan struct{}
	// 计算结束
	Finished chan error
}

func NewCalcHub() *CalcHub {
	ch := &CalcHub{
		PeriodCalcResult: make(chan struct{}),
		Finished:         make(chan error, 1),
	}
	ch.StartSignal()
	return ch
}

// 温度场计算结果推送，停止后不再阻塞
func (ch *CalcHub) PushSignal() {
	select {
	case ch.PeriodCalcResult <- struct{}{}:
	case <-ch.Stop():
	}
}

func (ch *CalcHub) Stop() <-chan struct{} {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.stop
}

func (ch *CalcHub) StopSignal() {
	ch.mu.Lock()
	stop, once := ch.stop, ch.once
	ch.mu.Unlock()
	once.Do(func() {
		close(stop)
	})
}

func (ch *CalcHub) StartSignal() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.stop = make(chan struct{})
	ch.once = &sync.Once{}
}

func (ch *CalcHub) Stopped() bool {
	select {
	case <-ch.Stop():
		return true
	default:
		return false
	}
}
