// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package projection

import (
	"context"
	"encoding/json"

	zmq "github.com/pebbe/zmq4"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/assetd/assetrecord"
	"github.com/bitmark-inc/assetd/background"
	"github.com/bitmark-inc/logger"
)

// topics prefixed onto each published frame
const (
	recordTopic  = "asset.record"
	historyTopic = "asset.history"
)

// queue depth; messages beyond this are dropped, never blocking
// the validation path
const broadcastQueueSize = 1000

// limit bursts of block application flooding subscribers
const (
	broadcastRate  = rate.Limit(50) // messages per second
	broadcastBurst = 100
)

type message struct {
	topic  string
	fields assetrecord.Fields
}

// Broadcaster - sink publishing every notification on a ZeroMQ PUB socket
type Broadcaster struct {
	log        *logger.L
	socket     *zmq.Socket
	limiter    *rate.Limiter
	queue      chan message
	background *background.T
}

// NewBroadcaster - bind the PUB socket and start the sending loop
func NewBroadcaster(bindAddresses []string) (*Broadcaster, error) {
	log := logger.New("projection")

	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		return nil, err
	}
	socket.SetLinger(0)

	for _, address := range bindAddresses {
		if err := socket.Bind(address); nil != err {
			log.Errorf("bind: %q  error: %s", address, err)
			socket.Close()
			return nil, err
		}
		log.Infof("publishing on: %q", address)
	}

	b := &Broadcaster{
		log:     log,
		socket:  socket,
		limiter: rate.NewLimiter(broadcastRate, broadcastBurst),
		queue:   make(chan message, broadcastQueueSize),
	}
	b.background = background.Start(background.Processes{b}, nil)
	return b, nil
}

// Stop - shut down the sending loop and close the socket
func (b *Broadcaster) Stop() {
	b.background.Stop()
	b.socket.Close()
}

// RecordChanged - queue a record projection, dropping on overflow
func (b *Broadcaster) RecordChanged(fields assetrecord.Fields) {
	b.enqueue(recordTopic, fields)
}

// HistoryAppended - queue a history projection, dropping on overflow
func (b *Broadcaster) HistoryAppended(fields assetrecord.Fields) {
	b.enqueue(historyTopic, fields)
}

func (b *Broadcaster) enqueue(topic string, fields assetrecord.Fields) {
	select {
	case b.queue <- message{topic: topic, fields: fields}:
	default:
		b.log.Warnf("queue full, dropping: %s %s", topic, fields.Id)
	}
}

// Run - the sending loop
func (b *Broadcaster) Run(args interface{}, shutdown <-chan struct{}) {
	ctx := context.Background()
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case m := <-b.queue:
			if err := b.limiter.Wait(ctx); nil != err {
				continue loop
			}
			buffer, err := json.Marshal(m.fields)
			if nil != err {
				b.log.Errorf("marshal: %s  error: %s", m.fields.Id, err)
				continue loop
			}
			_, err = b.socket.SendMessage(m.topic, buffer)
			if nil != err {
				// lost mirror update only; consensus is unaffected
				b.log.Errorf("send: %s  error: %s", m.topic, err)
			}
		}
	}
}
