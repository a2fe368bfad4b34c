// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package bus

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"

	red "github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/MY201314MY/yocto-stm32mp2/pkg/errors"
)

const (
	writeTag   = "PPRW"
	defaultKey = "dcmipp.regs"
)

// RedisBus keeps the register file in a Redis hash so a remote model of
// the pipe (simulation or test rig) can observe it. Each write is also
// pushed, msgpack encoded, onto the list <Key>.log.
type RedisBus struct {
	Url string
	Key string

	ctx     context.Context
	client  *red.Client
	version string
}

func (r *RedisBus) logKey() string {
	return r.Key + ".log"
}

func (r *RedisBus) Connect() error {
	slog.Info(fmt.Sprintf("Redis: Connect: %s", r.Url))
	if len(r.Key) == 0 {
		r.Key = defaultKey
	}
	r.ctx = context.Background()
	opt, err := red.ParseURL(r.Url)
	if err != nil {
		return errors.ErrBusConnectFail(err)
	}
	r.client = red.NewClient(opt)

	c := r.client.InfoMap(r.ctx, "server")
	if c.Err() != nil {
		r.client.Close()
		r.client = nil
		return errors.ErrBusConnectFail(c.Err())
	}
	r.version = c.Item("Server", "redis_version")
	slog.Info(fmt.Sprintf("Redis: Version: %s", r.version))
	slog.Info(fmt.Sprintf("Redis: HASH: %s (registers)", r.Key))
	slog.Info(fmt.Sprintf("Redis: LIST: %s (write log)", r.logKey()))

	return nil
}

func (r *RedisBus) Disconnect() {
	slog.Info("Redis: Disconnect:")
	if r.client != nil {
		r.client.Close()
		r.client = nil
	}
}

func field(offset uint32) string {
	return fmt.Sprintf("0x%03x", offset)
}

func (r *RedisBus) Read(offset uint32) (uint32, error) {
	if r.client == nil {
		return 0, errors.ErrBusNotConnected
	}
	c := r.client.HGet(r.ctx, r.Key, field(offset))
	if c.Err() == red.Nil {
		return 0, nil
	}
	if c.Err() != nil {
		return 0, errors.NewBusError(c.Err(), "read failed")
	}
	v, err := strconv.ParseUint(c.Val(), 10, 32)
	if err != nil {
		return 0, errors.NewBusError(err, "read failed")
	}
	return uint32(v), nil
}

func (r *RedisBus) Write(offset uint32, value uint32) error {
	if r.client == nil {
		return errors.ErrBusNotConnected
	}
	d := EncodeAccess(Access{Offset: offset, Value: value})
	slog.Debug(fmt.Sprintf("Redis: HSET %s %s=0x%08x, LPUSH -> %s (%d bytes)",
		r.Key, field(offset), value, r.logKey(), len(d)))
	_, err := r.client.TxPipelined(r.ctx, func(p red.Pipeliner) error {
		p.HSet(r.ctx, r.Key, field(offset), strconv.FormatUint(uint64(value), 10))
		p.LPush(r.ctx, r.logKey(), d)
		return nil
	})
	if err != nil {
		return errors.ErrBusWriteFail(err)
	}
	return nil
}

// Log returns the logged writes, oldest first.
func (r *RedisBus) Log() ([]Access, error) {
	if r.client == nil {
		return nil, errors.ErrBusNotConnected
	}
	c := r.client.LRange(r.ctx, r.logKey(), 0, -1)
	if c.Err() != nil {
		return nil, errors.NewBusError(c.Err(), "log read failed")
	}
	vals := c.Val()
	log := make([]Access, 0, len(vals))
	for i := len(vals) - 1; i >= 0; i-- {
		a, err := DecodeAccess([]byte(vals[i]))
		if err != nil {
			return nil, err
		}
		log = append(log, a)
	}
	return log, nil
}

// Flush removes the register file and the write log.
func (r *RedisBus) Flush() error {
	if r.client == nil {
		return errors.ErrBusNotConnected
	}
	return r.client.Del(r.ctx, r.Key, r.logKey()).Err()
}

func EncodeAccess(a Access) []byte {
	buf := new(bytes.Buffer)
	enc := msgpack.NewEncoder(buf)
	enc.EncodeString(writeTag)
	enc.EncodeUint32(a.Offset)
	enc.EncodeUint32(a.Value)
	return buf.Bytes()
}

func DecodeAccess(buf []byte) (Access, error) {
	var a Access
	dec := msgpack.NewDecoder(bytes.NewReader(buf))
	tag, err := dec.DecodeString()
	if err != nil {
		return a, errors.ErrBusRespIncomplete
	}
	if tag != writeTag {
		return a, errors.NewBusError(nil, fmt.Sprintf("unexpected message identifier: %q", tag))
	}
	if a.Offset, err = dec.DecodeUint32(); err != nil {
		return a, errors.ErrBusRespIncomplete
	}
	if a.Value, err = dec.DecodeUint32(); err != nil {
		return a, errors.ErrBusRespIncomplete
	}
	return a, nil
}
