// Package retry 为调用方提供可选的重试辅助。
//
// 框架自身从不重试：是否重试、重试多少次完全由调用方决定。
// 默认的可重试判定复用错误上的可重试标记（如非 200 状态码），
// 声明错误、转换错误等确定性失败不会被重试。
package retry

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	zlog "github.com/lk2023060901/quickapi-go/pkg/log"
	"github.com/lk2023060901/quickapi-go/pkg/util/qerr"
)

// Do 使用重试机制执行指定函数。
// fn 为待执行的函数。
// opts 用于控制最大重试次数、初始休眠时间等行为。
func Do(ctx context.Context, fn func() error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	c := newDefaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	isRetryErr := c.isRetryErr
	if isRetryErr == nil {
		isRetryErr = qerr.IsRetryableErr
	}

	var lastErr error
	for i := uint(0); c.attempts == 0 || i < c.attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		if !isRetryErr(err) {
			if errors.IsAny(err, context.Canceled, context.DeadlineExceeded) && lastErr != nil {
				return lastErr
			}
			return err
		}
		lastErr = err

		zlog.L().Warn("retry func failed",
			zap.Uint("retried", i),
			zap.Uint("attempt", c.attempts),
			zap.Error(err),
		)

		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < c.sleep {
			return lastErr
		}
		select {
		case <-time.After(c.sleep):
		case <-ctx.Done():
			return lastErr
		}

		c.sleep *= 2
		if c.sleep > c.maxSleepTime {
			c.sleep = c.maxSleepTime
		}
	}
	return lastErr
}
